// Package types provides type definitions for structured data used throughout the keyword-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category classifies a keyword into one of a fixed set of skill groups.
type Category int

const (
	// TechnicalSkill is the fallback for terms not found in any category list
	TechnicalSkill Category = iota
	// ProgrammingLanguage covers general purpose languages (go, java, python, ...)
	ProgrammingLanguage
	// FrameworkOrLibrary covers application frameworks and libraries
	FrameworkOrLibrary
	// Database covers database engines and search stores
	Database
	// CloudOrDevOps covers cloud providers, containers and delivery tooling
	CloudOrDevOps
	// SoftSkill covers interpersonal and analytical skills
	SoftSkill
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	ProgrammingLanguage,
	FrameworkOrLibrary,
	Database,
	CloudOrDevOps,
	TechnicalSkill,
	SoftSkill,
}

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case ProgrammingLanguage:
		return "Programming Language"
	case FrameworkOrLibrary:
		return "Framework/Library"
	case Database:
		return "Database"
	case CloudOrDevOps:
		return "Cloud/DevOps"
	case SoftSkill:
		return "Soft Skill"
	default:
		return "Technical Skill"
	}
}

// Identifier returns the enum-style name used in config files and query parameters.
func (c Category) Identifier() string {
	switch c {
	case ProgrammingLanguage:
		return "ProgrammingLanguage"
	case FrameworkOrLibrary:
		return "FrameworkOrLibrary"
	case Database:
		return "Database"
	case CloudOrDevOps:
		return "CloudOrDevOps"
	case SoftSkill:
		return "SoftSkill"
	default:
		return "TechnicalSkill"
	}
}

// ParseCategory resolves either a display name or an identifier (case-insensitive).
func ParseCategory(s string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCategories {
		if needle == strings.ToLower(c.String()) || needle == strings.ToLower(c.Identifier()) {
			return c, nil
		}
	}
	return TechnicalSkill, fmt.Errorf("unknown category: %q", s)
}

// MarshalJSON encodes the category as its display name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a display name or identifier.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
