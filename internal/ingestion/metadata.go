package ingestion

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Metadata describes an ingested document
type Metadata struct {
	Source    string `json:"source,omitempty"`   // File path or URL
	Format    Format `json:"format"`             // Detected document format
	Platform  string `json:"platform,omitempty"` // Job board platform for URLs
	Timestamp string `json:"timestamp"`          // RFC3339 format
	Hash      string `json:"hash"`               // xxhash64 hex digest of the cleaned text
	Words     int    `json:"words"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, source string, format Format) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ContentHash(content),
		Words:     len(strings.Fields(content)),
	}
}

// ContentHash returns the fixed-width hex xxhash64 digest of content.
func ContentHash(content string) string {
	h := strconv.FormatUint(xxhash.Sum64String(content), 16)
	return strings.Repeat("0", 16-len(h)) + h
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
