// Package schemas embeds the JSON Schema documents describing exported artifacts.
package schemas

import "embed"

// Names of the embedded schema documents
const (
	AnalysisResult = "analysis_result.schema.json"
	Keywords       = "keywords.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema document.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema document.
func Names() []string {
	return []string{AnalysisResult, Keywords}
}
