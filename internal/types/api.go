package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AnalyzeRequest represents a single candidate/requirement comparison request.
// Both texts are required here even though the engine accepts empty strings,
// mirroring the "provide both documents" rule of the interactive tool.
type AnalyzeRequest struct {
	CandidateText   string `json:"candidate_text" validate:"required"`
	RequirementText string `json:"requirement_text" validate:"required"`
}

// CandidateDocument is one named candidate text in a batch.
type CandidateDocument struct {
	Name string `json:"name" validate:"required,max=256"`
	Text string `json:"text" validate:"required"`
}

// BatchAnalyzeRequest compares many candidates against one requirement text.
type BatchAnalyzeRequest struct {
	RequirementText string              `json:"requirement_text" validate:"required"`
	Candidates      []CandidateDocument `json:"candidates" validate:"required,min=1,max=100,dive"`
}

// KeywordsRequest asks for the ranked keywords of a single text.
type KeywordsRequest struct {
	Text string `json:"text" validate:"required"`
	TopN int    `json:"top_n,omitempty" validate:"gte=0,lte=500"`
}

// AnalyzeResponse wraps an AnalysisResult with presentation helpers.
type AnalyzeResponse struct {
	AnalysisID        uuid.UUID       `json:"analysis_id"`
	Interpretation    string          `json:"interpretation"`
	CategoryBreakdown []CategoryCount `json:"category_breakdown"`
	Result            AnalysisResult  `json:"result"`
}

// BatchEntry is the outcome for one candidate of a batch
type BatchEntry struct {
	Name           string         `json:"name"`
	Interpretation string         `json:"interpretation"`
	Result         AnalysisResult `json:"result"`
}

// BatchAnalyzeResponse lists batch entries ranked by match percentage.
type BatchAnalyzeResponse struct {
	AnalysisID uuid.UUID    `json:"analysis_id"`
	Entries    []BatchEntry `json:"entries"`
}

// KeywordsResponse lists ranked keywords for a text.
type KeywordsResponse struct {
	Keywords []Keyword `json:"keywords"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the BatchAnalyzeRequest using the validator.
func (r *BatchAnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the KeywordsRequest using the validator.
func (r *KeywordsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CategoryInfo describes one keyword category and its membership list.
type CategoryInfo struct {
	Name       string   `json:"name"`
	Identifier string   `json:"identifier"`
	Weight     float64  `json:"weight"`
	Terms      []string `json:"terms"`
}

// CategoriesResponse lists every category in display order.
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}
