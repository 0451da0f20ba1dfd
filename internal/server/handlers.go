package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/keyword-matcher/internal/ingestion"
	"github.com/jonathan/keyword-matcher/internal/keywords"
	"github.com/jonathan/keyword-matcher/internal/matching"
	"github.com/jonathan/keyword-matcher/internal/pipeline"
	"github.com/jonathan/keyword-matcher/internal/server/middleware"
	"github.com/jonathan/keyword-matcher/internal/types"
)

// validatable is implemented by every request DTO in internal/types
type validatable interface {
	Validate() error
}

// decodeRequest reads, decodes and validates a JSON body into dst.
// The raw body is returned for fingerprinting.
func decodeRequest(r *http.Request, dst validatable) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrPayloadTooLarge{Limit: maxErr.Limit}
		}
		return nil, &ErrValidation{Message: "unreadable request body"}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := dst.Validate(); err != nil {
		return nil, newValidationError(err)
	}
	return body, nil
}

// bodyETag returns a weak entity tag for a request body. Equal bodies
// produce equivalent analyses, only the analysis ID differs.
func bodyETag(body []byte) string {
	return `W/"` + ingestion.ContentHash(string(body)) + `"`
}

// etagMatches reports whether an If-None-Match header value covers etag
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag || "W/"+candidate == etag {
			return true
		}
	}
	return false
}

// handleAnalyze compares one candidate text with one requirement text
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	body, err := decodeRequest(r, &req)
	if err != nil {
		s.failure(w, err)
		return
	}

	etag := bodyETag(body)
	w.Header().Set("ETag", etag)
	// 304 is reserved for GET and HEAD; a matching POST precondition fails
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, etag) {
		s.errorResponse(w, http.StatusPreconditionFailed, "analysis unchanged for this request body")
		return
	}

	outcome, err := pipeline.Analyze(r.Context(), pipeline.RunOptions{
		RequirementText: req.RequirementText,
		CandidateText:   req.CandidateText,
		Out:             io.Discard,
	})
	if err != nil {
		s.failure(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, outcome.Response())
}

// handleAnalyzeBatch ranks several candidates against one requirement text
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchAnalyzeRequest
	if _, err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	resp, err := pipeline.RunBatch(r.Context(), req.RequirementText, req.Candidates, pipeline.BatchOptions{
		Concurrency: s.batchConcurrency,
		Verbose:     s.verbose,
	})
	if err != nil {
		s.failure(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeStream runs an analysis and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if _, err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	requestID, _ := middleware.GetRequestID(r.Context())
	outcome, err := pipeline.Analyze(r.Context(), pipeline.RunOptions{
		RequirementText: req.RequirementText,
		CandidateText:   req.CandidateText,
		Out:             io.Discard,
		OnProgress: func(event pipeline.ProgressEvent) {
			// the result event carries the complete payload
			if event.Step == pipeline.StepComplete {
				return
			}
			if err := sse.WriteEvent(eventProgress, event); err != nil {
				log.Printf("[server] %s error writing SSE event: %v", requestID, err)
			}
		},
	})
	if err != nil {
		log.Printf("[server] %s streaming analysis failed: %v", requestID, err)
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent(eventResult, outcome.Response()); err != nil {
		log.Printf("[server] %s error writing SSE result: %v", requestID, err)
		return
	}
	sse.WriteComplete(outcome.AnalysisID.String(), "completed")
}

// handleKeywords returns the ranked keywords of a text
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.KeywordsRequest
	if _, err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	topN := req.TopN
	if topN == 0 {
		topN = keywords.DefaultTopN
	}

	kws := keywords.ExtractKeywords(req.Text, topN)
	if kws == nil {
		kws = []types.Keyword{}
	}
	s.jsonResponse(w, http.StatusOK, types.KeywordsResponse{Keywords: kws})
}

// handleCategories lists categories with their weights and membership lists
func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	resp := types.CategoriesResponse{Categories: make([]types.CategoryInfo, 0, len(types.AllCategories))}
	for _, c := range types.AllCategories {
		resp.Categories = append(resp.Categories, types.CategoryInfo{
			Name:       c.String(),
			Identifier: c.Identifier(),
			Weight:     matching.CategoryWeight(c),
			Terms:      keywords.Terms(c),
		})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
