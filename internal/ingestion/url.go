package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/keyword-matcher/internal/fetch"
)

// URLOptions configures IngestFromURLWith.
type URLOptions struct {
	UseBrowser bool
	Verbose    bool
	Fetch      *fetch.Options
	Render     fetch.Renderer // defaults to headless Chrome when UseBrowser is set
}

// IngestFromURL fetches a job posting, extracts its description with
// platform-specific selectors and returns the cleaned text with metadata.
// If useBrowser is true, falls back to headless browser rendering for pages
// whose server HTML carries too little text.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, *Metadata, error) {
	return IngestFromURLWith(ctx, urlStr, URLOptions{UseBrowser: useBrowser, Verbose: verbose})
}

// IngestFromURLWith is IngestFromURL with explicit options.
func IngestFromURLWith(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	if err := fetch.ValidateURL(urlStr); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(text))
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		text = renderFallback(ctx, urlStr, text, contentSelectors, noiseSelectors, opts)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, ErrEmptyDocument)
	}

	metadata := NewMetadata(cleaned, urlStr, FormatURL)
	metadata.Platform = string(platform)
	return cleaned, metadata, nil
}

// renderFallback re-extracts text from browser-rendered HTML, keeping the
// HTTP text when rendering fails or yields less.
func renderFallback(ctx context.Context, urlStr, httpText string, contentSelectors, noiseSelectors []string, opts URLOptions) string {
	if opts.Verbose {
		log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering",
			len(httpText), fetch.MinContentLength)
	}

	render := opts.Render
	if render == nil {
		render = fetch.NewBrowserRenderer(fetch.DefaultRenderTimeout, opts.Verbose)
	}

	html, err := render(ctx, urlStr)
	if err != nil {
		if opts.Verbose && !errors.Is(err, context.Canceled) {
			log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", err)
		}
		return httpText
	}

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil || len(text) <= len(httpText) {
		return httpText
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Browser extracted text: %d chars", len(text))
	}
	return text
}
