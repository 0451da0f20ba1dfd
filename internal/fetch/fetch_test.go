package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestURL_CustomHeadersAndLimit(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Test")
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"X-Test": "yes"}
	opts.MaxBytes = 10

	result, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, "yes", gotHeader)
	assert.Len(t, result.HTML, 10)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "not-a-valid-url", "example.com", "http://", "ftp://example.com/file"} {
		t.Run(u, func(t *testing.T) {
			_, err := URL(context.Background(), u, nil)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMainText(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		selectors  []string
		noise      []string
		contains   []string
		notContain []string
	}{
		{
			name:       "main element",
			html:       `<html><body><nav>Navigation</nav><main><h1>Main Content</h1><p>This is the important text.</p></main><footer>Footer</footer></body></html>`,
			selectors:  DefaultTextSelectors(),
			contains:   []string{"Main Content", "important text"},
			notContain: []string{"Navigation", "Footer"},
		},
		{
			name:      "fallback to body",
			html:      `<html><body><div>Some content here.</div></body></html>`,
			selectors: DefaultTextSelectors(),
			contains:  []string{"Some content here"},
		},
		{
			name:       "job posting selector wins over main",
			html:       `<html><body><div class="sidebar">Sidebar junk</div><main>Wrapper<div class="job-description"><h2>Requirements</h2><p>5 years experience in Go</p></div></main></body></html>`,
			selectors:  JobPostingSelectors(),
			contains:   []string{"Requirements", "5 years experience in Go"},
			notContain: []string{"Sidebar junk", "Wrapper"},
		},
		{
			name:       "extra noise removed",
			html:       `<html><body><main><p>Kubernetes</p><form>Apply now</form></main></body></html>`,
			selectors:  DefaultTextSelectors(),
			noise:      PlatformNoiseSelectors(PlatformUnknown),
			contains:   []string{"Kubernetes"},
			notContain: []string{"Apply now"},
		},
		{
			name:       "scripts removed",
			html:       `<html><body><script>var x = "secret";</script><p>visible</p></body></html>`,
			selectors:  nil,
			contains:   []string{"visible"},
			notContain: []string{"secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractMainText(tt.html, tt.selectors, tt.noise...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestExtractMainText_ListItemsStaySeparate(t *testing.T) {
	text, err := ExtractMainText(`<ul><li>Go</li><li>Rust</li></ul>`, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go\nRust", text)
}

func TestSelectors(t *testing.T) {
	assert.Contains(t, DefaultTextSelectors(), "main")
	assert.Contains(t, JobPostingSelectors(), ".job-description")
	assert.Contains(t, JobPostingSelectors(), "article")
	assert.Contains(t, ResumeSelectors(), ".resume")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength)))
}

func TestError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &Error{URL: "https://example.com", Message: "HTTP request failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "https://example.com")

	bare := &Error{URL: "u", Message: "m"}
	assert.Equal(t, "fetch error for u: m", bare.Error())
}
