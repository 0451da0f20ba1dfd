package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobPage = `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Backend Engineer</h1>
<p>Java, Spring Boot and Kubernetes</p>
<form>Apply now</form>
</main>
<footer>Footer</footer>
</body>
</html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "not-a-url", "example.com", "http://"} {
		t.Run(u, func(t *testing.T) {
			_, _, err := IngestFromURL(context.Background(), u, false, false)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestIngestFromURL_Success(t *testing.T) {
	server := serve(t, http.StatusOK, jobPage)

	text, meta, err := IngestFromURL(context.Background(), server.URL, false, false)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer\nJava, Spring Boot and Kubernetes", text)
	assert.Equal(t, server.URL, meta.Source)
	assert.Equal(t, FormatURL, meta.Format)
	assert.Equal(t, "unknown", meta.Platform)
	assert.Equal(t, ContentHash(text), meta.Hash)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := serve(t, http.StatusNotFound, "gone")

	_, _, err := IngestFromURL(context.Background(), server.URL, false, false)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestIngestFromURL_NetworkError(t *testing.T) {
	server := serve(t, http.StatusOK, jobPage)
	url := server.URL
	server.Close()

	_, _, err := IngestFromURL(context.Background(), url, false, false)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	server := serve(t, http.StatusOK, `<html><body><script>render()</script></body></html>`)

	_, _, err := IngestFromURL(context.Background(), server.URL, false, false)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestIngestFromURLWith_BrowserFallback(t *testing.T) {
	server := serve(t, http.StatusOK, `<html><body><div id="root">Loading</div></body></html>`)
	rendered := "<html><body><main><p>" + strings.Repeat("Go Kubernetes ", 50) + "</p></main></body></html>"

	var calls int
	opts := URLOptions{
		UseBrowser: true,
		Render: func(_ context.Context, url string) (string, error) {
			calls++
			assert.Equal(t, server.URL, url)
			return rendered, nil
		},
	}

	text, _, err := IngestFromURLWith(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, strings.HasPrefix(text, "Go Kubernetes"))
	assert.NotContains(t, text, "Loading")
}

func TestIngestFromURLWith_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := serve(t, http.StatusOK, jobPage)

	opts := URLOptions{
		UseBrowser: true,
		Render: func(context.Context, string) (string, error) {
			return "", errors.New("chrome not installed")
		},
	}

	text, _, err := IngestFromURLWith(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Contains(t, text, "Spring Boot")
}

func TestIngestFromURLWith_NoBrowserWhenContentIsLong(t *testing.T) {
	long := "<html><body><main><p>" + strings.Repeat("Terraform AWS ", 60) + "</p></main></body></html>"
	server := serve(t, http.StatusOK, long)

	opts := URLOptions{
		UseBrowser: true,
		Render: func(context.Context, string) (string, error) {
			t.Fatal("renderer should not be called")
			return "", nil
		},
	}

	_, _, err := IngestFromURLWith(context.Background(), server.URL, opts)
	require.NoError(t, err)
}
