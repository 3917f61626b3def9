package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	htmlDoc := `<html><head>
		<script>var x = 1;</script>
		<style>body { color: red }</style>
	</head><body>
		<nav>Menu Home About</nav>
		<h1>Title</h1>
		<p>First paragraph.</p>
		<footer>Copyright</footer>
	</body></html>`

	text := ExtractText(htmlDoc)

	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "First paragraph.")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Menu Home")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractTextCollapsesWhitespace(t *testing.T) {
	text := ExtractText("<p>one</p>\n\n\n<p>two</p>")
	assert.Equal(t, "one two", text)
}

func TestFetchPageTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "chatbot-local")
		w.Write([]byte("<html><body><p>Page content here</p></body></html>"))
	}))
	defer server.Close()

	tool := &FetchPageTool{httpClient: &http.Client{Timeout: time.Second}}
	result, err := tool.Execute(context.Background(), map[string]string{"url": server.URL})

	require.NoError(t, err)
	assert.Contains(t, result, "📄 Content of "+server.URL+":")
	assert.Contains(t, result, "Page content here")
}

func TestFetchPageToolTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<p>" + strings.Repeat("word ", 2000) + "</p>"))
	}))
	defer server.Close()

	tool := &FetchPageTool{httpClient: &http.Client{Timeout: time.Second}}
	result, err := tool.Execute(context.Background(), map[string]string{"url": server.URL})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result, "..."))
}

func TestFetchPageToolHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	tool := &FetchPageTool{httpClient: &http.Client{Timeout: time.Second}}
	_, err := tool.Execute(context.Background(), map[string]string{"url": server.URL})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetchPageToolRequiresURL(t *testing.T) {
	tool := NewFetchPageTool()
	_, err := tool.Execute(context.Background(), map[string]string{})

	assert.Error(t, err)
}
