package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWebSearchTool(handler http.HandlerFunc) (*WebSearchTool, *httptest.Server) {
	server := httptest.NewServer(handler)
	tool := &WebSearchTool{
		endpoint:   server.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}
	return tool, server
}

func TestWebSearchAbstractText(t *testing.T) {
	tool, server := newTestWebSearchTool(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{"AbstractText": "Go is a programming language."}`))
	})
	defer server.Close()

	result, err := tool.Execute(context.Background(), map[string]string{"query": "golang"})

	require.NoError(t, err)
	assert.Equal(t, "🔍 Result for 'golang':\nGo is a programming language.", result)
}

func TestWebSearchFallsBackToRelatedTopics(t *testing.T) {
	tool, server := newTestWebSearchTool(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"AbstractText": "", "RelatedTopics": [{"Text": "Related answer"}]}`))
	})
	defer server.Close()

	result, err := tool.Execute(context.Background(), map[string]string{"query": "golang"})

	require.NoError(t, err)
	assert.Equal(t, "🔍 Result for 'golang':\nRelated answer", result)
}

func TestWebSearchNoResults(t *testing.T) {
	tool, server := newTestWebSearchTool(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"AbstractText": "", "RelatedTopics": []}`))
	})
	defer server.Close()

	result, err := tool.Execute(context.Background(), map[string]string{"query": "obscure"})

	require.NoError(t, err)
	assert.Equal(t, "🔍 No direct results for 'obscure'. Try a different query.", result)
}

func TestWebSearchRequiresQuery(t *testing.T) {
	tool := NewWebSearchTool()
	_, err := tool.Execute(context.Background(), map[string]string{})

	assert.Error(t, err)
}

func TestWebSearchBadJSON(t *testing.T) {
	tool, server := newTestWebSearchTool(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := tool.Execute(context.Background(), map[string]string{"query": "golang"})

	assert.Error(t, err)
}
