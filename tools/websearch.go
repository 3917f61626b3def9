package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	webSearchTimeout   = 5 * time.Second
	webSearchLogPrefix = "[websearch]"
	defaultInstantURL  = "https://api.duckduckgo.com/"
)

// WebSearchTool queries the DuckDuckGo instant-answer API. It returns the
// abstract text when present, otherwise the first related topic.
type WebSearchTool struct {
	endpoint   string
	httpClient *http.Client
}

// NewWebSearchTool creates a web search tool against the default endpoint.
func NewWebSearchTool() *WebSearchTool {
	return &WebSearchTool{
		endpoint: defaultInstantURL,
		httpClient: &http.Client{
			Timeout: webSearchTimeout,
		},
	}
}

func (t *WebSearchTool) Name() string {
	return "web_search"
}

func (t *WebSearchTool) Description() string {
	return "Search the internet for information. Args: query (string)"
}

func (t *WebSearchTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	query := args["query"]
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	log.Printf("%s query=%q", webSearchLogPrefix, query)

	searchURL := fmt.Sprintf("%s?q=%s&format=json&pretty=1", t.endpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("searching: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var data struct {
		AbstractText  string `json:"AbstractText"`
		RelatedTopics []struct {
			Text string `json:"Text"`
		} `json:"RelatedTopics"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	if data.AbstractText != "" {
		return fmt.Sprintf("🔍 Result for '%s':\n%s", query, data.AbstractText), nil
	}
	if len(data.RelatedTopics) > 0 && data.RelatedTopics[0].Text != "" {
		return fmt.Sprintf("🔍 Result for '%s':\n%s", query, data.RelatedTopics[0].Text), nil
	}

	return fmt.Sprintf("🔍 No direct results for '%s'. Try a different query.", query), nil
}
