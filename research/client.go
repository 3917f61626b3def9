// Package research wraps the Tavily search/scrape HTTP API and adds the
// domain logic the upstream API lacks: recency filtering, URL deduplication
// and a deterministic mock mode for credential-free operation.
package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL    = "https://api.tavily.com"
	requestTimeout    = 30 * time.Second
	DefaultMaxAgeDays = 120
	researchLogPrefix = "[research]"
)

// Result is a single search result as returned by the upstream API.
type Result struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"published_date,omitempty"`
	Score         float64 `json:"score,omitempty"`
}

// ScrapedPage is one page fetched by SearchAndScrape.
type ScrapedPage struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Success bool   `json:"success"`
}

// Response is the tagged outcome of a research operation. It is either
// entirely success-shaped or entirely failure-shaped, never partially valid.
type Response struct {
	Success bool   `json:"success"`
	Query   string `json:"query,omitempty"`

	// Success fields.
	Results        []Result      `json:"results,omitempty"`
	ScrapedPages   []ScrapedPage `json:"scraped_pages,omitempty"`
	TotalFound     int           `json:"total_found,omitempty"`
	TotalScraped   int           `json:"total_scraped,omitempty"`
	TotalUnique    int           `json:"total_unique,omitempty"`
	FilteredByDate bool          `json:"filtered_by_date,omitempty"`
	ResponseTimeMs int64         `json:"response_time_ms,omitempty"`
	Answer         string        `json:"answer,omitempty"`
	URL            string        `json:"url,omitempty"`
	Content        string        `json:"content,omitempty"`
	Title          string        `json:"title,omitempty"`
	SourcesChecked []string      `json:"sources_checked,omitempty"`

	// Failure fields.
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	// Mock is true when the result is synthetic (no credential configured).
	Mock bool `json:"mock,omitempty"`
}

// Status reports the client's capabilities without making a network call.
type Status struct {
	TavilyConfigured  bool     `json:"tavily_configured"`
	SerperConfigured  bool     `json:"serper_configured"`
	DefaultMaxAgeDays int      `json:"default_max_age_days"`
	Features          []string `json:"features"`
}

// SearchOptions tune a Search call. Zero values select the defaults
// (MaxAgeDays 120, NumResults 10, Depth "advanced").
type SearchOptions struct {
	MaxAgeDays int
	NumResults int
	Depth      string
}

func (o *SearchOptions) fillDefaults() {
	if o.MaxAgeDays == 0 {
		o.MaxAgeDays = DefaultMaxAgeDays
	}
	if o.NumResults == 0 {
		o.NumResults = 10
	}
	if o.Depth == "" {
		o.Depth = "advanced"
	}
}

// Client adapts the Tavily HTTP API into string-friendly research calls.
// The mock capability is resolved once at construction, not per call.
type Client struct {
	apiKey     string
	serperKey  string
	baseURL    string
	mock       bool
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a research client. An empty tavilyKey enables mock mode:
// every call returns deterministic synthetic data instead of touching the
// network.
func NewClient(tavilyKey, serperKey string) *Client {
	return &Client{
		apiKey:    tavilyKey,
		serperKey: serperKey,
		baseURL:   defaultBaseURL,
		mock:      tavilyKey == "",
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		now: time.Now,
	}
}

// Search queries Tavily and filters the results by recency. Results older
// than opts.MaxAgeDays are dropped; results with a missing or unparseable
// published date are kept (the filter is best-effort and fails open).
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) Response {
	opts.fillDefaults()

	if c.mock {
		return c.mockSearch(query, opts.MaxAgeDays)
	}

	start := c.now()

	payload := map[string]any{
		"query":          query,
		"max_age_days":   opts.MaxAgeDays,
		"num_results":    opts.NumResults,
		"search_depth":   opts.Depth,
		"include_answer": true,
	}

	var upstream struct {
		Results []Result `json:"results"`
		Answer  string   `json:"answer"`
	}
	if failure := c.post(ctx, "/search", payload, &upstream); failure != nil {
		return *failure
	}

	cutoff := c.now().AddDate(0, 0, -opts.MaxAgeDays)
	filtered := filterByDate(upstream.Results, cutoff)

	results := filtered
	if len(results) > opts.NumResults {
		results = results[:opts.NumResults]
	}

	log.Printf("%s search %q: %d raw, %d after date filter", researchLogPrefix, query, len(upstream.Results), len(filtered))

	return Response{
		Success:        true,
		Query:          query,
		Results:        results,
		TotalFound:     len(filtered),
		FilteredByDate: len(filtered) < len(upstream.Results),
		ResponseTimeMs: c.now().Sub(start).Milliseconds(),
		Answer:         upstream.Answer,
	}
}

// Scrape fetches a page through Tavily and extracts a title from its
// markdown content.
func (c *Client) Scrape(ctx context.Context, pageURL string, onlyMainContent bool) Response {
	if c.mock {
		return c.mockScrape(pageURL)
	}

	payload := map[string]any{
		"url":               pageURL,
		"only_main_content": onlyMainContent,
		"output_format":     "markdown",
	}

	var upstream struct {
		Content  string `json:"content"`
		Markdown string `json:"markdown"`
	}
	if failure := c.post(ctx, "/scrape", payload, &upstream); failure != nil {
		failure.URL = pageURL
		return *failure
	}

	content := upstream.Content
	if content == "" {
		content = upstream.Markdown
	}

	return Response{
		Success: true,
		URL:     pageURL,
		Content: content,
		Title:   extractTitle(content),
	}
}

// SearchAndScrape searches and then scrapes the first results sequentially.
// A search failure is passed through unchanged. Each scraped page's content
// is capped to 2000 characters.
func (c *Client) SearchAndScrape(ctx context.Context, query string, maxAgeDays int) Response {
	searchResp := c.Search(ctx, query, SearchOptions{MaxAgeDays: maxAgeDays, NumResults: 5})
	if !searchResp.Success {
		return searchResp
	}

	toScrape := searchResp.Results
	if len(toScrape) > 3 {
		toScrape = toScrape[:3]
	}

	scraped := make([]ScrapedPage, 0, len(toScrape))
	for _, result := range toScrape {
		scrapeResp := c.Scrape(ctx, result.URL, true)
		content := scrapeResp.Content
		if len(content) > 2000 {
			content = content[:2000]
		}
		scraped = append(scraped, ScrapedPage{
			URL:     result.URL,
			Title:   result.Title,
			Content: content,
			Success: scrapeResp.Success,
		})
	}

	return Response{
		Success:      true,
		Query:        query,
		Results:      searchResp.Results,
		ScrapedPages: scraped,
		TotalScraped: len(scraped),
		Mock:         searchResp.Mock,
	}
}

// DeepResearch searches every named source, deduplicates results by URL
// (first occurrence wins, order preserved) and caps the unique list at 15.
// Only the "tavily" source is implemented.
func (c *Client) DeepResearch(ctx context.Context, query string, sources []string, maxAgeDays int) Response {
	if len(sources) == 0 {
		sources = []string{"tavily"}
	}

	var all []Result
	for _, source := range sources {
		if source != "tavily" {
			continue
		}
		resp := c.Search(ctx, query, SearchOptions{MaxAgeDays: maxAgeDays, NumResults: 10})
		if resp.Success {
			all = append(all, resp.Results...)
		}
	}

	seen := make(map[string]bool)
	unique := make([]Result, 0, len(all))
	for _, r := range all {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		unique = append(unique, r)
	}

	results := unique
	if len(results) > 15 {
		results = results[:15]
	}

	return Response{
		Success:        true,
		Query:          query,
		Results:        results,
		TotalUnique:    len(unique),
		SourcesChecked: sources,
		Mock:           c.mock,
	}
}

// GetStatus reports configured credentials and features. Pure introspection,
// no network call.
func (c *Client) GetStatus() Status {
	return Status{
		TavilyConfigured:  c.apiKey != "",
		SerperConfigured:  c.serperKey != "",
		DefaultMaxAgeDays: DefaultMaxAgeDays,
		Features:          []string{"search", "scrape", "search_and_scrape", "deep_research"},
	}
}

// post issues an authenticated POST and decodes the JSON body into out.
// It returns a failure Response for transport errors and non-2xx statuses,
// or nil on success.
func (c *Client) post(ctx context.Context, path string, payload any, out any) *Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Response{Success: false, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &Response{Success: false, Error: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Response{
			Success: false,
			Error:   err.Error(),
			Message: "Could not reach the research API",
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Response{Success: false, Error: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Response{
			Success: false,
			Error:   fmt.Sprintf("API error: %d", resp.StatusCode),
			Message: string(respBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &Response{Success: false, Error: err.Error()}
	}
	return nil
}

// filterByDate keeps results published on or after cutoff. Missing and
// unparseable dates are kept; the filter never hard-drops a result for bad
// metadata.
func filterByDate(results []Result, cutoff time.Time) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if r.PublishedDate == "" {
			filtered = append(filtered, r)
			continue
		}
		published, err := parseDate(r.PublishedDate)
		if err != nil || !published.Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// extractTitle returns the first level-1 markdown heading of content.
func extractTitle(content string) string {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return "No title"
}

func (c *Client) mockSearch(query string, maxAgeDays int) Response {
	return Response{
		Success: true,
		Query:   query,
		Results: []Result{
			{
				URL:           "https://example.com/article-" + strings.ReplaceAll(query, " ", "-"),
				Title:         "Result 1 for: " + query,
				Content:       fmt.Sprintf("Simulated search result for '%s'. Information no older than %d days.", query, maxAgeDays),
				PublishedDate: c.now().AddDate(0, 0, -7).Format(time.RFC3339),
				Score:         0.95,
			},
		},
		TotalFound:     1,
		FilteredByDate: false,
		ResponseTimeMs: 50,
		Mock:           true,
		Message:        "No TAVILY_API_KEY configured - returning simulated results",
	}
}

func (c *Client) mockScrape(pageURL string) Response {
	content := fmt.Sprintf("# Simulated page\n\nThis is a simulated scrape result for: %s\n\n## Details\n- URL: %s\n- Date: %s\n\nThe page content would be fetched through the Tavily API if a key were configured.",
		pageURL, pageURL, c.now().Format(time.RFC3339))
	return Response{
		Success: true,
		URL:     pageURL,
		Content: content,
		Title:   "Simulated page: " + pageURL,
		Mock:    true,
	}
}
