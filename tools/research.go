package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chatbot-local/research"
)

// researchUnavailable is the fixed reply when no research client is wired.
const researchUnavailable = "❌ Research tools are not available. Check that TAVILY_API_KEY is set."

// snippet returns at most n characters of s with an ellipsis.
func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func intArg(args map[string]string, key string, def int) int {
	if v, ok := args[key]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// TavilySearchTool searches the web through the research client with
// recency filtering.
type TavilySearchTool struct {
	client *research.Client
}

// NewTavilySearchTool creates a search tool. A nil client yields the fixed
// "not available" reply on every call.
func NewTavilySearchTool(client *research.Client) *TavilySearchTool {
	return &TavilySearchTool{client: client}
}

func (t *TavilySearchTool) Name() string {
	return "tavily_search"
}

func (t *TavilySearchTool) Description() string {
	return "Search the web via Tavily with date filtering. Args: query (string), max_age_days (int, default 120), num_results (int, default 10)"
}

func (t *TavilySearchTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	if t.client == nil {
		return researchUnavailable, nil
	}
	query := args["query"]
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	resp := t.client.Search(ctx, query, research.SearchOptions{
		MaxAgeDays: intArg(args, "max_age_days", 0),
		NumResults: intArg(args, "num_results", 0),
	})
	if !resp.Success {
		return fmt.Sprintf("%s Search failed: %s", errorMarker, failureText(resp)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 Search results for '%s':\n\n", query)
	for i, r := range resp.Results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, orDefault(r.Title, "No title"))
		fmt.Fprintf(&sb, "   URL: %s\n", r.URL)
		fmt.Fprintf(&sb, "   %s\n\n", snippet(r.Content, 150))
	}
	fmt.Fprintf(&sb, "Found: %d results", resp.TotalFound)
	if resp.FilteredByDate {
		sb.WriteString("\n✅ Filtered by date (fresh sources only)")
	}
	return sb.String(), nil
}

// TavilyScrapeTool fetches a single page through the research client.
type TavilyScrapeTool struct {
	client *research.Client
}

// NewTavilyScrapeTool creates a scrape tool.
func NewTavilyScrapeTool(client *research.Client) *TavilyScrapeTool {
	return &TavilyScrapeTool{client: client}
}

func (t *TavilyScrapeTool) Name() string {
	return "tavily_scrape"
}

func (t *TavilyScrapeTool) Description() string {
	return "Fetch a page's content via Tavily. Args: url (string), only_main_content (bool, default true)"
}

func (t *TavilyScrapeTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	if t.client == nil {
		return researchUnavailable, nil
	}
	pageURL := args["url"]
	if pageURL == "" {
		return "", fmt.Errorf("url is required")
	}

	onlyMain := args["only_main_content"] != "false"

	resp := t.client.Scrape(ctx, pageURL, onlyMain)
	if !resp.Success {
		return fmt.Sprintf("%s Scrape failed: %s", errorMarker, failureText(resp)), nil
	}

	return fmt.Sprintf("📄 Content of %s:\n\n%s", pageURL, snippet(resp.Content, 3000)), nil
}

// TavilySearchScrapeTool searches and scrapes the top results in one call.
type TavilySearchScrapeTool struct {
	client *research.Client
}

// NewTavilySearchScrapeTool creates a combined search+scrape tool.
func NewTavilySearchScrapeTool(client *research.Client) *TavilySearchScrapeTool {
	return &TavilySearchScrapeTool{client: client}
}

func (t *TavilySearchScrapeTool) Name() string {
	return "tavily_search_scrape"
}

func (t *TavilySearchScrapeTool) Description() string {
	return "Search and scrape the first results. Args: query (string), max_age_days (int, default 120)"
}

func (t *TavilySearchScrapeTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	if t.client == nil {
		return researchUnavailable, nil
	}
	query := args["query"]
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	resp := t.client.SearchAndScrape(ctx, query, intArg(args, "max_age_days", 0))
	if !resp.Success {
		return fmt.Sprintf("%s Search failed: %s", errorMarker, failureText(resp)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 Search + scrape for '%s':\n\n", query)
	for i, page := range resp.ScrapedPages {
		title := page.Title
		if title == "" {
			title = page.URL
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		fmt.Fprintf(&sb, "   %s\n\n", snippet(page.Content, 200))
	}
	fmt.Fprintf(&sb, "Scraped: %d pages", resp.TotalScraped)
	return sb.String(), nil
}

// DeepResearchTool aggregates deduplicated results across sources.
type DeepResearchTool struct {
	client *research.Client
}

// NewDeepResearchTool creates a deep research tool.
func NewDeepResearchTool(client *research.Client) *DeepResearchTool {
	return &DeepResearchTool{client: client}
}

func (t *DeepResearchTool) Name() string {
	return "deep_research"
}

func (t *DeepResearchTool) Description() string {
	return "Deep search across multiple sources with deduplication. Args: query (string), max_age_days (int, default 120)"
}

func (t *DeepResearchTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	if t.client == nil {
		return researchUnavailable, nil
	}
	query := args["query"]
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	resp := t.client.DeepResearch(ctx, query, nil, intArg(args, "max_age_days", 0))
	if !resp.Success {
		return fmt.Sprintf("%s Research failed: %s", errorMarker, failureText(resp)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Deep research for '%s':\n\n", query)
	results := resp.Results
	if len(results) > 10 {
		results = results[:10]
	}
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, orDefault(r.Title, "No title"))
		fmt.Fprintf(&sb, "   URL: %s\n", r.URL)
		fmt.Fprintf(&sb, "   %s\n\n", snippet(r.Content, 100))
	}
	fmt.Fprintf(&sb, "Found: %d unique results", resp.TotalUnique)
	return sb.String(), nil
}

// ResearchStatusTool reports research capabilities without network calls.
type ResearchStatusTool struct {
	client *research.Client
}

// NewResearchStatusTool creates a status tool.
func NewResearchStatusTool(client *research.Client) *ResearchStatusTool {
	return &ResearchStatusTool{client: client}
}

func (t *ResearchStatusTool) Name() string {
	return "research_status"
}

func (t *ResearchStatusTool) Description() string {
	return "Check the status of the research tools"
}

func (t *ResearchStatusTool) Execute(_ context.Context, _ map[string]string) (string, error) {
	if t.client == nil {
		return researchUnavailable, nil
	}

	status := t.client.GetStatus()

	var sb strings.Builder
	sb.WriteString("📊 Research tools status:\n\n")
	fmt.Fprintf(&sb, "✅ Tavily: %s\n", configuredText(status.TavilyConfigured))
	fmt.Fprintf(&sb, "✅ Serper: %s\n", configuredText(status.SerperConfigured))
	fmt.Fprintf(&sb, "📌 Default max age: %d days\n\n", status.DefaultMaxAgeDays)
	sb.WriteString("Available features:\n")
	for _, feature := range status.Features {
		fmt.Fprintf(&sb, "  - %s\n", feature)
	}
	return sb.String(), nil
}

func configuredText(ok bool) string {
	if ok {
		return "Configured"
	}
	return "No API key"
}

func failureText(resp research.Response) string {
	if resp.Error != "" {
		return resp.Error
	}
	if resp.Message != "" {
		return resp.Message
	}
	return "unknown error"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
