package tools

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	fetchTimeout   = 30 * time.Second
	maxFetchChars  = 3000
	fetchLogPrefix = "[fetch]"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// FetchPageTool fetches a web page directly and extracts its readable text.
// It is the credential-free counterpart to tavily_scrape.
type FetchPageTool struct {
	httpClient *http.Client
}

// NewFetchPageTool creates a new page fetch tool.
func NewFetchPageTool() *FetchPageTool {
	return &FetchPageTool{
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

func (t *FetchPageTool) Name() string {
	return "fetch_page"
}

func (t *FetchPageTool) Description() string {
	return "Fetch a web page and extract its readable text. Args: url (string)"
}

func (t *FetchPageTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	pageURL := args["url"]
	if pageURL == "" {
		pageURL = args["query"]
	}
	if pageURL == "" {
		return "", fmt.Errorf("url is required")
	}

	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		pageURL = "https://" + pageURL
	}

	log.Printf("%s fetching %s", fetchLogPrefix, pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; chatbot-local/1.0)")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	log.Printf("%s fetched %d bytes", fetchLogPrefix, len(body))

	text := ExtractText(string(body))
	if text == "" {
		return "Could not extract text content from the page.", nil
	}

	if len(text) > maxFetchChars {
		text = text[:maxFetchChars] + "..."
	}

	return fmt.Sprintf("📄 Content of %s:\n\n%s", pageURL, text), nil
}

// ExtractText parses HTML and returns its readable text, skipping script,
// style and navigation chrome.
func ExtractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// Fallback: strip tags with a regex.
		text := regexp.MustCompile(`<[^>]*>`).ReplaceAllString(htmlContent, " ")
		return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
	}

	var sb strings.Builder
	extractTextFromNode(doc, &sb)

	text := whitespaceRE.ReplaceAllString(sb.String(), " ")
	return strings.TrimSpace(text)
}

func extractTextFromNode(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "nav", "footer", "header", "aside", "noscript":
			return
		}
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractTextFromNode(c, sb)
	}
}
