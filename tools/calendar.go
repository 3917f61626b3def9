package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarTool provides read access to the user's Google Calendar. Like the
// research tools it is capability-gated: without completed OAuth it answers
// with a friendly message instead of failing.
type CalendarTool struct {
	config    *oauth2.Config
	tokenFile string

	mu      sync.RWMutex
	service *calendar.Service
}

// NewCalendarTool creates a new calendar tool with OAuth credentials.
func NewCalendarTool(clientID, clientSecret, redirectURL, tokenFile string) *CalendarTool {
	return &CalendarTool{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendar.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		tokenFile: tokenFile,
	}
}

// Init initializes the Google Calendar service. Returns an auth URL if the
// user still needs to authenticate, or an empty string when a saved token
// was usable.
func (c *CalendarTool) Init(ctx context.Context) (authURL string, err error) {
	if c.config.ClientID == "" || c.config.ClientSecret == "" {
		return "", fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}

	token, err := c.tokenFromFile()
	if err != nil {
		return c.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline), nil
	}

	return "", c.buildService(ctx, token)
}

// CompleteAuth finishes the OAuth flow with the authorization code.
func (c *CalendarTool) CompleteAuth(ctx context.Context, authCode string) error {
	token, err := c.config.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("exchanging auth code: %w", err)
	}

	if err := c.saveToken(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	return c.buildService(ctx, token)
}

func (c *CalendarTool) buildService(ctx context.Context, token *oauth2.Token) error {
	client := c.config.Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("creating calendar service: %w", err)
	}

	c.mu.Lock()
	c.service = service
	c.mu.Unlock()
	return nil
}

func (c *CalendarTool) Name() string {
	return "get_calendar_events"
}

func (c *CalendarTool) Description() string {
	return "Get upcoming Google Calendar events. Args: max_results (int, default 10), days_ahead (int, default 7)"
}

func (c *CalendarTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	c.mu.RLock()
	service := c.service
	c.mu.RUnlock()

	if service == nil {
		return "Calendar not authenticated. Use /auth to connect your Google Calendar.", nil
	}

	maxResults := intArg(args, "max_results", 10)
	if maxResults > 50 {
		maxResults = 50
	}
	daysAhead := intArg(args, "days_ahead", 7)

	now := time.Now()
	events, err := service.Events.List("primary").
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, daysAhead).Format(time.RFC3339)).
		MaxResults(int64(maxResults)).
		OrderBy("startTime").
		Do()
	if err != nil {
		return "", fmt.Errorf("retrieving events: %w", err)
	}

	if len(events.Items) == 0 {
		return "No upcoming events found.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 Found %d upcoming events:\n\n", len(events.Items))
	for _, item := range events.Items {
		start := item.Start.DateTime
		if start == "" {
			start = item.Start.Date // all-day event
		}

		timeStr := start
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			timeStr = t.Format("Mon Jan 2, 3:04 PM")
		}

		fmt.Fprintf(&sb, "• %s - %s\n", timeStr, item.Summary)
		if item.Location != "" {
			fmt.Fprintf(&sb, "  📍 %s\n", item.Location)
		}
	}
	return sb.String(), nil
}

func (c *CalendarTool) tokenFromFile() (*oauth2.Token, error) {
	f, err := os.Open(c.tokenFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

func (c *CalendarTool) saveToken(token *oauth2.Token) error {
	f, err := os.Create(c.tokenFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
