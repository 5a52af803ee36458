package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const dateLayout = "2006-01-02"

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewFromCredentialsFile reads a service account (or installed app) JSON file.
// Installed app credentials need a token.json next to the credentials file.
func NewFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: read credentials: %w", err)
	}
	return NewFromCredentialsJSON(ctx, data, TokenPath(credentialsPath))
}

// TokenPath is where the installed app token for credentialsPath lives.
func TokenPath(credentialsPath string) string {
	return filepath.Join(filepath.Dir(credentialsPath), "token.json")
}

// OAuthConfig parses installed app credentials for the interactive consent flow.
func OAuthConfig(credentialsJSON []byte) (*oauth2.Config, error) {
	cfg, err := google.ConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: parse installed app credentials: %w", err)
	}
	return cfg, nil
}

// SaveToken writes tok to path, readable by the owner only.
func SaveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("gcalendar: create token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("gcalendar: write token: %w", err)
	}
	return nil
}

// NewFromCredentialsJSON builds a client from raw credentials JSON.
func NewFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, tokenPath string) (*Client, error) {
	jwtCfg, jwtErr := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if jwtErr == nil {
		return newService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	}

	oauthCfg, err := OAuthConfig(credentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: unsupported credentials format: %w", jwtErr)
	}

	tokenData, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: installed app credentials need %s: %w", tokenPath, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokenData, &tok); err != nil {
		return nil, fmt.Errorf("gcalendar: parse token: %w", err)
	}

	return newService(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, &tok)))
}

// NewFromHTTP uses a pre-configured HTTP client. Mostly for tests.
func NewFromHTTP(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return newService(ctx, opts...)
}

func newService(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: create service: %w", err)
	}
	return &Client{service: svc}, nil
}

func calendarID(id string) string {
	if id == "" {
		return DefaultCalendarID
	}
	return id
}

// CreateEvent inserts an event and returns what the API stored.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if req.Summary == "" {
		return nil, fmt.Errorf("gcalendar: summary is required")
	}

	ev := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
	}
	if req.AllDay {
		ev.Start = &calendar.EventDateTime{Date: req.StartTime.Format(dateLayout)}
		ev.End = &calendar.EventDateTime{Date: req.StartTime.AddDate(0, 0, 1).Format(dateLayout)}
	} else {
		end := req.EndTime
		if !end.After(req.StartTime) {
			end = req.StartTime.Add(time.Hour)
		}
		ev.Start = &calendar.EventDateTime{DateTime: req.StartTime.Format(time.RFC3339), TimeZone: req.Timezone}
		ev.End = &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: req.Timezone}
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gcalendar: insert event: %w", err)
	}

	out := toEvent(created)
	return &out, nil
}

// ListEvents returns single events between TimeMin and TimeMax ordered by start.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	call := c.service.Events.List(calendarID(req.CalendarID)).
		Context(ctx).
		SingleEvents(true).
		OrderBy("startTime")
	if !req.TimeMin.IsZero() {
		call = call.TimeMin(req.TimeMin.Format(time.RFC3339))
	}
	if !req.TimeMax.IsZero() {
		call = call.TimeMax(req.TimeMax.Format(time.RFC3339))
	}
	if req.Query != "" {
		call = call.Q(req.Query)
	}
	if req.MaxResults > 0 {
		call = call.MaxResults(req.MaxResults)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("gcalendar: list events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, toEvent(item))
	}
	return events, nil
}

func toEvent(item *calendar.Event) Event {
	ev := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		HTMLLink:    item.HtmlLink,
	}
	ev.StartTime, ev.AllDay = parseEventTime(item.Start)
	ev.EndTime, _ = parseEventTime(item.End)
	return ev
}

func parseEventTime(t *calendar.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		parsed, _ := time.Parse(time.RFC3339, t.DateTime)
		return parsed, false
	}
	if t.Date != "" {
		parsed, _ := time.Parse(dateLayout, t.Date)
		return parsed, true
	}
	return time.Time{}, false
}
