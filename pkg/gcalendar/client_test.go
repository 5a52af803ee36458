package gcalendar_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todo-assistant/pkg/gcalendar"
)

const installedCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	client, err := gcalendar.NewFromHTTP(context.Background(), ts.Client(), ts.URL+"/calendar/v3/")
	if err != nil {
		t.Fatalf("NewFromHTTP: %v", err)
	}
	return client
}

func TestNewFromCredentials(t *testing.T) {
	dir := t.TempDir()

	t.Run("broken json", func(t *testing.T) {
		_, err := gcalendar.NewFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), filepath.Join(dir, "token.json"))
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("installed app without token", func(t *testing.T) {
		_, err := gcalendar.NewFromCredentialsJSON(context.Background(), []byte(installedCreds), filepath.Join(dir, "missing.json"))
		if err == nil {
			t.Errorf("expected missing token error")
		}
	})

	t.Run("installed app with token", func(t *testing.T) {
		credsPath := filepath.Join(dir, "credentials.json")
		if err := os.WriteFile(credsPath, []byte(installedCreds), 0o600); err != nil {
			t.Fatal(err)
		}
		token := `{"access_token":"dummy","token_type":"Bearer","expiry":"2030-01-01T00:00:00Z"}`
		if err := os.WriteFile(filepath.Join(dir, "token.json"), []byte(token), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := gcalendar.NewFromCredentialsFile(context.Background(), credsPath); err != nil {
			t.Fatalf("expected success: %v", err)
		}
	})

	t.Run("bad token", func(t *testing.T) {
		tokenPath := filepath.Join(dir, "bad-token.json")
		if err := os.WriteFile(tokenPath, []byte(`{"broken": true`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := gcalendar.NewFromCredentialsJSON(context.Background(), []byte(installedCreds), tokenPath); err == nil {
			t.Errorf("expected token parse failure")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := gcalendar.NewFromCredentialsFile(context.Background(), filepath.Join(dir, "nope.json")); err == nil {
			t.Errorf("expected read error")
		}
	})
}

func TestCreateEvent(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendar/v3/calendars/primary/events" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "event-123",
			"summary": "Call mom",
			"htmlLink": "https://calendar.google.com/event-uri",
			"start": {"dateTime": "2026-03-05T17:00:00Z"},
			"end": {"dateTime": "2026-03-05T18:00:00Z"}
		}`))
	})

	start := time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC)
	ev, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:   "Call mom",
		StartTime: start,
		Timezone:  "UTC",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if ev.ID != "event-123" || ev.HTMLLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected event %+v", ev)
	}
	if !ev.EndTime.Equal(start.Add(time.Hour)) {
		t.Errorf("end = %v", ev.EndTime)
	}
	end, _ := got["end"].(map[string]any)
	if end["dateTime"] != "2026-03-05T18:00:00Z" {
		t.Errorf("default one hour duration not sent: %v", got["end"])
	}
}

func TestCreateEventAllDay(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"e1","start":{"date":"2026-03-05"},"end":{"date":"2026-03-06"}}`))
	})

	ev, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:   "Buy gifts",
		StartTime: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		AllDay:    true,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if !ev.AllDay {
		t.Errorf("expected all-day event")
	}
	start, _ := got["start"].(map[string]any)
	if start["date"] != "2026-03-05" {
		t.Errorf("start = %v", got["start"])
	}
}

func TestCreateEventErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{}); err == nil {
		t.Errorf("expected error for missing summary")
	}
	_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{Summary: "x", StartTime: time.Now()})
	if err == nil {
		t.Errorf("expected api error")
	}
}

func TestListEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/calendar/v3/calendars/primary/events":
			if r.URL.Query().Get("q") != "Existing" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[{
				"id": "event-123",
				"summary": "Existing Event",
				"start": {"date": "2024-05-01"},
				"end": {"date": "2024-05-02"}
			}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
		TimeMin: time.Now(),
		TimeMax: time.Now().Add(24 * time.Hour),
		Query:   "Existing",
	})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Summary != "Existing Event" || !events[0].AllDay {
		t.Fatalf("unexpected events %+v", events)
	}

	if _, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{CalendarID: "test-fail"}); err == nil {
		t.Errorf("expected api error")
	}
}
