package gcalendar_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"productivity-hub/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

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

	hc := ts.Client()
	hc.Transport = &rewriteTransport{
		Transport: hc.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), hc)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("Broken credentials", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(`{"broken":true}`), ""); err == nil {
			t.Error("expected decoding failure")
		}
	})

	t.Run("Installed app with token", func(t *testing.T) {
		tokenPath := filepath.Join(dir, "token.json")
		os.WriteFile(tokenPath, []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0o600)

		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), tokenPath); err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("Installed app with bad token", func(t *testing.T) {
		tokenPath := filepath.Join(dir, "bad-token.json")
		os.WriteFile(tokenPath, []byte(`{"broken": true`), 0o600)

		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), tokenPath); err == nil {
			t.Fatal("expected parsing to fail on bad token")
		}
	})

	t.Run("Installed app without token", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), filepath.Join(dir, "missing.json")); err == nil {
			t.Fatal("expected missing token error")
		}
	})

	t.Run("From file", func(t *testing.T) {
		path := filepath.Join(dir, "creds.json")
		os.WriteFile(path, []byte(`{"broken":true}`), 0o600)

		if _, err := gcalendar.NewClientFromCredentialsFile(ctx, path, ""); err == nil {
			t.Error("expected failure loading broken file")
		}
		if _, err := gcalendar.NewClientFromCredentialsFile(ctx, filepath.Join(dir, "nope.json"), ""); err == nil {
			t.Error("expected reading file error")
		}
	})
}

func TestCreateAllDayEvent(t *testing.T) {
	var got struct {
		Summary string `json:"summary"`
		Start   struct {
			Date string `json:"date"`
		} `json:"start"`
		End struct {
			Date string `json:"date"`
		} `json:"end"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/v3/calendars/primary/events" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"id": "event-123", "summary": "Pay rent", "htmlLink": "https://calendar.google.com/event-uri"}`))
	})

	day := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	event, err := client.CreateAllDayEvent(context.Background(), gcalendar.AllDayEventRequest{Summary: "Pay rent", Date: day})
	if err != nil {
		t.Fatalf("CreateAllDayEvent error = %v", err)
	}
	if event.ID != "event-123" || event.HtmlLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected event: %+v", event)
	}
	if got.Start.Date != "2024-12-31" || got.End.Date != "2025-01-01" {
		t.Errorf("dates got start=%s end=%s", got.Start.Date, got.End.Date)
	}
}

func TestDeleteEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch r.URL.Path {
		case "/calendar/v3/calendars/work/events/evt-1":
			w.WriteHeader(http.StatusNoContent)
		case "/calendar/v3/calendars/primary/events/gone":
			w.WriteHeader(http.StatusGone)
			w.Write([]byte(`{"error": {"code": 410, "message": "Resource has been deleted"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"code": 500, "message": "boom"}}`))
		}
	})
	ctx := context.Background()

	if err := client.DeleteEvent(ctx, "work", "evt-1"); err != nil {
		t.Errorf("DeleteEvent error = %v", err)
	}
	if err := client.DeleteEvent(ctx, "", "gone"); !errors.Is(err, gcalendar.ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
	if err := client.DeleteEvent(ctx, "", "other"); err == nil || errors.Is(err, gcalendar.ErrEventNotFound) {
		t.Errorf("error = %v, want upstream failure", err)
	}
}
