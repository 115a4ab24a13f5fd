package gcalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	defaultCalendarID = "primary"
	dateLayout        = "2006-01-02"
)

// ErrEventNotFound is returned when the event no longer exists upstream.
var ErrEventNotFound = errors.New("calendar event not found")

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsFile creates a Calendar client from a credentials JSON file.
// tokenPath is only read for OAuth desktop credentials.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, tokenPath)
}

// NewClientFromCredentialsJSON accepts either a service account key or OAuth
// desktop credentials paired with a token produced by scripts/gcal-auth.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, tokenPath string) (*Client, error) {
	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarEventsScope)
	if err == nil {
		return newClient(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	}

	oauthConfig, oauthErr := google.ConfigFromJSON(credentialsJSON, calendar.CalendarEventsScope)
	if oauthErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	tok, err := readToken(tokenPath)
	if err != nil {
		return nil, err
	}
	return newClient(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, tok)))
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	return newClient(ctx, option.WithHTTPClient(httpClient))
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

func readToken(path string) (*oauth2.Token, error) {
	if path == "" {
		path = "token.json"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oauth credentials need a token file at %s: %w", path, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &tok, nil
}

// CreateAllDayEvent inserts an event spanning req.Date. Google treats the end date as exclusive.
func (c *Client) CreateAllDayEvent(ctx context.Context, req AllDayEventRequest) (*Event, error) {
	day := req.Date
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       &calendar.EventDateTime{Date: day.Format(dateLayout)},
		End:         &calendar.EventDateTime{Date: day.AddDate(0, 0, 1).Format(dateLayout)},
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &Event{
		ID:       created.Id,
		Summary:  created.Summary,
		HtmlLink: created.HtmlLink,
		Date:     day,
	}, nil
}

// DeleteEvent removes an event. A missing event yields ErrEventNotFound.
func (c *Client) DeleteEvent(ctx context.Context, calID, eventID string) error {
	err := c.service.Events.Delete(calendarID(calID), eventID).Context(ctx).Do()
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return ErrEventNotFound
	}
	return fmt.Errorf("failed to delete calendar event: %w", err)
}

func calendarID(id string) string {
	if id == "" {
		return defaultCalendarID
	}
	return id
}
