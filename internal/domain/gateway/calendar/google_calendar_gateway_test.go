package calendar

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"surf-calendar/internal/domain/entity"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

const eventsURL = "https://calendar.test/calendar/v3/calendars/surf-calendar/events"

func newTestGateway(t *testing.T) (Gateway, *httpmock.MockTransport, *time.Location) {
	t.Helper()
	zone := time.FixedZone("IDT", 3*60*60)
	transport := httpmock.NewMockTransport()
	gateway, err := NewGoogleCalendarGateway(context.Background(), Settings{
		CalendarID:  "surf-calendar",
		TimeZone:    zone,
		SurfTag:     "Surf window",
		DegradedTag: "conditions degraded",
		Endpoint:    "https://calendar.test/calendar/v3/",
		HTTPClient:  &http.Client{Transport: transport},
	})
	require.NoError(t, err)
	return gateway, transport, zone
}

func TestFindSurfEventReturnsTaggedEvent(t *testing.T) {
	gateway, transport, zone := newTestGateway(t)
	transport.RegisterResponder(http.MethodGet, eventsURL, func(req *http.Request) (*http.Response, error) {
		query := req.URL.Query()
		if query.Get("timeMin") != "2025-06-10T00:00:00+03:00" || query.Get("singleEvents") != "true" {
			return httpmock.NewStringResponse(http.StatusBadRequest, "{}"), nil
		}
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
			"items": []map[string]any{
				{"id": "other", "summary": "Dentist"},
				{
					"id":          "evt-1",
					"summary":     "Surf window - conditions degraded",
					"description": "last known forecast",
					"htmlLink":    "https://calendar.test/evt-1",
					"start":       map[string]string{"dateTime": "2025-06-10T07:00:00+03:00"},
					"end":         map[string]string{"dateTime": "2025-06-10T09:00:00+03:00"},
				},
			},
		})
	})

	event, err := gateway.FindSurfEvent(context.Background(), time.Date(2025, time.June, 10, 12, 0, 0, 0, zone))

	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, entity.EventStateDegraded, event.State)
	assert.True(t, event.Start.Equal(time.Date(2025, time.June, 10, 7, 0, 0, 0, zone)))
	assert.Equal(t, 2*time.Hour, event.End.Sub(event.Start))
	assert.Equal(t, "https://calendar.test/evt-1", event.Link)
}

func TestFindSurfEventWithoutMatch(t *testing.T) {
	gateway, transport, zone := newTestGateway(t)
	transport.RegisterResponder(http.MethodGet, eventsURL,
		httpmock.NewStringResponder(http.StatusOK, `{"items":[{"id":"x","summary":"Lunch"}]}`))

	event, err := gateway.FindSurfEvent(context.Background(), time.Date(2025, time.June, 10, 0, 0, 0, 0, zone))

	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestFindSurfEventWrapsApiError(t *testing.T) {
	gateway, transport, zone := newTestGateway(t)
	transport.RegisterResponder(http.MethodGet, eventsURL,
		httpmock.NewStringResponder(http.StatusForbidden, `{"error":{"code":403,"message":"forbidden"}}`))

	_, err := gateway.FindSurfEvent(context.Background(), time.Date(2025, time.June, 10, 0, 0, 0, 0, zone))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list events for 2025-06-10")
}

func TestCreateEventSendsLocalTimes(t *testing.T) {
	gateway, transport, _ := newTestGateway(t)
	var sent gcal.Event
	transport.RegisterResponder(http.MethodPost, eventsURL, func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(&sent); err != nil {
			return nil, err
		}
		sent.Id = "new-id"
		sent.HtmlLink = "https://calendar.test/new-id"
		return httpmock.NewJsonResponse(http.StatusOK, sent)
	})

	created, err := gateway.CreateEvent(context.Background(), entity.CalendarEvent{
		Title:       "Good surf window - Herzliya",
		Description: "1.0m @ 9s",
		Start:       time.Date(2025, time.June, 10, 4, 0, 0, 0, time.UTC),
		End:         time.Date(2025, time.June, 10, 6, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-06-10T07:00:00+03:00", sent.Start.DateTime)
	assert.Equal(t, "IDT", sent.Start.TimeZone)
	assert.Equal(t, "new-id", created.ID)
	assert.Equal(t, entity.EventStateGood, created.State)
}

func TestUpdateEventRequiresID(t *testing.T) {
	gateway, _, _ := newTestGateway(t)

	_, err := gateway.UpdateEvent(context.Background(), entity.CalendarEvent{Title: "x"})

	assert.Error(t, err)
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	gateway, transport, zone := newTestGateway(t)
	transport.RegisterResponder(http.MethodPut, eventsURL+"/evt-1",
		httpmock.NewStringResponder(http.StatusOK, `{"id":"evt-1","summary":"Surf window - conditions degraded"}`))
	transport.RegisterResponder(http.MethodDelete, eventsURL+"/evt-1",
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	updated, err := gateway.UpdateEvent(context.Background(), entity.CalendarEvent{
		ID:    "evt-1",
		Title: "Surf window - conditions degraded",
		Start: time.Date(2025, time.June, 10, 7, 0, 0, 0, zone),
		End:   time.Date(2025, time.June, 10, 9, 0, 0, 0, zone),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EventStateDegraded, updated.State)

	require.NoError(t, gateway.DeleteEvent(context.Background(), "evt-1"))
	assert.Equal(t, 1, transport.GetCallCountInfo()["DELETE "+eventsURL+"/evt-1"])
}

func TestNewGoogleCalendarGatewayRequiresCalendarID(t *testing.T) {
	_, err := NewGoogleCalendarGateway(context.Background(), Settings{Credentials: "{}"})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUnconfiguredGatewayRefusesWrites(t *testing.T) {
	gateway := NewUnconfiguredGateway()

	event, err := gateway.FindSurfEvent(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, event)

	_, err = gateway.CreateEvent(context.Background(), entity.CalendarEvent{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, gateway.DeleteEvent(context.Background(), "id"), ErrNotConfigured)
}

func TestLoadCredentials(t *testing.T) {
	key := `{"type":"service_account","client_email":"surf@example.iam.gserviceaccount.com","private_key_id":"abc"}`
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(key), 0o600))

	tests := []struct {
		name  string
		value string
	}{
		{"inline json", key},
		{"base64", base64.StdEncoding.EncodeToString([]byte(key))},
		{"file path", path},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadCredentials(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, key, string(data))
		})
	}
}

func TestLoadCredentialsErrors(t *testing.T) {
	_, err := LoadCredentials("  ")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = LoadCredentials("missing.json")
	assert.Error(t, err)

	_, err = LoadCredentials(strings.Repeat("!", 120))
	assert.Error(t, err)
}
