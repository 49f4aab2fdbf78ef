package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"surf-calendar/internal/domain/entity"
	"surf-calendar/pkg/log"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Settings configures the Google Calendar gateway
type Settings struct {
	CalendarID string
	// Credentials is a service account key as inline JSON, base64 or file path
	Credentials string
	TimeZone    *time.Location
	// SurfTag and DegradedTag identify surf events and their degraded state by title
	SurfTag     string
	DegradedTag string
	// Endpoint and HTTPClient override the API location and bypass credentials
	Endpoint   string
	HTTPClient *http.Client
}

type googleCalendarGateway struct {
	service     *gcal.Service
	calendarID  string
	timeZone    *time.Location
	surfTag     string
	degradedTag string
}

// NewGoogleCalendarGateway creates a Gateway backed by the Google Calendar v3 API
func NewGoogleCalendarGateway(ctx context.Context, settings Settings) (Gateway, error) {
	if strings.TrimSpace(settings.CalendarID) == "" {
		return nil, ErrNotConfigured
	}

	client := settings.HTTPClient
	if client == nil {
		key, err := LoadCredentials(settings.Credentials)
		if err != nil {
			return nil, err
		}
		jwtConfig, err := google.JWTConfigFromJSON(key, gcal.CalendarScope)
		if err != nil {
			return nil, fmt.Errorf("invalid service account key: %w", err)
		}
		client = jwtConfig.Client(ctx)
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if settings.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(settings.Endpoint))
	}
	service, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	zone := settings.TimeZone
	if zone == nil {
		zone = time.UTC
	}

	return &googleCalendarGateway{
		service:     service,
		calendarID:  settings.CalendarID,
		timeZone:    zone,
		surfTag:     strings.ToLower(settings.SurfTag),
		degradedTag: strings.ToLower(settings.DegradedTag),
	}, nil
}

// FindSurfEvent lists the events of the day and returns the first one tagged as a surf event
func (g *googleCalendarGateway) FindSurfEvent(ctx context.Context, day time.Time) (*entity.CalendarEvent, error) {
	local := day.In(g.timeZone)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, g.timeZone)
	end := start.AddDate(0, 0, 1)

	events, err := g.service.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events for %s: %w", start.Format(time.DateOnly), err)
	}

	for _, item := range events.Items {
		if g.isSurfEvent(item.Summary) {
			return g.toEntity(item), nil
		}
	}
	return nil, nil
}

// CreateEvent inserts a new event
func (g *googleCalendarGateway) CreateEvent(ctx context.Context, event entity.CalendarEvent) (*entity.CalendarEvent, error) {
	created, err := g.service.Events.Insert(g.calendarID, g.toGoogle(event)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event %q: %w", event.Title, err)
	}
	log.Info("Calendar event created", zap.String("event_id", created.Id), zap.String("link", created.HtmlLink))
	return g.toEntity(created), nil
}

// UpdateEvent replaces the event content
func (g *googleCalendarGateway) UpdateEvent(ctx context.Context, event entity.CalendarEvent) (*entity.CalendarEvent, error) {
	if event.ID == "" {
		return nil, fmt.Errorf("event ID is required for update")
	}
	updated, err := g.service.Events.Update(g.calendarID, event.ID, g.toGoogle(event)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", event.ID, err)
	}
	log.Info("Calendar event updated", zap.String("event_id", updated.Id), zap.String("link", updated.HtmlLink))
	return g.toEntity(updated), nil
}

// DeleteEvent removes the event
func (g *googleCalendarGateway) DeleteEvent(ctx context.Context, eventID string) error {
	if err := g.service.Events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	log.Info("Calendar event deleted", zap.String("event_id", eventID))
	return nil
}

func (g *googleCalendarGateway) isSurfEvent(summary string) bool {
	summary = strings.ToLower(summary)
	if summary == "" {
		return false
	}
	return (g.surfTag != "" && strings.Contains(summary, g.surfTag)) ||
		(g.degradedTag != "" && strings.Contains(summary, g.degradedTag))
}

func (g *googleCalendarGateway) stateOf(summary string) entity.EventState {
	if g.degradedTag != "" && strings.Contains(strings.ToLower(summary), g.degradedTag) {
		return entity.EventStateDegraded
	}
	return entity.EventStateGood
}

func (g *googleCalendarGateway) toGoogle(event entity.CalendarEvent) *gcal.Event {
	return &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.In(g.timeZone).Format(time.RFC3339),
			TimeZone: g.timeZone.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.In(g.timeZone).Format(time.RFC3339),
			TimeZone: g.timeZone.String(),
		},
	}
}

func (g *googleCalendarGateway) toEntity(item *gcal.Event) *entity.CalendarEvent {
	return &entity.CalendarEvent{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Start:       g.parseDateTime(item.Start),
		End:         g.parseDateTime(item.End),
		State:       g.stateOf(item.Summary),
		Link:        item.HtmlLink,
	}
}

// parseDateTime reads a timed or all-day boundary, returning the zero time when absent
func (g *googleCalendarGateway) parseDateTime(value *gcal.EventDateTime) time.Time {
	if value == nil {
		return time.Time{}
	}
	if value.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, value.DateTime); err == nil {
			return parsed.In(g.timeZone)
		}
	}
	if value.Date != "" {
		if parsed, err := time.ParseInLocation(time.DateOnly, value.Date, g.timeZone); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
