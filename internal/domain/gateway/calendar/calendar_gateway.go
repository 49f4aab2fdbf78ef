package calendar

import (
	"context"
	"errors"
	"time"

	"surf-calendar/internal/domain/entity"
)

// ErrNotConfigured is returned by writes when no calendar or credentials are set
var ErrNotConfigured = errors.New("calendar is not configured")

// Gateway defines the calendar operations used to keep surf events in sync
type Gateway interface {
	// FindSurfEvent returns the surf event of the local date containing day, or nil
	FindSurfEvent(ctx context.Context, day time.Time) (*entity.CalendarEvent, error)

	// CreateEvent inserts a new event and returns it with its ID and link
	CreateEvent(ctx context.Context, event entity.CalendarEvent) (*entity.CalendarEvent, error)

	// UpdateEvent replaces title, description and times of the event with event.ID
	UpdateEvent(ctx context.Context, event entity.CalendarEvent) (*entity.CalendarEvent, error)

	// DeleteEvent removes the event
	DeleteEvent(ctx context.Context, eventID string) error
}

// unconfiguredGateway reads as an empty calendar and refuses writes
type unconfiguredGateway struct{}

// NewUnconfiguredGateway returns a Gateway for runs without calendar access, such as dry runs
func NewUnconfiguredGateway() Gateway {
	return unconfiguredGateway{}
}

func (unconfiguredGateway) FindSurfEvent(context.Context, time.Time) (*entity.CalendarEvent, error) {
	return nil, nil
}

func (unconfiguredGateway) CreateEvent(context.Context, entity.CalendarEvent) (*entity.CalendarEvent, error) {
	return nil, ErrNotConfigured
}

func (unconfiguredGateway) UpdateEvent(context.Context, entity.CalendarEvent) (*entity.CalendarEvent, error) {
	return nil, ErrNotConfigured
}

func (unconfiguredGateway) DeleteEvent(context.Context, string) error {
	return ErrNotConfigured
}
