package entity

import "time"

// EventState is the marker state of an existing surf event
type EventState string

const (
	EventStateNone     EventState = "none"
	EventStateGood     EventState = "good"
	EventStateDegraded EventState = "degraded"
)

// CalendarEvent is a surf window marker stored in the calendar
type CalendarEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	State       EventState `json:"state"`
	Link        string     `json:"link,omitempty"`
}

// StateOf returns the state of a possibly missing event
func StateOf(event *CalendarEvent) EventState {
	if event == nil {
		return EventStateNone
	}
	return event.State
}
