package model

import (
	"time"

	"surf-calendar/internal/domain/entity"
)

// DayReport is the outcome of evaluating a single local date
type DayReport struct {
	Date           string                `json:"date"`
	Hours          []ScoredHour          `json:"hours,omitempty"`
	Window         *entity.SurfWindow    `json:"window,omitempty"`
	WindowQuality  *QualityResult        `json:"windowQuality,omitempty"`
	Recommendation *Recommendation       `json:"recommendation,omitempty"`
	ExistingEvent  *entity.CalendarEvent `json:"existingEvent,omitempty"`
	Action         Action                `json:"action"`
	Applied        bool                  `json:"applied"`
	Error          string                `json:"error,omitempty"`
}

// RunReport summarises one forecast processing run
type RunReport struct {
	RequestID  string      `json:"requestId"`
	DryRun     bool        `json:"dryRun"`
	Location   string      `json:"location"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	FromCache  bool        `json:"fromCache"`
	HoursInput int         `json:"hoursInput"`
	Days       []DayReport `json:"days"`
}

// ActionCount returns how many days resolved to action
func (r *RunReport) ActionCount(action Action) int {
	count := 0
	for _, day := range r.Days {
		if day.Action == action {
			count++
		}
	}
	return count
}

// RunRequest triggers a processing run through the queue
type RunRequest struct {
	RequestID   string    `json:"requestId"`
	RequestedAt time.Time `json:"requestedAt"`
	DryRun      bool      `json:"dryRun"`
}
