package surf

import (
	"math"
	"strconv"
	"strings"

	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/scoring"
	"surf-calendar/pkg/msg"
)

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassPoint names the closest of the eight compass points
func CompassPoint(degrees float64) string {
	index := int(math.Round(degrees/45)) % len(compassPoints)
	if index < 0 {
		index += len(compassPoints)
	}
	return compassPoints[index]
}

func shoreNote(direction float64, shore scoring.ShoreOrientation) string {
	switch {
	case shore.Offshore.Contains(direction):
		return msg.GetMessage("surf.event.wind-offshore")
	case shore.Onshore.Contains(direction):
		return msg.GetMessage("surf.event.wind-onshore")
	default:
		return msg.GetMessage("surf.event.wind-cross-shore")
	}
}

func goodEvent(cfg scoring.Config, window entity.SurfWindow, quality model.QualityResult, rec model.Recommendation, updatedAt string) entity.CalendarEvent {
	description := msg.GetMessage("surf.event.description-good",
		cfg.Location.Name,
		oneDecimal(window.WaveHeight),
		oneDecimal(window.WaveHeightFeet()),
		int(math.Round(window.WavePeriod)),
		CompassPoint(window.WindDirection),
		int(math.Round(window.WindSpeed)),
		shoreNote(window.WindDirection, cfg.Shore),
		quality.Score,
		updatedAt,
		rec.Emoji,
		rec.Description,
		rec.Recommendation,
		rec.Audience,
	)

	return entity.CalendarEvent{
		Title:       msg.GetMessage("surf.event.title-good", cfg.Location.Name),
		Description: description,
		Start:       window.StartTime,
		End:         window.EndTime,
		State:       entity.EventStateGood,
	}
}

// degradedEvent retitles existing, keeping its times and the last forecast it carried
func degradedEvent(existing entity.CalendarEvent, updatedAt string) entity.CalendarEvent {
	lastKnown := lastKnownForecast(existing.Description)
	if lastKnown == "" {
		lastKnown = msg.GetMessage("surf.event.no-previous-forecast")
	}

	return entity.CalendarEvent{
		ID:          existing.ID,
		Title:       msg.GetMessage("surf.event.title-degraded"),
		Description: msg.GetMessage("surf.event.description-degraded", lastKnown, updatedAt),
		Start:       existing.Start,
		End:         existing.End,
		State:       entity.EventStateDegraded,
	}
}

// lastKnownForecast extracts the bullet lines of a good event description
func lastKnownForecast(description string) string {
	var lines []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "•") {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func oneDecimal(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
