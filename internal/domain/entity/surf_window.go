package entity

import "time"

// SurfWindow is the contiguous block of hours chosen for a day
type SurfWindow struct {
	Conditions
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	HourCount int       `json:"hourCount"`
	// PeakTime and PeakScore describe the candidate hour the window was built around
	PeakTime  time.Time `json:"peakTime"`
	PeakScore int       `json:"peakScore"`
}

// Duration returns the window length
func (w SurfWindow) Duration() time.Duration {
	return w.EndTime.Sub(w.StartTime)
}
