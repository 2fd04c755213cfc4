// Package domain holds distraction tracking types and ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is one recorded distraction sighting
type Event struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Line renders the event the way it is fed to the language agent
func (e Event) Line() string {
	return "- " + e.Title + " (" + e.URL + ") at " + e.Timestamp.Format(time.RFC3339)
}

// Status is a point-in-time view of the tracker
type Status struct {
	Enabled       bool `json:"enabled"`
	RecentEvents  int  `json:"recent_events"`
	TotalEvents   int  `json:"total_events"`
	Threshold     int  `json:"threshold"`
	WindowSeconds int  `json:"window_seconds"`
}

// Intervention is returned when the recent event count reaches the threshold
// Context is a newline-joined block of event lines for the agent prompt
type Intervention struct {
	Count   int    `json:"count"`
	Context string `json:"context"`
}
