// Package domain holds focus session types and ports
package domain

// Phase is the session state machine position
type Phase string

// Session phases
const (
	PhaseIdle  Phase = "idle"
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

// Hook names observable lifecycle moments
type Hook string

// Lifecycle hooks
const (
	HookSessionStart Hook = "session_start"
	HookSessionEnd   Hook = "session_end"
	HookBreakStart   Hook = "break_start"
	HookBreakEnd     Hook = "break_end"
)

// Stats accumulates today's totals
// minutes are fractional because sessions can end early
type Stats struct {
	FocusMinutes        float64 `json:"focus_minutes"`
	BreakMinutes        float64 `json:"break_minutes"`
	SessionsCompleted   int     `json:"sessions_completed"`
	DistractionsBlocked int     `json:"distractions_blocked"`
}

// Status is a point-in-time view of the state machine
type Status struct {
	State            Phase   `json:"state"`
	DurationMinutes  int     `json:"duration_minutes,omitempty"`
	ElapsedMinutes   float64 `json:"elapsed_minutes,omitempty"`
	RemainingMinutes float64 `json:"remaining_minutes,omitempty"`
}
