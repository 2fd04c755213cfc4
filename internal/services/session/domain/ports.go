package domain

// ControlPort drives the session state machine
type ControlPort interface {
	// StartFocus begins a focus session, minutes <= 0 uses the default
	StartFocus(minutes int) error
	// StartBreak begins a break, finalizing any running focus session
	StartBreak(minutes int) error
	// EndSession stops the current focus or break and returns to idle
	EndSession() error
	Status() Status
	Phase() Phase
	// Subscribe attaches fn to a lifecycle hook, panics inside fn are contained
	Subscribe(h Hook, fn func())
}

// StatsPort reads and bumps the daily counters
type StatsPort interface {
	Stats() Stats
	AddDistractionBlocked()
}
