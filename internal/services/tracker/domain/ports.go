package domain

// EventPort records distraction sightings
type EventPort interface {
	// LogEvent records one sighting and reports whether an intervention is due
	// nil means below threshold, deduplicated, or tracking disabled
	LogEvent(url, title string) *Intervention
}

// ControlPort toggles and inspects the tracker
type ControlPort interface {
	Enabled() bool
	SetEnabled(on bool)
	Toggle() bool
	Status() Status
}
