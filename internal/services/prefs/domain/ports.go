package domain

// ReaderPort is the read side of the preference store
// the classifier consults it before any keyword scoring
type ReaderPort interface {
	Allowed(site string) bool
	Blocked(site string) bool
	Snapshot() Prefs
}

// RecorderPort records user override decisions
type RecorderPort interface {
	RecordOverride(site string, allow bool) error
}
