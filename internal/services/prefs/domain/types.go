// Package domain holds user preference types and ports
package domain

// Prefs is a snapshot of the user's per-domain decisions
type Prefs struct {
	AllowedSites []string `json:"allowed_sites"`
	BlockedSites []string `json:"blocked_sites"`
}
