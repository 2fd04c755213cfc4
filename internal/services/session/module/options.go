package module

import (
	"time"

	"focusguard/internal/platform/config"
)

// Options holds configuration settings for the session module
type Options struct {
	DefaultFocus time.Duration
	DefaultBreak time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("FOCUSGUARD_SESSION_")
	return Options{
		DefaultFocus: time.Duration(sf.MayInt("FOCUS_MINUTES", 25)) * time.Minute,
		DefaultBreak: time.Duration(sf.MayInt("BREAK_MINUTES", 5)) * time.Minute,
	}
}
