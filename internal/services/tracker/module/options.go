package module

import (
	"time"

	"focusguard/internal/platform/config"
)

// Options holds configuration settings for the tracker module
type Options struct {
	Window    time.Duration
	Threshold int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("FOCUSGUARD_TRACKER_")
	return Options{
		Window:    time.Duration(tf.MayInt("WINDOW_SECONDS", 600)) * time.Second,
		Threshold: tf.MayInt("THRESHOLD", 2),
	}
}
