package module

import (
	"time"

	"focusguard/internal/platform/config"
)

// Options holds configuration settings for the intervene module
type Options struct {
	ConfidenceGate float64
	AgentTimeout   time.Duration
	ProbeNeutral   bool
	WorkHourStart  int
	WorkHourEnd    int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("FOCUSGUARD_ANALYZE_")
	return Options{
		ConfidenceGate: float64(af.MayInt("CONFIDENCE_GATE_PCT", 60)) / 100,
		AgentTimeout:   time.Duration(af.MayInt("AGENT_TIMEOUT_SECONDS", 120)) * time.Second,
		ProbeNeutral:   cfg.Prefix("FOCUSGUARD_AGENT_").MayBool("PROBE", false),
		WorkHourStart:  af.MayInt("WORK_HOUR_START", 9),
		WorkHourEnd:    af.MayInt("WORK_HOUR_END", 17),
	}
}
