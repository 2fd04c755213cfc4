// Package service implements the time-windowed distraction tracker
package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"focusguard/internal/platform/logger"
	"focusguard/internal/services/tracker/domain"
)

// Config tunes the sliding window
type Config struct {
	// Window is how far back events count toward the threshold
	Window time.Duration
	// Threshold is the recent event count that triggers an intervention
	Threshold int
}

// Service keeps recent distraction events in memory
// there is deliberately no cooldown, every threshold crossing fires
type Service struct {
	mu      sync.Mutex
	cfg     Config
	enabled bool
	events  []domain.Event
	total   int

	now func() time.Time
	log *logger.Logger
}

// New constructs a tracker, enabled by default
func New(cfg Config, log *logger.Logger) *Service {
	if cfg.Window <= 0 {
		cfg.Window = 10 * time.Minute
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 2
	}
	if log == nil {
		log = logger.Get()
	}
	return &Service{
		cfg:     cfg,
		enabled: true,
		now:     time.Now,
		log:     log,
	}
}

// WithClock swaps the time source, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// LogEvent implements domain.EventPort
func (s *Service) LogEvent(url, title string) *domain.Intervention {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}

	ts := s.now()
	s.prune(ts)

	// a page the user is still sitting on is one distraction, not many
	for _, e := range s.events {
		if e.URL == url {
			return nil
		}
	}

	s.events = append(s.events, domain.Event{
		ID:        uuid.New(),
		URL:       url,
		Title:     title,
		Timestamp: ts,
	})
	s.total++

	if len(s.events) < s.cfg.Threshold {
		return nil
	}

	lines := make([]string, len(s.events))
	for i, e := range s.events {
		lines[i] = e.Line()
	}
	s.log.Info().Int("recent", len(s.events)).Str("url", url).Msg("distraction threshold reached")
	return &domain.Intervention{
		Count:   len(s.events),
		Context: strings.Join(lines, "\n"),
	}
}

// Enabled implements domain.ControlPort
func (s *Service) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled implements domain.ControlPort
func (s *Service) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = on
}

// Toggle flips tracking and returns the new state
func (s *Service) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = !s.enabled
	s.log.Info().Bool("enabled", s.enabled).Msg("tracker toggled")
	return s.enabled
}

// Status implements domain.ControlPort
func (s *Service) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	return domain.Status{
		Enabled:       s.enabled,
		RecentEvents:  len(s.events),
		TotalEvents:   s.total,
		Threshold:     s.cfg.Threshold,
		WindowSeconds: int(s.cfg.Window / time.Second),
	}
}

// prune drops events that fell out of the window, callers hold the lock
func (s *Service) prune(now time.Time) {
	cutoff := now.Add(-s.cfg.Window)
	keep := s.events[:0]
	for _, e := range s.events {
		if e.Timestamp.After(cutoff) {
			keep = append(keep, e)
		}
	}
	s.events = keep
}
