// Package service implements the focus, break, idle state machine
package service

import (
	"math"
	"sync"
	"time"

	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logger"
	"focusguard/internal/platform/timer"
	"focusguard/internal/services/session/domain"
)

// Repo is the persistence seam for the daily stats
type Repo interface {
	Load(day string) (domain.Stats, error)
	Save(day string, st domain.Stats) error
}

// Config tunes default durations
type Config struct {
	DefaultFocus time.Duration
	DefaultBreak time.Duration
}

// Service owns the session state machine and today's counters
// the startedAt field is meaningful only while phase is not idle
type Service struct {
	mu    sync.Mutex
	cfg   Config
	sched timer.Scheduler
	repo  Repo
	log   *logger.Logger

	phase     domain.Phase
	startedAt time.Time
	duration  time.Duration
	task      timer.Task
	// epoch invalidates stale expiry callbacks after a manual transition
	epoch int

	stats domain.Stats
	hooks map[domain.Hook][]func()
}

// New constructs the service and restores today's stats
func New(cfg Config, sched timer.Scheduler, repo Repo, log *logger.Logger) *Service {
	if cfg.DefaultFocus <= 0 {
		cfg.DefaultFocus = 25 * time.Minute
	}
	if cfg.DefaultBreak <= 0 {
		cfg.DefaultBreak = 5 * time.Minute
	}
	if sched == nil {
		sched = timer.Real{}
	}
	if log == nil {
		log = logger.Get()
	}
	s := &Service{
		cfg:   cfg,
		sched: sched,
		repo:  repo,
		log:   log,
		phase: domain.PhaseIdle,
		hooks: map[domain.Hook][]func(){},
	}
	if repo != nil {
		st, err := repo.Load(s.today())
		if err != nil {
			s.log.Warn().Err(err).Msg("could not load daily stats, starting at zero")
		}
		s.stats = st
	}
	return s
}

// Subscribe implements domain.ControlPort
func (s *Service) Subscribe(h domain.Hook, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks[h] = append(s.hooks[h], fn)
}

// StartFocus implements domain.ControlPort
func (s *Service) StartFocus(minutes int) error {
	d := s.cfg.DefaultFocus
	if minutes > 0 {
		d = time.Duration(minutes) * time.Minute
	}

	s.mu.Lock()
	if s.phase != domain.PhaseIdle {
		p := s.phase
		s.mu.Unlock()
		return perr.Conflictf("cannot start focus while a %s is running", p)
	}
	s.begin(domain.PhaseFocus, d, s.onFocusExpiry)
	s.log.Info().Int("minutes", int(d.Minutes())).Msg("focus session started")
	s.mu.Unlock()

	s.fire(domain.HookSessionStart)
	return nil
}

// StartBreak implements domain.ControlPort
// starting a break during focus finalizes the focus session first
func (s *Service) StartBreak(minutes int) error {
	d := s.cfg.DefaultBreak
	if minutes > 0 {
		d = time.Duration(minutes) * time.Minute
	}

	s.mu.Lock()
	if s.phase == domain.PhaseBreak {
		s.mu.Unlock()
		return perr.Conflictf("a break is already running")
	}
	wasFocus := s.phase == domain.PhaseFocus
	if wasFocus {
		s.finalizeFocus()
	}
	s.begin(domain.PhaseBreak, d, s.onBreakExpiry)
	s.log.Info().Int("minutes", int(d.Minutes())).Msg("break started")
	s.mu.Unlock()

	if wasFocus {
		s.fire(domain.HookSessionEnd)
	}
	s.fire(domain.HookBreakStart)
	return nil
}

// EndSession implements domain.ControlPort
func (s *Service) EndSession() error {
	s.mu.Lock()
	ended := s.phase
	switch s.phase {
	case domain.PhaseIdle:
		s.mu.Unlock()
		return perr.Conflictf("no session to end")
	case domain.PhaseFocus:
		s.finalizeFocus()
	case domain.PhaseBreak:
		s.finalizeBreak()
	}
	s.toIdle()
	s.log.Info().Str("ended", string(ended)).Msg("session ended")
	s.mu.Unlock()

	if ended == domain.PhaseFocus {
		s.fire(domain.HookSessionEnd)
	} else {
		s.fire(domain.HookBreakEnd)
	}
	return nil
}

// Phase implements domain.ControlPort
func (s *Service) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Status implements domain.ControlPort
func (s *Service) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == domain.PhaseIdle {
		return domain.Status{State: domain.PhaseIdle}
	}
	elapsed := s.sched.Now().Sub(s.startedAt)
	remaining := s.duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return domain.Status{
		State:            s.phase,
		DurationMinutes:  int(s.duration.Minutes()),
		ElapsedMinutes:   round1(elapsed.Minutes()),
		RemainingMinutes: round1(remaining.Minutes()),
	}
}

// Stats implements domain.StatsPort
func (s *Service) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.FocusMinutes = round1(st.FocusMinutes)
	st.BreakMinutes = round1(st.BreakMinutes)
	return st
}

// AddDistractionBlocked implements domain.StatsPort
func (s *Service) AddDistractionBlocked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.DistractionsBlocked++
	s.persist()
}

// begin enters a phase and schedules its expiry, callers hold the lock
func (s *Service) begin(p domain.Phase, d time.Duration, expire func(epoch int)) {
	s.phase = p
	s.startedAt = s.sched.Now()
	s.duration = d
	s.epoch++
	e := s.epoch
	s.task = s.sched.Schedule(d, func() { expire(e) })
}

// toIdle cancels any pending expiry, callers hold the lock
func (s *Service) toIdle() {
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
	s.phase = domain.PhaseIdle
	s.startedAt = time.Time{}
	s.duration = 0
	s.epoch++
}

// finalizeFocus credits a completed focus session, callers hold the lock
func (s *Service) finalizeFocus() {
	elapsed := s.sched.Now().Sub(s.startedAt)
	s.stats.FocusMinutes += elapsed.Minutes()
	s.stats.SessionsCompleted++
	s.persist()
}

// finalizeBreak credits break time, callers hold the lock
func (s *Service) finalizeBreak() {
	elapsed := s.sched.Now().Sub(s.startedAt)
	s.stats.BreakMinutes += elapsed.Minutes()
	s.persist()
}

// onFocusExpiry rolls an expired focus session straight into a break
func (s *Service) onFocusExpiry(epoch int) {
	s.mu.Lock()
	if epoch != s.epoch || s.phase != domain.PhaseFocus {
		s.mu.Unlock()
		return
	}
	s.finalizeFocus()
	s.begin(domain.PhaseBreak, s.cfg.DefaultBreak, s.onBreakExpiry)
	s.log.Info().Msg("focus session complete, break started")
	s.mu.Unlock()

	s.fire(domain.HookSessionEnd)
	s.fire(domain.HookBreakStart)
}

// onBreakExpiry returns to idle when the break runs out
func (s *Service) onBreakExpiry(epoch int) {
	s.mu.Lock()
	if epoch != s.epoch || s.phase != domain.PhaseBreak {
		s.mu.Unlock()
		return
	}
	s.finalizeBreak()
	s.toIdle()
	s.log.Info().Msg("break complete")
	s.mu.Unlock()

	s.fire(domain.HookBreakEnd)
}

// fire runs subscribers outside the lock, a panicking hook is logged and skipped
func (s *Service) fire(h domain.Hook) {
	s.mu.Lock()
	fns := make([]func(), len(s.hooks[h]))
	copy(fns, s.hooks[h])
	s.mu.Unlock()
	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error().Str("hook", string(h)).Any("panic", r).Msg("hook panicked")
				}
			}()
			fn()
		}()
	}
}

// persist writes today's stats, failures are logged and do not block transitions
func (s *Service) persist() {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(s.today(), s.stats); err != nil {
		s.log.Error().Err(err).Msg("could not save daily stats")
	}
}

func (s *Service) today() string { return s.sched.Now().Format("2006-01-02") }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
