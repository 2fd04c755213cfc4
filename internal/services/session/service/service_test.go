package service

import (
	"errors"
	"testing"
	"time"

	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/timer"
	"focusguard/internal/services/session/domain"
)

type memRepo struct {
	day   string
	stats domain.Stats
	saves int
	fail  bool
}

func (m *memRepo) Load(day string) (domain.Stats, error) {
	if day != m.day {
		return domain.Stats{}, nil
	}
	return m.stats, nil
}

func (m *memRepo) Save(day string, st domain.Stats) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.day, m.stats = day, st
	m.saves++
	return nil
}

func newTestService(t *testing.T) (*Service, *timer.Manual, *memRepo) {
	t.Helper()
	clock := timer.NewManual(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	repo := &memRepo{}
	return New(Config{}, clock, repo, nil), clock, repo
}

func TestStartFocusOnlyFromIdle(t *testing.T) {
	s, _, _ := newTestService(t)

	if err := s.StartFocus(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	err := s.StartFocus(25)
	if err == nil {
		t.Fatalf("second start must fail")
	}
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("code = %v, want conflict", perr.CodeOf(err))
	}
}

func TestFocusExpiryRollsIntoBreak(t *testing.T) {
	s, clock, repo := newTestService(t)

	var got []domain.Hook
	for _, h := range []domain.Hook{
		domain.HookSessionStart, domain.HookSessionEnd,
		domain.HookBreakStart, domain.HookBreakEnd,
	} {
		h := h
		s.Subscribe(h, func() { got = append(got, h) })
	}

	if err := s.StartFocus(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(25 * time.Minute)

	if s.Phase() != domain.PhaseBreak {
		t.Fatalf("phase = %s, want break", s.Phase())
	}
	st := s.Stats()
	if st.FocusMinutes != 25 || st.SessionsCompleted != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if repo.stats.SessionsCompleted != 1 {
		t.Fatalf("expiry must persist stats")
	}

	clock.Advance(5 * time.Minute)
	if s.Phase() != domain.PhaseIdle {
		t.Fatalf("phase = %s, want idle after break", s.Phase())
	}
	if got := s.Stats().BreakMinutes; got != 5 {
		t.Fatalf("break minutes = %v, want 5", got)
	}

	want := []domain.Hook{
		domain.HookSessionStart, domain.HookSessionEnd,
		domain.HookBreakStart, domain.HookBreakEnd,
	}
	if len(got) != len(want) {
		t.Fatalf("hooks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hooks = %v, want %v", got, want)
		}
	}
}

func TestEndSessionEarlyCreditsElapsed(t *testing.T) {
	s, clock, _ := newTestService(t)

	if err := s.StartFocus(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(10 * time.Minute)
	if err := s.EndSession(); err != nil {
		t.Fatalf("end: %v", err)
	}

	if s.Phase() != domain.PhaseIdle {
		t.Fatalf("phase = %s, want idle", s.Phase())
	}
	st := s.Stats()
	if st.FocusMinutes != 10 || st.SessionsCompleted != 1 {
		t.Fatalf("stats = %+v", st)
	}

	// the canceled timer must not fire later
	clock.Advance(time.Hour)
	if got := s.Stats(); got != st {
		t.Fatalf("stats moved after cancel: %+v", got)
	}
}

func TestEndSessionIdleFails(t *testing.T) {
	s, _, _ := newTestService(t)
	if err := s.EndSession(); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestBreakDuringFocusFinalizesFocus(t *testing.T) {
	s, clock, _ := newTestService(t)

	if err := s.StartFocus(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(12 * time.Minute)
	if err := s.StartBreak(5); err != nil {
		t.Fatalf("break: %v", err)
	}

	if s.Phase() != domain.PhaseBreak {
		t.Fatalf("phase = %s, want break", s.Phase())
	}
	st := s.Stats()
	if st.FocusMinutes != 12 || st.SessionsCompleted != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestDoubleBreakFails(t *testing.T) {
	s, _, _ := newTestService(t)
	if err := s.StartBreak(5); err != nil {
		t.Fatalf("break: %v", err)
	}
	if err := s.StartBreak(5); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestStatusCountsDown(t *testing.T) {
	s, clock, _ := newTestService(t)

	if got := s.Status(); got.State != domain.PhaseIdle {
		t.Fatalf("status = %+v", got)
	}

	if err := s.StartFocus(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(10 * time.Minute)

	got := s.Status()
	if got.State != domain.PhaseFocus || got.DurationMinutes != 25 {
		t.Fatalf("status = %+v", got)
	}
	if got.ElapsedMinutes != 10 || got.RemainingMinutes != 15 {
		t.Fatalf("status = %+v", got)
	}
}

func TestDefaultDurations(t *testing.T) {
	s, _, _ := newTestService(t)
	if err := s.StartFocus(0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := s.Status().DurationMinutes; got != 25 {
		t.Fatalf("default focus = %d, want 25", got)
	}
	if err := s.EndSession(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := s.StartBreak(0); err != nil {
		t.Fatalf("break: %v", err)
	}
	if got := s.Status().DurationMinutes; got != 5 {
		t.Fatalf("default break = %d, want 5", got)
	}
}

func TestPanickingHookIsContained(t *testing.T) {
	s, clock, _ := newTestService(t)

	s.Subscribe(domain.HookSessionStart, func() { panic("boom") })
	ran := false
	s.Subscribe(domain.HookSessionStart, func() { ran = true })

	if err := s.StartFocus(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !ran {
		t.Fatalf("later hooks must still run after a panic")
	}
	_ = clock
}

func TestAddDistractionBlockedPersists(t *testing.T) {
	s, _, repo := newTestService(t)

	s.AddDistractionBlocked()
	s.AddDistractionBlocked()
	if got := s.Stats().DistractionsBlocked; got != 2 {
		t.Fatalf("blocked = %d, want 2", got)
	}
	if repo.stats.DistractionsBlocked != 2 {
		t.Fatalf("counter must be persisted")
	}
}

// startedAt must be set exactly while the machine is out of idle
func assertClockInvariant(t *testing.T, s *Service) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if idle := s.phase == domain.PhaseIdle; s.startedAt.IsZero() != idle {
		t.Fatalf("phase = %s, startedAt zero = %v", s.phase, s.startedAt.IsZero())
	}
}

func TestStartedAtTracksPhase(t *testing.T) {
	s, clock, _ := newTestService(t)
	assertClockInvariant(t, s)

	if err := s.StartFocus(25); err != nil {
		t.Fatalf("start: %v", err)
	}
	assertClockInvariant(t, s)

	// focus expiry rolls into the automatic break
	clock.Advance(25 * time.Minute)
	assertClockInvariant(t, s)

	if err := s.EndSession(); err != nil {
		t.Fatalf("end break: %v", err)
	}
	assertClockInvariant(t, s)

	if err := s.StartBreak(5); err != nil {
		t.Fatalf("break: %v", err)
	}
	assertClockInvariant(t, s)

	// break expiry returns to idle
	clock.Advance(5 * time.Minute)
	assertClockInvariant(t, s)
}

func TestRestoresSameDayStats(t *testing.T) {
	clock := timer.NewManual(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	repo := &memRepo{day: "2026-09-01", stats: domain.Stats{SessionsCompleted: 3}}
	s := New(Config{}, clock, repo, nil)
	if got := s.Stats().SessionsCompleted; got != 3 {
		t.Fatalf("restored sessions = %d, want 3", got)
	}

	// yesterday's file does not leak into today
	repo2 := &memRepo{day: "2026-08-31", stats: domain.Stats{SessionsCompleted: 3}}
	s2 := New(Config{}, clock, repo2, nil)
	if got := s2.Stats().SessionsCompleted; got != 0 {
		t.Fatalf("stale stats leaked: %d", got)
	}
}
