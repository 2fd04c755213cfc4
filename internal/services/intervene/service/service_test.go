package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"focusguard/internal/adapters/agent/goose"
	"focusguard/internal/core/classifier"
	"focusguard/internal/core/keywords"
	"focusguard/internal/services/session/domain"
	trackerdomain "focusguard/internal/services/tracker/domain"
)

type fakePrefs struct{}

func (fakePrefs) Allowed(string) bool { return false }
func (fakePrefs) Blocked(string) bool { return false }

type fakeEvents struct {
	urls []string
	iv   *trackerdomain.Intervention
}

func (f *fakeEvents) LogEvent(url, title string) *trackerdomain.Intervention {
	f.urls = append(f.urls, url)
	return f.iv
}

type fakeControl struct{ phase domain.Phase }

func (f *fakeControl) StartFocus(int) error                { return nil }
func (f *fakeControl) StartBreak(int) error                { return nil }
func (f *fakeControl) EndSession() error                   { return nil }
func (f *fakeControl) Status() domain.Status               { return domain.Status{State: f.phase} }
func (f *fakeControl) Phase() domain.Phase                 { return f.phase }
func (f *fakeControl) Subscribe(h domain.Hook, fn func())  {}

type fakeStats struct{ blocked int }

func (f *fakeStats) Stats() domain.Stats        { return domain.Stats{} }
func (f *fakeStats) AddDistractionBlocked()     { f.blocked++ }

type fakeAgent struct {
	instructions string
	opts         goose.RunOptions
	result       goose.Result
}

func (f *fakeAgent) Run(_ context.Context, instructions string, opts goose.RunOptions) goose.Result {
	f.instructions = instructions
	f.opts = opts
	return f.result
}

type fakeSpeaker struct{ said []string }

func (f *fakeSpeaker) Say(m string) { f.said = append(f.said, m) }

func newTestService(t *testing.T, phase domain.Phase) (*Service, *fakeEvents, *fakeStats, *fakeAgent, *fakeSpeaker) {
	t.Helper()
	cls := classifier.New(keywords.MustLoad(), classifier.Options{
		Now: func() time.Time { return time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC) },
	})
	events := &fakeEvents{}
	stats := &fakeStats{}
	agent := &fakeAgent{result: goose.Result{Success: true, Output: "You got this!\n"}}
	speaker := &fakeSpeaker{}
	svc := New(Config{}, Deps{
		Classifier: cls,
		Prefs:      fakePrefs{},
		Events:     events,
		Control:    &fakeControl{phase: phase},
		Stats:      stats,
		Agent:      agent,
		Speaker:    speaker,
	})
	return svc, events, stats, agent, speaker
}

func distractionSnap() classifier.Snapshot {
	return classifier.Snapshot{URL: "https://reddit.com/r/funny", Title: "reddit: the front page"}
}

func TestCheckContentBlocksDuringFocus(t *testing.T) {
	svc, events, stats, _, _ := newTestService(t, domain.PhaseFocus)

	out := svc.CheckContent(context.Background(), distractionSnap())
	if out.Action != "close_tab" {
		t.Fatalf("action = %q, want close_tab", out.Action)
	}
	if !strings.HasPrefix(out.Message, "Distraction blocked: ") {
		t.Fatalf("message = %q", out.Message)
	}
	if stats.blocked != 1 {
		t.Fatalf("blocked = %d, want 1", stats.blocked)
	}
	if len(events.urls) != 1 || events.urls[0] != "https://reddit.com/r/funny" {
		t.Fatalf("events = %v", events.urls)
	}
}

func TestCheckContentAllowsOutsideFocus(t *testing.T) {
	svc, events, stats, _, _ := newTestService(t, domain.PhaseIdle)

	out := svc.CheckContent(context.Background(), distractionSnap())
	if out.Action != "allow" {
		t.Fatalf("action = %q, want allow", out.Action)
	}
	if stats.blocked != 0 || len(events.urls) != 0 {
		t.Fatalf("idle browsing must not count, blocked=%d events=%v", stats.blocked, events.urls)
	}
}

func TestCheckContentAllowsWorkDuringFocus(t *testing.T) {
	svc, _, stats, _, _ := newTestService(t, domain.PhaseFocus)

	out := svc.CheckContent(context.Background(), classifier.Snapshot{
		URL:   "https://github.com/golang/go",
		Title: "golang/go",
	})
	if out.Action != "allow" {
		t.Fatalf("action = %q, want allow", out.Action)
	}
	if stats.blocked != 0 {
		t.Fatalf("work pages must not be counted as blocked")
	}
}

func TestThresholdTriggersAgentAndSpeech(t *testing.T) {
	svc, events, _, agent, speaker := newTestService(t, domain.PhaseFocus)
	events.iv = &trackerdomain.Intervention{
		Count:   2,
		Context: "- funny (https://reddit.com/r/funny) at 2026-09-01T10:00:00Z",
	}

	out := svc.CheckContent(context.Background(), distractionSnap())
	if !out.Intervened {
		t.Fatalf("intervention should trigger")
	}
	if out.AgentReply != "You got this!" {
		t.Fatalf("reply = %q", out.AgentReply)
	}
	if !strings.Contains(agent.instructions, events.iv.Context) {
		t.Fatalf("prompt must carry the context block:\n%s", agent.instructions)
	}
	if agent.opts.MaxTurns != 3 || !agent.opts.NoSession {
		t.Fatalf("opts = %+v", agent.opts)
	}
	if len(agent.opts.Extensions) != 1 || agent.opts.Extensions[0] != "developer" {
		t.Fatalf("extensions = %v", agent.opts.Extensions)
	}
	if len(speaker.said) != 1 || speaker.said[0] != "You got this!" {
		t.Fatalf("said = %v", speaker.said)
	}
}

func TestAgentFailureFallsBack(t *testing.T) {
	svc, events, _, agent, speaker := newTestService(t, domain.PhaseFocus)
	events.iv = &trackerdomain.Intervention{Count: 2, Context: "- x"}
	agent.result = goose.Result{Success: false, Error: "goose not found"}

	out := svc.CheckContent(context.Background(), distractionSnap())
	if out.AgentReply != fallbackMessage {
		t.Fatalf("reply = %q", out.AgentReply)
	}
	if len(speaker.said) != 1 || speaker.said[0] != fallbackMessage {
		t.Fatalf("said = %v", speaker.said)
	}
}

func TestAnalyzeDistraction(t *testing.T) {
	svc, _, _, _, _ := newTestService(t, domain.PhaseFocus)

	out, err := svc.AnalyzeDistraction(context.Background(), "https://reddit.com", "reddit")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !out.IsDistraction || out.Analysis != "YES" || out.Action != "close_tab" {
		t.Fatalf("out = %+v", out)
	}
	if out.Status != "analyzed" || out.Timestamp == "" {
		t.Fatalf("out = %+v", out)
	}

	out, err = svc.AnalyzeDistraction(context.Background(), "https://github.com/golang/go", "golang/go")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.IsDistraction || out.Analysis != "NO" || out.Action != "" {
		t.Fatalf("out = %+v", out)
	}
}

func TestAnalyzeDistractionRequiresURL(t *testing.T) {
	svc, _, _, _, _ := newTestService(t, domain.PhaseFocus)
	if _, err := svc.AnalyzeDistraction(context.Background(), "", "x"); err == nil {
		t.Fatalf("expected an error for a missing url")
	}
}

func TestNeutralProbeAsksAgent(t *testing.T) {
	svc, _, _, agent, _ := newTestService(t, domain.PhaseFocus)
	svc.cfg.ProbeNeutral = true
	agent.result = goose.Result{Success: true, Output: "YES, looks like a distraction"}

	out, err := svc.AnalyzeDistraction(context.Background(), "https://example.com/page", "hello")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !out.IsDistraction {
		t.Fatalf("probe verdict should win for neutral pages")
	}
	if !strings.Contains(agent.instructions, "REPLY WITH ONLY YES/NO") {
		t.Fatalf("probe instruction = %q", agent.instructions)
	}
	if !strings.Contains(agent.instructions, "https://example.com/page") {
		t.Fatalf("probe instruction = %q", agent.instructions)
	}
}

func TestNeutralWithoutProbeStaysAllowed(t *testing.T) {
	svc, _, _, _, _ := newTestService(t, domain.PhaseFocus)

	out, err := svc.AnalyzeDistraction(context.Background(), "https://example.com/page", "hello")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.IsDistraction {
		t.Fatalf("neutral must default to NO")
	}
}
