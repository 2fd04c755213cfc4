// Package service implements the distraction intervention pipeline
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focusguard/internal/adapters/agent/goose"
	"focusguard/internal/core/classifier"
	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logger"
	"focusguard/internal/services/intervene/domain"
	sessiondomain "focusguard/internal/services/session/domain"
	trackerdomain "focusguard/internal/services/tracker/domain"
)

// interventionPrompt frames the agent as a check-in from a friend,
// not an alarm, the context block lists the recent distractions
const interventionPrompt = `Hey there! I noticed you've been jumping around a bit recently. You've visited a few sites that might be pulling you away from your tasks, like:
%s

It seems like something might be on your mind today, or perhaps you're feeling a little scattered. What's going on? No judgment at all, just wanted to check in and see how I can help you get back on track.

If you'd like, I can suggest a quick refocus technique or a helpful productivity tip. Just let me know what you need or if you want to chat for a bit.`

const probePrompt = "tell is this URL a distraction or not? REPLY WITH ONLY YES/NO %s %s"

// fallbackMessage is spoken when the agent is unreachable or silent
const fallbackMessage = "Hey, I noticed you're getting distracted. Let's take a breath and get back to it."

// AgentRunner is the slice of the goose client the service needs
type AgentRunner interface {
	Run(ctx context.Context, instructions string, opts goose.RunOptions) goose.Result
}

// Speaker voices intervention messages
type Speaker interface {
	Say(message string)
}

// Config tunes the pipeline
type Config struct {
	// ConfidenceGate is the minimum confidence for blocking during focus
	ConfidenceGate float64
	// AgentTimeout bounds a single agent call
	AgentTimeout time.Duration
	// ProbeNeutral asks the agent for a verdict when the classifier is unsure
	ProbeNeutral bool
}

// Service glues classifier, tracker, session, agent and speech together
type Service struct {
	cls     *classifier.Classifier
	prefs   classifier.PrefView
	events  trackerdomain.EventPort
	control sessiondomain.ControlPort
	stats   sessiondomain.StatsPort
	agent   AgentRunner
	speaker Speaker

	cfg Config
	now func() time.Time
	log *logger.Logger
}

// Deps are the service dependencies, agent and speaker may be nil
type Deps struct {
	Classifier *classifier.Classifier
	Prefs      classifier.PrefView
	Events     trackerdomain.EventPort
	Control    sessiondomain.ControlPort
	Stats      sessiondomain.StatsPort
	Agent      AgentRunner
	Speaker    Speaker
	Log        *logger.Logger
}

// New constructs the intervention service
func New(cfg Config, d Deps) *Service {
	if cfg.ConfidenceGate <= 0 {
		cfg.ConfidenceGate = 0.6
	}
	if cfg.AgentTimeout <= 0 {
		cfg.AgentTimeout = 2 * time.Minute
	}
	if d.Log == nil {
		d.Log = logger.Get()
	}
	return &Service{
		cls:     d.Classifier,
		prefs:   d.Prefs,
		events:  d.Events,
		control: d.Control,
		stats:   d.Stats,
		agent:   d.Agent,
		speaker: d.Speaker,
		cfg:     cfg,
		now:     time.Now,
		log:     d.Log,
	}
}

// CheckContent implements domain.AnalyzerPort
func (s *Service) CheckContent(ctx context.Context, snap classifier.Snapshot) domain.CheckResult {
	v := s.cls.Classify(snap, s.prefs)
	out := domain.CheckResult{
		Verdict: v,
		Action:  domain.ActionAllow,
		Message: "Content allowed: " + v.Reason,
	}

	blocking := v.Decision == classifier.DecisionDistraction &&
		v.Confidence > s.cfg.ConfidenceGate &&
		s.control.Phase() == sessiondomain.PhaseFocus
	if !blocking {
		return out
	}

	s.stats.AddDistractionBlocked()
	out.Action = domain.ActionCloseTab
	out.Message = "Distraction blocked: " + v.Reason
	s.log.Info().Str("url", snap.URL).Str("reason", v.Reason).Msg("distraction blocked")

	if iv := s.events.LogEvent(snap.URL, snap.Title); iv != nil {
		out.Intervened = true
		out.AgentReply = s.intervene(ctx, iv.Context)
		s.say(out.AgentReply)
	}
	return out
}

// AnalyzeDistraction implements domain.AnalyzerPort
func (s *Service) AnalyzeDistraction(ctx context.Context, url, title string) (domain.AnalyzeResult, error) {
	if url == "" {
		return domain.AnalyzeResult{}, perr.InvalidArgf("url is required")
	}

	v := s.cls.Classify(classifier.Snapshot{URL: url, Title: title}, s.prefs)
	isDistraction := v.Decision == classifier.DecisionDistraction
	if v.Decision == classifier.DecisionNeutral && s.cfg.ProbeNeutral && s.agent != nil {
		if yes, ok := s.probe(ctx, url, title); ok {
			isDistraction = yes
		}
	}

	out := domain.AnalyzeResult{
		Status:        "analyzed",
		URL:           url,
		Title:         title,
		IsDistraction: isDistraction,
		Analysis:      "NO",
		Timestamp:     s.now().Format(time.RFC3339),
	}
	if !isDistraction {
		return out, nil
	}

	out.Analysis = "YES"
	out.Action = domain.ActionCloseTab
	s.log.Info().Str("url", url).Msg("distraction detected, closing tab")

	if iv := s.events.LogEvent(url, title); iv != nil {
		s.say(s.intervene(ctx, iv.Context))
	}
	return out, nil
}

// intervene asks the agent for a check-in message, every failure path
// degrades to the fallback so the caller always has something to say
func (s *Service) intervene(ctx context.Context, contextBlock string) string {
	if s.agent == nil {
		return fallbackMessage
	}
	cctx, cancel := context.WithTimeout(ctx, s.cfg.AgentTimeout)
	defer cancel()

	res := s.agent.Run(cctx, fmt.Sprintf(interventionPrompt, contextBlock), goose.RunOptions{
		Extensions: []string{"developer"},
		NoSession:  true,
		MaxTurns:   3,
	})
	if !res.Success {
		s.log.Warn().Str("error", res.Error).Msg("intervention agent call failed")
		return fallbackMessage
	}
	reply := strings.TrimSpace(res.Output)
	if reply == "" {
		return fallbackMessage
	}
	return reply
}

// probe asks for a bare YES or NO, ok is false when the agent could not answer
func (s *Service) probe(ctx context.Context, url, title string) (yes, ok bool) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.AgentTimeout)
	defer cancel()

	res := s.agent.Run(cctx, fmt.Sprintf(probePrompt, url, title), goose.RunOptions{
		NoSession: true,
		MaxTurns:  1,
	})
	if !res.Success {
		s.log.Warn().Str("error", res.Error).Msg("distraction probe failed")
		return false, false
	}
	return goose.SaysYes(res.Output), true
}

func (s *Service) say(message string) {
	if s.speaker == nil || message == "" {
		return
	}
	s.speaker.Say(message)
}
