// Package module wires the intervention pipeline into the API
package module

import (
	"net/http"

	"focusguard/internal/core/classifier"
	"focusguard/internal/core/keywords"
	modkit "focusguard/internal/modkit"
	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/services/intervene/domain"
	intervenehttp "focusguard/internal/services/intervene/http"
	"focusguard/internal/services/intervene/service"
	sessiondomain "focusguard/internal/services/session/domain"
	trackerdomain "focusguard/internal/services/tracker/domain"
)

// Ports exposed by the intervene module
type Ports struct {
	Analyzer domain.AnalyzerPort
}

// PortDeps are cross-module ports and adapters the pipeline consumes
type PortDeps struct {
	Prefs   classifier.PrefView
	Events  trackerdomain.EventPort
	Control sessiondomain.ControlPort
	Stats   sessiondomain.StatsPort
	Agent   service.AgentRunner
	Speaker service.Speaker
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
	compat    func(httpkit.Router)

	ports Ports
}

// New constructs the intervene module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("intervene"),
		modkit.WithPrefix("/analyze"),
	}, opts...)...)

	var pd PortDeps
	if v, ok := b.Ports.(PortDeps); ok {
		pd = v
	}

	o := FromConfig(deps.Cfg)
	cls := classifier.New(keywords.MustLoad(), classifier.Options{
		WorkHourStart: o.WorkHourStart,
		WorkHourEnd:   o.WorkHourEnd,
	})
	svc := service.New(service.Config{
		ConfidenceGate: o.ConfidenceGate,
		AgentTimeout:   o.AgentTimeout,
		ProbeNeutral:   o.ProbeNeutral,
	}, service.Deps{
		Classifier: cls,
		Prefs:      pd.Prefs,
		Events:     pd.Events,
		Control:    pd.Control,
		Stats:      pd.Stats,
		Agent:      pd.Agent,
		Speaker:    pd.Speaker,
		Log:        &deps.Log,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports:     Ports{Analyzer: svc},
	}

	hdeps := intervenehttp.Deps{Analyzer: m.ports.Analyzer}
	external := b.Register
	m.register = func(r httpkit.Router) {
		intervenehttp.Register(r, hdeps)
		if external != nil {
			external(r)
		}
	}
	m.compat = func(r httpkit.Router) {
		intervenehttp.RegisterCompat(r, hdeps)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
// the flat /analyze-distraction route predates the /analyze prefix and
// is kept because the browser extension still posts to it
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		m.register(rr)
	})
	m.compat(r)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return m.prefix }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
