// Package module wires the session service into the API
package module

import (
	"net/http"

	modkit "focusguard/internal/modkit"
	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/platform/timer"
	"focusguard/internal/services/session/domain"
	sessionhttp "focusguard/internal/services/session/http"
	"focusguard/internal/services/session/repo"
	"focusguard/internal/services/session/service"
)

// Ports exposed by the session module
type Ports struct {
	Control domain.ControlPort
	Stats   domain.StatsPort
}

// PortDeps are cross-module ports the session module consumes
// Toggler comes from the tracker module and backs the thumbs_up gesture
type PortDeps struct {
	Toggler sessionhttp.Toggler
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
	signals   func(httpkit.Router)

	ports Ports
}

// New constructs the session module and restores today's stats
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("session"),
		modkit.WithPrefix("/session"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := service.New(service.Config{
		DefaultFocus: o.DefaultFocus,
		DefaultBreak: o.DefaultBreak,
	}, timer.Real{}, repo.NewFiles(deps.Files), &deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports: Ports{
			Control: svc,
			Stats:   svc,
		},
	}

	var pd PortDeps
	if v, ok := b.Ports.(PortDeps); ok {
		pd = v
	}
	hdeps := sessionhttp.Deps{
		Control: m.ports.Control,
		Stats:   m.ports.Stats,
		Toggler: pd.Toggler,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		sessionhttp.Register(r, hdeps)
		if external != nil {
			external(r)
		}
	}
	m.signals = func(r httpkit.Router) {
		sessionhttp.RegisterSignals(r, hdeps)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
// gestures mount beside the session prefix because clients post them to /signal
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
	r.Route("/signal", func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.signals(rr)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return m.prefix }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
