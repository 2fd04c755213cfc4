// Package module wires the tracker service into the API
package module

import (
	"net/http"

	modkit "focusguard/internal/modkit"
	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/services/tracker/domain"
	trackerhttp "focusguard/internal/services/tracker/http"
	"focusguard/internal/services/tracker/service"
)

// Ports exposed by the tracker module
type Ports struct {
	Events  domain.EventPort
	Control domain.ControlPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	ports Ports
}

// New constructs the tracker module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("tracker"),
		modkit.WithPrefix("/tracker"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := service.New(service.Config{
		Window:    o.Window,
		Threshold: o.Threshold,
	}, &deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports: Ports{
			Events:  svc,
			Control: svc,
		},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		trackerhttp.Register(r, trackerhttp.Deps{Control: m.ports.Control})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
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
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return m.prefix }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
