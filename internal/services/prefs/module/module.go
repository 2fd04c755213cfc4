// Package module wires the prefs service into the API
package module

import (
	"net/http"

	modkit "focusguard/internal/modkit"
	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/services/prefs/domain"
	prefshttp "focusguard/internal/services/prefs/http"
	"focusguard/internal/services/prefs/repo"
	"focusguard/internal/services/prefs/service"
)

// Ports exposed by the prefs module
type Ports struct {
	Reader   domain.ReaderPort
	Recorder domain.RecorderPort
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

// New constructs the prefs module and restores persisted lists
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("prefs"),
		modkit.WithPrefix("/prefs"),
	}, opts...)...)

	svc := service.New(repo.NewFiles(deps.Files), &deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports: Ports{
			Reader:   svc,
			Recorder: svc,
		},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		prefshttp.Register(r, prefshttp.Deps{
			Reader:   m.ports.Reader,
			Recorder: m.ports.Recorder,
		})
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
