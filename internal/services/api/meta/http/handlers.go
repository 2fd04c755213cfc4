// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"focusguard/internal/core/version"
	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/platform/store/jsonfile"
)

// AgentProber is satisfied by the goose client
type AgentProber interface {
	Version(ctx stdctx.Context) (string, error)
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Agent       AgentProber
	Files       *jsonfile.Store
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"focusguard-api"`
	Started string `json:"started"  example:"2026-09-01T09:00:00Z"`
	Now     string `json:"now"      example:"2026-09-01T09:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"agent"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"goose --version failed"`
	Detail string `json:"detail,omitempty" example:"goose 1.0.4"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-09-01T09:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"focusguard-api"`
	DataDir string `json:"data_dir,omitempty" example:"./data"`
	Started string `json:"started" example:"2026-09-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 2*time.Second)
	defer cancel()

	agent := ReadyCheck{Name: "agent", Status: "skipped"}
	if h.deps.Agent != nil {
		if v, err := h.deps.Agent.Version(ctx); err != nil {
			agent = ReadyCheck{Name: "agent", Status: "fail", Error: err.Error()}
		} else {
			agent = ReadyCheck{Name: "agent", Status: "ok", Detail: v}
		}
	}

	files := ReadyCheck{Name: "files", Status: "skipped"}
	if h.deps.Files != nil {
		files = ReadyCheck{Name: "files", Status: "ok", Detail: h.deps.Files.Dir()}
	}

	// the service still works without the agent, it just cannot speak up
	overall := "ok"
	if agent.Status == "fail" {
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{agent, files},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Files != nil {
		out.DataDir = h.deps.Files.Dir()
	}
	return out, nil
}
