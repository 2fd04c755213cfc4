// Package http provides http transport for the distraction tracker
package http

import (
	stdhttp "net/http"

	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/platform/net/http/bind"
	"focusguard/internal/services/tracker/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Control domain.ControlPort
}

type handlers struct{ deps Deps }

// Register mounts the tracker routes on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/status", h.status)
	r.Post("/toggle", httpkit.Handle(h.toggle))
}

// ToggleInput optionally forces a state instead of flipping
type ToggleInput struct {
	Enabled *bool `json:"enabled" example:"false"`
}

// ToggleResponse reports the tracker state after a toggle
type ToggleResponse struct {
	Enabled bool `json:"enabled" example:"false"`
}

// @Summary Tracker status
// @Tags Tracker
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /tracker/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.deps.Control.Status(), nil
}

// @Summary Toggle distraction tracking
// @Tags Tracker
// @Accept json
// @Produce json
// @Param payload body ToggleInput false "Forced state, omit the body to flip"
// @Success 200 {object} ToggleResponse "ok"
// @Router /tracker/toggle [post]
func (h *handlers) toggle(r *stdhttp.Request) httpkit.Response {
	in, err := bind.ParseJSON[ToggleInput](r, bind.JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
		AllowEmptyBody:  true,
	})
	if err != nil {
		return httpkit.Error(err)
	}
	if in.Enabled != nil {
		h.deps.Control.SetEnabled(*in.Enabled)
		return httpkit.OK(ToggleResponse{Enabled: *in.Enabled})
	}
	return httpkit.OK(ToggleResponse{Enabled: h.deps.Control.Toggle()})
}
