// Package http provides http transport for user preferences
package http

import (
	stdhttp "net/http"

	"focusguard/internal/core/classifier"
	"focusguard/internal/modkit/httpkit"
	perr "focusguard/internal/platform/errors"
	"focusguard/internal/services/prefs/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Reader   domain.ReaderPort
	Recorder domain.RecorderPort
}

type handlers struct{ deps Deps }

// Register mounts the preference routes on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.show)
	httpkit.PostJSON[OverrideInput](r, "/override", h.override)
}

// OverrideInput records a user decision for one site
// either a full page URL or a bare domain works, the domain is extracted server side
type OverrideInput struct {
	URL    string `json:"url"    validate:"required_without=Domain" example:"https://reddit.com/r/golang"`
	Domain string `json:"domain" validate:"required_without=URL"    example:"reddit.com"`
	Action string `json:"action" validate:"required,oneof=allow block" example:"allow"`
}

// OverrideResponse confirms the recorded decision
type OverrideResponse struct {
	Domain string `json:"domain" example:"reddit.com"`
	Action string `json:"action" example:"allow"`
}

// @Summary Current allow and block lists
// @Tags Prefs
// @Produce json
// @Success 200 {object} domain.Prefs "ok"
// @Router /prefs [get]
func (h *handlers) show(r *stdhttp.Request) (any, error) {
	return h.deps.Reader.Snapshot(), nil
}

// @Summary Record a user override for a site
// @Tags Prefs
// @Accept json
// @Produce json
// @Param payload body OverrideInput true "Override"
// @Success 200 {object} OverrideResponse "ok"
// @Router /prefs/override [post]
func (h *handlers) override(r *stdhttp.Request, in OverrideInput) (any, error) {
	// bare domains get the same normalization as full URLs
	site := classifier.Domain(in.Domain)
	if site == "" {
		site = classifier.Domain(in.URL)
	}
	if site == "" {
		return nil, perr.InvalidArgf("could not extract a domain from %q", in.URL)
	}
	if err := h.deps.Recorder.RecordOverride(site, in.Action == "allow"); err != nil {
		return nil, err
	}
	return OverrideResponse{Domain: site, Action: in.Action}, nil
}
