// Package http provides http transport for focus sessions and gesture signals
package http

import (
	stdhttp "net/http"

	"focusguard/internal/modkit/httpkit"
	perr "focusguard/internal/platform/errors"
	"focusguard/internal/services/session/domain"
)

// Toggler flips distraction tracking, satisfied by the tracker module
type Toggler interface {
	Toggle() bool
}

// Deps are the handler dependencies
type Deps struct {
	Control domain.ControlPort
	Stats   domain.StatsPort
	Toggler Toggler
}

type handlers struct{ deps Deps }

// Register mounts the session routes on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON[StartInput](r, "/start", h.start)
	httpkit.PostJSON[StartInput](r, "/break", h.breakNow)
	httpkit.Post(r, "/end", h.end)
	httpkit.Get(r, "/status", h.status)
	httpkit.Get(r, "/stats", h.stats)
}

// RegisterSignals mounts the gesture route, kept separate because it
// lives outside the /session prefix
func RegisterSignals(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.PostJSON[GestureInput](r, "/gesture", h.gesture)
}

// StartInput optionally overrides the duration in minutes
type StartInput struct {
	Duration int `json:"duration" validate:"omitempty,min=1,max=480" example:"25"`
}

// GestureInput carries a recognized hand gesture
type GestureInput struct {
	Gesture string `json:"gesture" validate:"required,oneof=wave stop thumbs_up" example:"wave"`
}

// GestureResponse reports what the gesture did
type GestureResponse struct {
	Gesture string `json:"gesture" example:"thumbs_up"`
	Action  string `json:"action"  example:"toggle_tracking"`
	Enabled *bool  `json:"tracking_enabled,omitempty" example:"false"`
}

// @Summary Start a focus session
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body StartInput false "Duration override"
// @Success 200 {object} domain.Status "ok"
// @Router /session/start [post]
func (h *handlers) start(r *stdhttp.Request, in StartInput) (any, error) {
	if err := h.deps.Control.StartFocus(in.Duration); err != nil {
		return nil, err
	}
	return h.deps.Control.Status(), nil
}

// @Summary Start a break
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body StartInput false "Duration override"
// @Success 200 {object} domain.Status "ok"
// @Router /session/break [post]
func (h *handlers) breakNow(r *stdhttp.Request, in StartInput) (any, error) {
	if err := h.deps.Control.StartBreak(in.Duration); err != nil {
		return nil, err
	}
	return h.deps.Control.Status(), nil
}

// @Summary End the current session
// @Tags Session
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /session/end [post]
func (h *handlers) end(r *stdhttp.Request) (any, error) {
	if err := h.deps.Control.EndSession(); err != nil {
		return nil, err
	}
	return h.deps.Control.Status(), nil
}

// @Summary Session status
// @Tags Session
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /session/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.deps.Control.Status(), nil
}

// @Summary Today's totals
// @Tags Session
// @Produce json
// @Success 200 {object} domain.Stats "ok"
// @Router /session/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.deps.Stats.Stats(), nil
}

// @Summary Act on a hand gesture
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body GestureInput true "Gesture"
// @Success 200 {object} GestureResponse "ok"
// @Router /signal/gesture [post]
func (h *handlers) gesture(r *stdhttp.Request, in GestureInput) (any, error) {
	switch in.Gesture {
	case "wave":
		if err := h.deps.Control.StartFocus(0); err != nil {
			return nil, err
		}
		return GestureResponse{Gesture: in.Gesture, Action: "focus_started"}, nil
	case "stop":
		if err := h.deps.Control.StartBreak(0); err != nil {
			return nil, err
		}
		return GestureResponse{Gesture: in.Gesture, Action: "break_started"}, nil
	case "thumbs_up":
		if h.deps.Toggler == nil {
			return nil, perr.Unavailablef("tracking control is not wired")
		}
		on := h.deps.Toggler.Toggle()
		return GestureResponse{Gesture: in.Gesture, Action: "toggle_tracking", Enabled: &on}, nil
	}
	return nil, perr.InvalidArgf("unknown gesture %q", in.Gesture)
}
