// Package http provides http transport for content analysis
package http

import (
	stdhttp "net/http"

	"focusguard/internal/core/classifier"
	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/services/intervene/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Analyzer domain.AnalyzerPort
}

type handlers struct{ deps Deps }

// Register mounts the content analysis route on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.PostJSON[classifier.Snapshot](r, "/content", h.content)
}

// RegisterCompat mounts the flat URL-only route the browser extension posts to
func RegisterCompat(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.PostJSON[AnalyzeInput](r, "/analyze-distraction", h.analyze)
}

// AnalyzeInput is the URL-only analysis request
type AnalyzeInput struct {
	URL   string `json:"url"   validate:"required" example:"https://reddit.com"`
	Title string `json:"title" example:"reddit: the front page"`
}

// @Summary Classify a page snapshot
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body classifier.Snapshot true "Page snapshot"
// @Success 200 {object} domain.CheckResult "ok"
// @Router /analyze/content [post]
func (h *handlers) content(r *stdhttp.Request, in classifier.Snapshot) (any, error) {
	return h.deps.Analyzer.CheckContent(r.Context(), in), nil
}

// @Summary Quick distraction verdict from URL and title
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body AnalyzeInput true "Page"
// @Success 200 {object} domain.AnalyzeResult "ok"
// @Router /analyze-distraction [post]
func (h *handlers) analyze(r *stdhttp.Request, in AnalyzeInput) (any, error) {
	return h.deps.Analyzer.AnalyzeDistraction(r.Context(), in.URL, in.Title)
}
