// Package domain holds analysis and intervention types and ports
package domain

import "focusguard/internal/core/classifier"

// CheckResult is the full content analysis response
// Action is what the browser extension should do with the tab
type CheckResult struct {
	classifier.Verdict
	Action     string `json:"action"  example:"close_tab"`
	Message    string `json:"message" example:"Distraction blocked: known distraction domain: reddit.com"`
	Intervened bool   `json:"intervention_triggered,omitempty"`
	AgentReply string `json:"agent_reply,omitempty"`
}

// Tab actions
const (
	ActionAllow    = "allow"
	ActionCloseTab = "close_tab"
)

// AnalyzeResult is the lightweight URL-only analysis response
type AnalyzeResult struct {
	Status        string `json:"status"         example:"analyzed"`
	URL           string `json:"url"            example:"https://reddit.com"`
	Title         string `json:"title"          example:"reddit: the front page"`
	IsDistraction bool   `json:"is_distraction" example:"true"`
	Analysis      string `json:"analysis"       example:"YES"`
	Action        string `json:"action,omitempty" example:"close_tab"`
	Timestamp     string `json:"timestamp"      example:"2026-09-01T10:00:00Z"`
}
