package domain

import (
	"context"

	"focusguard/internal/core/classifier"
)

// AnalyzerPort is the analysis entry point used by the HTTP layer
type AnalyzerPort interface {
	// CheckContent classifies a page snapshot and runs the intervention
	// pipeline when it is a distraction during focus, it never errors
	CheckContent(ctx context.Context, snap classifier.Snapshot) CheckResult
	// AnalyzeDistraction gives a YES or NO verdict from the URL and title alone
	AnalyzeDistraction(ctx context.Context, url, title string) (AnalyzeResult, error)
}
