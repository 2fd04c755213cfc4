package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequest(context.Background(), "abc-123")
	if got := RequestID(ctx); got != "abc-123" {
		t.Fatalf("RequestID = %q, want abc-123", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID on bare context = %q, want empty", got)
	}
	// empty id is not stored
	ctx = WithRequest(context.Background(), "")
	if got := RequestID(ctx); got != "" {
		t.Fatalf("RequestID = %q, want empty", got)
	}
}
