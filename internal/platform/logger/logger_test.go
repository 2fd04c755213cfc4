package logger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", zerolog.DebugLevel},
		{"", zerolog.DebugLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNamedAndContextChild(t *testing.T) {
	// Get must always return a usable logger
	if Get() == nil {
		t.Fatal("Get returned nil")
	}
	if Named("") != Get() {
		t.Fatal("Named with empty component should return the root logger")
	}
	if Named("classifier") == nil {
		t.Fatal("Named returned nil")
	}

	ctx := WithRequest(context.Background(), "req-123")
	if C(ctx) == nil {
		t.Fatal("C returned nil")
	}
	// a context without ids still yields a logger
	if C(context.Background()) == nil {
		t.Fatal("C on bare context returned nil")
	}
}
