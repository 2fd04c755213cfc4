package goose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"focusguard/internal/platform/config"
	"focusguard/internal/platform/testkit"
)

func newTestClient(t *testing.T, run func(ctx context.Context, bin string, args []string) ([]byte, error)) *Client {
	t.Helper()
	c := New(config.New().Prefix("FOCUSGUARD_AGENT_"))
	testkit.Swap(t, &c.runFn, run)
	return c
}

func TestNewWiresLogger(t *testing.T) {
	c := New(config.New().Prefix("FOCUSGUARD_AGENT_"))
	if c.log == nil {
		t.Fatal("client logger not set")
	}
}

func TestBuildArgsNoSession(t *testing.T) {
	c := newTestClient(t, nil)
	args := c.buildArgs("check this", RunOptions{
		Extensions: []string{"developer"},
		NoSession:  true,
		MaxTurns:   3,
	})
	want := []string{"run", "-t", "check this", "--with-builtin", "developer", "--no-session", "--max-turns", "3"}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q (full %v)", i, args[i], want[i], args)
		}
	}
}

func TestBuildArgsSessionNameGenerated(t *testing.T) {
	c := newTestClient(t, nil)
	args := c.buildArgs("hi", RunOptions{})
	if args[3] != "-n" {
		t.Fatalf("args = %v", args)
	}
	if !strings.HasPrefix(args[4], "focusguard-") {
		t.Fatalf("session name = %q", args[4])
	}
	// default turn budget is 1
	if args[len(args)-2] != "--max-turns" || args[len(args)-1] != "1" {
		t.Fatalf("args = %v", args)
	}
}

func TestRunSuccess(t *testing.T) {
	var gotArgs []string
	c := newTestClient(t, func(_ context.Context, _ string, args []string) ([]byte, error) {
		gotArgs = args
		return []byte("NO, looks like work\n"), nil
	})
	res := c.Run(context.Background(), "is this a distraction?", RunOptions{NoSession: true})
	if !res.Success || res.Output == "" {
		t.Fatalf("result = %+v", res)
	}
	if gotArgs[0] != "run" {
		t.Fatalf("args = %v", gotArgs)
	}
}

func TestRunFailureIsSoft(t *testing.T) {
	c := newTestClient(t, func(context.Context, string, []string) ([]byte, error) {
		return nil, errors.New("binary not found")
	})
	res := c.Run(context.Background(), "hello", RunOptions{NoSession: true})
	if res.Success {
		t.Fatal("expected failure result")
	}
	if res.Error == "" {
		t.Fatal("error text missing")
	}
}

func TestRunEmptyInstructions(t *testing.T) {
	c := newTestClient(t, func(context.Context, string, []string) ([]byte, error) {
		t.Fatal("must not invoke the binary")
		return nil, nil
	})
	if res := c.Run(context.Background(), "  ", RunOptions{}); res.Success {
		t.Fatal("expected failure")
	}
}

func TestSaysYes(t *testing.T) {
	tests := []struct {
		out  string
		want bool
	}{
		{"YES", true},
		{"yes, definitely a distraction", true},
		{"I think the answer is YES.", true},
		{"NO", false},
		{"nope", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := SaysYes(tt.out); got != tt.want {
			t.Errorf("SaysYes(%q) = %v, want %v", tt.out, got, tt.want)
		}
	}
}
