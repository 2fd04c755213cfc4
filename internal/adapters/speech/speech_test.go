package speech

import (
	"context"
	"testing"
	"time"

	"focusguard/internal/platform/config"
	"focusguard/internal/platform/testkit"
)

func TestSayInvokesCommandWithMessage(t *testing.T) {
	t.Setenv("FOCUSGUARD_SPEECH_CMD", "echo -n")
	s := New(config.New().Prefix("FOCUSGUARD_SPEECH_"))

	got := make(chan []string, 1)
	testkit.Swap(t, &s.runFn, func(_ context.Context, name string, args []string) error {
		got <- append([]string{name}, args...)
		return nil
	})

	s.Say("back to work")
	select {
	case argv := <-got:
		if argv[0] != "echo" || argv[1] != "-n" || argv[2] != "back to work" {
			t.Fatalf("argv = %v", argv)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command never ran")
	}
}

func TestSayIgnoresEmptyMessage(t *testing.T) {
	s := New(config.New().Prefix("FOCUSGUARD_SPEECH_"))
	ran := make(chan struct{}, 1)
	testkit.Swap(t, &s.runFn, func(context.Context, string, []string) error {
		ran <- struct{}{}
		return nil
	})
	s.Say("   ")
	select {
	case <-ran:
		t.Fatal("empty message must not invoke the command")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDefaultCommandChosen(t *testing.T) {
	s := New(config.New().Prefix("FOCUSGUARD_SPEECH_"))
	if s.cmd == "" {
		t.Fatal("no default TTS command selected")
	}
	if s.log == nil {
		t.Fatal("speaker logger not set")
	}
}
