// Package speech plays short spoken messages through the host TTS command.
// Playback is fire and forget: the caller never waits and never sees errors
package speech

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"focusguard/internal/platform/config"
	"focusguard/internal/platform/logger"
)

// Speaker voices messages asynchronously
type Speaker struct {
	cmd     string
	argv    []string
	timeout time.Duration
	log     *logger.Logger

	// runFn is the subprocess seam for tests
	runFn func(ctx context.Context, name string, args []string) error
}

// New builds a speaker. FOCUSGUARD_SPEECH_CMD overrides the TTS command
// (the message is appended as the last argument); empty config falls back
// to the platform default
func New(cfg config.Conf) *Speaker {
	s := &Speaker{
		timeout: cfg.MayDuration("TIMEOUT", 30*time.Second),
		log:     logger.Named("speech"),
		runFn:   runExec,
	}
	if custom := cfg.MayString("CMD", ""); custom != "" {
		parts := strings.Fields(custom)
		s.cmd, s.argv = parts[0], parts[1:]
		return s
	}
	switch runtime.GOOS {
	case "darwin":
		s.cmd = "say"
	case "windows":
		s.cmd = "powershell"
		s.argv = []string{"-Command", "Add-Type -AssemblyName System.Speech; (New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak($args[0])"}
	default:
		s.cmd = "espeak"
	}
	return s
}

func runExec(ctx context.Context, name string, args []string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Say voices the message on a background goroutine. Failures are logged,
// never surfaced: losing a spoken nudge must not affect the request
func (s *Speaker) Say(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		args := append(append([]string(nil), s.argv...), message)
		if err := s.runFn(ctx, s.cmd, args); err != nil {
			s.log.Warn().Err(err).Str("cmd", s.cmd).Msg("speech playback failed")
		}
	}()
}
