// Package goose shells out to the goose CLI, the language agent used for
// intervention messages and yes/no distraction probes. The binary is an
// opaque collaborator: slow, occasionally absent, and its output is free text
package goose

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"focusguard/internal/platform/config"
	perr "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logger"

	"github.com/google/uuid"
)

// Result mirrors the agent call outcome handed back to callers
type Result struct {
	Success   bool      `json:"success"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RunOptions control a single agent invocation
type RunOptions struct {
	// SessionName names the agent session. Ignored when NoSession is set;
	// generated when empty and a session is wanted
	SessionName string
	// Extensions lists builtin agent extensions to enable
	Extensions []string
	// NoSession runs without creating a session file
	NoSession bool
	// MaxTurns bounds agent turns without user input. Zero means 1
	MaxTurns int
}

// Client wraps the goose binary
type Client struct {
	bin     string
	timeout time.Duration
	log     *logger.Logger

	// runFn is the subprocess seam for tests
	runFn func(ctx context.Context, bin string, args []string) ([]byte, error)
}

// New builds a client from config. FOCUSGUARD_AGENT_BIN overrides the
// binary path, FOCUSGUARD_AGENT_TIMEOUT the per call budget
func New(cfg config.Conf) *Client {
	return &Client{
		bin:     cfg.MayString("BIN", "goose"),
		timeout: cfg.MayDuration("TIMEOUT", 2*time.Minute),
		log:     logger.Named("goose"),
		runFn:   runExec,
	}
}

func runExec(ctx context.Context, bin string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).CombinedOutput()
}

// Version probes the binary so startup can log whether the agent is usable
func (c *Client) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	out, err := c.runFn(ctx, c.bin, []string{"--version"})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAgent, "agent version probe")
	}
	return strings.TrimSpace(string(out)), nil
}

// Run executes one instruction and returns the agent output. Failures are
// reported inside Result, not as an error, so callers degrade uniformly
func (c *Client) Run(ctx context.Context, instructions string, opts RunOptions) Result {
	if strings.TrimSpace(instructions) == "" {
		return Result{Success: false, Error: "empty instructions", Timestamp: time.Now()}
	}

	args := c.buildArgs(instructions, opts)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := c.runFn(ctx, c.bin, args)
	elapsed := time.Since(start)

	if err != nil {
		c.log.Warn().Err(err).Dur("elapsed", elapsed).Msg("agent run failed")
		return Result{Success: false, Error: err.Error(), Timestamp: time.Now()}
	}
	c.log.Debug().Dur("elapsed", elapsed).Int("bytes", len(out)).Msg("agent run done")
	return Result{Success: true, Output: string(out), Timestamp: time.Now()}
}

func (c *Client) buildArgs(instructions string, opts RunOptions) []string {
	args := []string{"run", "-t", instructions}

	if !opts.NoSession {
		name := opts.SessionName
		if name == "" {
			name = "focusguard-" + uuid.NewString()[:8]
		}
		args = append(args, "-n", name)
	}
	for _, ext := range opts.Extensions {
		args = append(args, "--with-builtin", ext)
	}
	if opts.NoSession {
		args = append(args, "--no-session")
	}
	turns := opts.MaxTurns
	if turns <= 0 {
		turns = 1
	}
	args = append(args, "--max-turns", strconv.Itoa(turns))
	return args
}

// SaysYes reports whether free text agent output amounts to a YES answer.
// The constrained probe instruction asks for YES/NO only, but the agent
// may still pad its reply, so a substring check is the contract
func SaysYes(output string) bool {
	return strings.Contains(strings.ToUpper(output), "YES")
}
