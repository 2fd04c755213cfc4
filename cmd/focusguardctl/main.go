// Command focusguardctl talks to a running focusguard-api instance
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var addr string

func main() {
	root := &cobra.Command{
		Use:           "focusguardctl",
		Short:         "Control a running focusguard service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", "http://localhost:5000", "base URL of the focusguard API")

	root.AddCommand(sessionCmd(), trackerCmd(), prefsCmd(), analyzeCmd(), statusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "session", Short: "Focus session control"}

	var minutes int
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session",
		RunE: func(*cobra.Command, []string) error {
			return call("POST", "/session/start", map[string]any{"duration": minutes})
		},
	}
	start.Flags().IntVar(&minutes, "minutes", 25, "session length in minutes")

	var breakMin int
	brk := &cobra.Command{
		Use:   "break",
		Short: "Start a break",
		RunE: func(*cobra.Command, []string) error {
			return call("POST", "/session/break", map[string]any{"duration": breakMin})
		},
	}
	brk.Flags().IntVar(&breakMin, "minutes", 5, "break length in minutes")

	cmd.AddCommand(start, brk,
		&cobra.Command{
			Use:   "end",
			Short: "End the current session",
			RunE:  func(*cobra.Command, []string) error { return call("POST", "/session/end", nil) },
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show session status",
			RunE:  func(*cobra.Command, []string) error { return call("GET", "/session/status", nil) },
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show today's totals",
			RunE:  func(*cobra.Command, []string) error { return call("GET", "/session/stats", nil) },
		},
	)
	return cmd
}

func trackerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tracker", Short: "Distraction tracker control"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show tracker status",
			RunE:  func(*cobra.Command, []string) error { return call("GET", "/tracker/status", nil) },
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Toggle distraction tracking",
			RunE:  func(*cobra.Command, []string) error { return call("POST", "/tracker/toggle", nil) },
		},
	)
	return cmd
}

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "prefs", Short: "Per-site allow and block lists"}
	override := func(action string) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			return call("POST", "/prefs/override", map[string]any{"url": args[0], "action": action})
		}
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current lists",
			RunE:  func(*cobra.Command, []string) error { return call("GET", "/prefs", nil) },
		},
		&cobra.Command{
			Use:   "allow <url>",
			Short: "Always allow a site",
			Args:  cobra.ExactArgs(1),
			RunE:  override("allow"),
		},
		&cobra.Command{
			Use:   "block <url>",
			Short: "Always block a site",
			Args:  cobra.ExactArgs(1),
			RunE:  override("block"),
		},
	)
	return cmd
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url> [title...]",
		Short: "Ask the service whether a page is a distraction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return call("POST", "/analyze-distraction", map[string]any{
				"url":   args[0],
				"title": strings.Join(args[1:], " "),
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show service health",
		RunE:  func(*cobra.Command, []string) error { return call("GET", "/meta/health", nil) },
	}
}

// call performs one API request and pretty-prints the envelope data
func call(method, path string, body any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, strings.TrimRight(addr, "/")+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 3 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Status string          `json:"status"`
		Error  string          `json:"error"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, env.Error)
	}

	out := bytes.Buffer{}
	if len(env.Data) > 0 {
		if err := json.Indent(&out, env.Data, "", "  "); err != nil {
			out.Write(env.Data)
		}
	} else {
		out.WriteString(env.Status)
	}
	fmt.Println(out.String())
	return nil
}
