// @title         FocusGuard API
// @version       0.1.0
// @description   Distraction detection, focus sessions, and agent interventions

package main

import (
	"context"

	"focusguard/internal/adapters/agent/goose"
	"focusguard/internal/platform/config"
	"focusguard/internal/platform/logger"
	phttp "focusguard/internal/platform/net/http"
	"focusguard/internal/platform/store/jsonfile"

	"focusguard/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (FOCUSGUARD_API_*)
	root := config.New()
	apiCfg := root.Prefix("FOCUSGUARD_API_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	// open the JSON file store that holds daily stats and user patterns
	files, err := jsonfile.Open(root.MayString("FOCUSGUARD_DATA_DIR", "./data"))
	if err != nil {
		l.Panic().Err(err).Msg("jsonfile.Open failed")
	}

	// probe the goose binary early so a missing agent shows up in the logs,
	// the service still runs without it
	if v, err := goose.New(root.Prefix("FOCUSGUARD_AGENT_")).Version(context.Background()); err != nil {
		l.Warn().Err(err).Msg("language agent unavailable, interventions will fall back to canned messages")
	} else {
		l.Info().Str("version", v).Msg("language agent found")
	}

	// http server (reads FOCUSGUARD_API_PORT / FOCUSGUARD_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Files:          files,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
