// Package api provides the HTTP API for the application
package api

import (
	"focusguard/internal/platform/config"
	"focusguard/internal/platform/logger"
	phttp "focusguard/internal/platform/net/http"
	"focusguard/internal/platform/store/jsonfile"

	"focusguard/internal/modkit"
	"focusguard/internal/modkit/httpkit"
	"focusguard/internal/modkit/module"
	"focusguard/internal/modkit/swaggerkit"

	"focusguard/internal/adapters/agent/goose"
	"focusguard/internal/adapters/speech"

	metamod "focusguard/internal/services/api/meta/module"
	intervenemod "focusguard/internal/services/intervene/module"
	prefsmod "focusguard/internal/services/prefs/module"
	sessionmod "focusguard/internal/services/session/module"
	trackermod "focusguard/internal/services/tracker/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Files          *jsonfile.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Files: opt.Files,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	agent := goose.New(deps.Cfg.Prefix("FOCUSGUARD_AGENT_"))
	speaker := speech.New(deps.Cfg.Prefix("FOCUSGUARD_SPEECH_"))

	// prefs and tracker come first, the rest is wired off their ports
	prefs := prefsmod.New(deps)
	tracker := trackermod.New(deps)

	session := sessionmod.New(deps, modkit.WithPorts(sessionmod.PortDeps{
		Toggler: module.MustPortsOf[trackermod.Ports](tracker).Control,
	}))

	intervene := intervenemod.New(deps, modkit.WithPorts(intervenemod.PortDeps{
		Prefs:   module.MustPortsOf[prefsmod.Ports](prefs).Reader,
		Events:  module.MustPortsOf[trackermod.Ports](tracker).Events,
		Control: module.MustPortsOf[sessionmod.Ports](session).Control,
		Stats:   module.MustPortsOf[sessionmod.Ports](session).Stats,
		Agent:   agent,
		Speaker: speaker,
	}))

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Probes{Agent: agent})),
		prefs,
		tracker,
		session,
		intervene,
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// flat API with a common middleware stack
	r.Group(func(api httpkit.Router) {
		api.Use(httpkit.CommonStack()...)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
