// Package modkit provides module wiring and core deps
package modkit

import (
	"focusguard/internal/platform/config"
	"focusguard/internal/platform/logger"
	"focusguard/internal/platform/store/jsonfile"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	Files *jsonfile.Store
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the store
func (d Deps) ZeroOK() bool { return true }
