/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that discovers
// the index, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the index exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/config"
	"github.com/jpl-au/docdex/internal/document"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/repo"
)

// noStoreCommands lists commands that bypass automatic index initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip index initialisation.
//
// Why this exists: Most commands need the index, but some must work without it.
// There are two categories:
//
//  1. Bootstrap commands (init, guide, config) - These help users set up or
//     learn about docdex before an index exists. Running "docdex guide"
//     shouldn't fail just because you haven't run "docdex init" yet.
//
//  2. Extension-declared storeless commands - Extensions can implement the
//     Storeless interface to declare commands that manage their own service
//     lifecycle. For example, "serve" opens the index itself so it can run
//     in uninitialised mode.
//
// When adding a new command: If it's a core bootstrap command, add it here.
// Otherwise, implement extension.Storeless in your extension.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		// Core bootstrap commands - always storeless
		"init":   true,
		"guide":  true,
		"config": true,
	}

	// Add extension-declared storeless commands
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *document.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions creates the index service and injects it into extensions.
//
// Why sync.Once: The service is expensive to create (opens DB, sets up WAL mode)
// and must be shared across all extensions. We use sync.Once to guarantee exactly
// one initialisation per process, even if multiple commands somehow trigger it.
//
// Error handling: ErrNotInitialised is expected for first-time users who haven't
// run "docdex init" yet - the wrapped error carries the guidance. Other errors
// (permissions, corruption) are returned immediately too.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := openService()
		if err != nil {
			initErr = fmt.Errorf("opening index: %w", err)
			return
		}
		extService = svc

		// Set index identifier for audit logging
		log.SetIndex(filepath.Dir(svc.DBPath()))

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)

		// Inject the shared context into all Initializable extensions.
		// This is dependency injection - extensions receive the service rather
		// than creating it themselves, enabling shared state and proper cleanup.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// openService opens the index service, honouring the --dir flag / DOCDEX_DIR
// env var before falling back to walk-up discovery.
func openService() (*document.Service, error) {
	if d := Dir(); d != "" {
		return document.Open(filepath.Join(d, repo.Dir, repo.DBFile))
	}
	return document.New()
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noStoreCommands after all extensions are registered
		noStoreCommands = buildNoStoreCommands()
	})
}
