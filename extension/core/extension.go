// Package core provides the core extension for docdex.
// It registers commands: init, config, serve, guide, stats, optimize, version.
package core

import (
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental docdex commands.
func (e *Extension) Name() string { return "core" }

// Init connects to the shared service for stats and maintenance operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns all core CLI commands for index management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		e.newStatsCmd(),
		e.newOptimizeCmd(),
		newVersionCmd(),
	}
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server needs its own service lifecycle.
// version: Displays build info, doesn't need a database connection.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "version"}
}
