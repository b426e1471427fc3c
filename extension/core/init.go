// init.go implements the "docdex init" command for index initialisation.
//
// Separated from extension.go to isolate init-specific logic. Init is special
// because it runs before an index exists and creates the initial database.
//
// Design: Init does NOT create config - that's managed separately via
// "docdex config". This follows git's model where init creates repository
// structure and config is separate. The database itself is always gitignored
// because it is derived state, rebuildable with "docdex scan".

package core

import (
	"fmt"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/internal/document"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise a new docdex index",
		Long: `Creates a .docdex/docdex.db index in the current directory.

Use --dir to create in a different directory:
  docdex init --dir /path/to/project    # creates /path/to/project/.docdex/docdex.db

After init, register directories to scan and build the index:
  docdex root add /srv/service-docs
  docdex scan

Note: init does not create config. Use "docdex config" to set up configuration.`,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	dir := cmd.Dir()

	err := document.Init(cmd.Force(), dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFile
	if dir != "" {
		loc = dir + "/" + loc
	}
	fmt.Fprintf(cmd.Out(), "Initialised docdex index in %s\n", loc)
	return nil
}
