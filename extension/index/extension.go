// Package index provides the filesystem indexing side of docdex: scan root
// management, the incremental scan itself, and the commands that inspect and
// curate what the scan produced.
// Registers commands: root, scan, ls, show, set.
package index

import (
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the index extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "index" - this extension manages the document index.
func (e *Extension) Name() string { return "index" }

// Init connects to the shared service for index operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the root, scan, ls, show and set commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newRootCmd(),
		e.newScanCmd(),
		e.newLsCmd(),
		e.newShowCmd(),
		e.newSetCmd(),
	}
}
