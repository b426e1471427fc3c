// Package annotate provides the curated layer on top of the scanned index:
// cross-references between documents, free-text notes, and named bookmarks.
// All of it survives rescans; it disappears only when its document leaves
// the index.
// Registers commands: link, unlink, note, fav.
package annotate

import (
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the annotate extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "annotate" - this extension manages links, notes and bookmarks.
func (e *Extension) Name() string { return "annotate" }

// Init connects to the shared service for annotation operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the link, unlink, note and fav commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newLinkCmd(),
		e.newUnlinkCmd(),
		e.newNoteCmd(),
		e.newFavCmd(),
	}
}
