// ls.go implements the "docdex ls" command for listing indexed documents.

package index

import (
	"fmt"
	"strings"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List indexed documents",
		Long:  `Lists all indexed documents ordered by filename.`,
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	docs, err := e.svc.List(c.Context())

	log.Event("ls", "list").
		Author(cmd.Author()).
		Detail("count", len(docs)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list documents: %w", err))
	}

	if cmd.JSON() {
		js := make([]store.DocJSON, len(docs))
		for i := range docs {
			js[i] = docs[i].ToJSON()
		}
		return cmd.PrintJSON(js)
	}

	for _, d := range docs {
		fmt.Fprintf(cmd.Out(), "%-6d %s%s\n", d.ID, d.Filename, metaSuffix(&d))
	}
	return nil
}

// metaSuffix renders the extracted metadata that exists, in brackets after
// the filename. Blank fields simply don't show up.
func metaSuffix(d *store.Document) string {
	parts := make([]string, 0, 3)
	for _, v := range []string{d.Manufacturer, d.DeviceModel, d.DocumentType} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "  [" + strings.Join(parts, " / ") + "]"
}
