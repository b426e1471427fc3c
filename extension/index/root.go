// root.go implements the "docdex root" command group for scan root management.
//
// Scan roots are the directories the scan walks. Each root can carry a
// default manufacturer which is applied to files whose path doesn't name
// one - useful when a whole directory tree belongs to a single vendor.

package index

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newRootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "root",
		Short: "Manage scan roots",
		Long: `Manage the directories scanned for documents.

  docdex root add /srv/docs                       # register a directory
  docdex root add /srv/draeger -m Draeger         # with a default manufacturer
  docdex root rm /srv/docs                        # unregister
  docdex root ls                                  # list registered roots

Removing a root does not remove its documents; they disappear on the
next scan when their files are no longer under any registered root.`,
	}
	c.AddCommand(e.newRootAddCmd(), e.newRootRmCmd(), e.newRootLsCmd())
	return c
}

func (e *Extension) newRootAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a directory for scanning",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRootAdd,
	}
	c.Flags().StringP(extension.FlagManufacturer, "m", "", "Default manufacturer for files under this root")
	return c
}

func (e *Extension) runRootAdd(c *cobra.Command, args []string) error {
	manufacturer, _ := c.Flags().GetString(extension.FlagManufacturer)

	path, err := filepath.Abs(args[0])
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add root %q: %w", args[0], err))
	}

	id, err := e.svc.AddRoot(c.Context(), path, manufacturer)

	log.Event("root:add", "root").
		Author(cmd.Author()).
		Path(path).
		Detail("manufacturer", manufacturer).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add root %q: %w", path, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "path": path})
	}
	fmt.Fprintf(cmd.Out(), "Added scan root %s\n", path)
	return nil
}

func (e *Extension) newRootRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Unregister a scan root",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRootRm,
	}
}

func (e *Extension) runRootRm(c *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("remove root %q: %w", args[0], err))
	}

	err = e.svc.RemoveRoot(c.Context(), path)

	log.Event("root:rm", "unroot").
		Author(cmd.Author()).
		Path(path).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("remove root %q: %w", path, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": path, "removed": true})
	}
	fmt.Fprintf(cmd.Out(), "Removed scan root %s\n", path)
	return nil
}

func (e *Extension) newRootLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List registered scan roots",
		Args:  cobra.NoArgs,
		RunE:  e.runRootLs,
	}
}

func (e *Extension) runRootLs(c *cobra.Command, _ []string) error {
	roots, err := e.svc.Roots(c.Context())

	log.Event("root:ls", "list").
		Author(cmd.Author()).
		Detail("count", len(roots)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list roots: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(roots)
	}

	for _, r := range roots {
		if r.DefaultManufacturer != "" {
			fmt.Fprintf(cmd.Out(), "%s [%s]\n", r.Path, r.DefaultManufacturer)
		} else {
			fmt.Fprintln(cmd.Out(), r.Path)
		}
	}
	return nil
}
