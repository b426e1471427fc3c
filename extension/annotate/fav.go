// fav.go implements the "docdex fav" command group for named bookmarks.
//
// A bookmark is a unique name pointing at one document page - "evita4 fuse
// table" style shortcuts to places a technician returns to repeatedly.

package annotate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newFavCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "fav",
		Short: "Manage bookmarks",
		Long: `Manage named bookmarks pointing at document pages.

  docdex fav add "evita4 fuse table" 42 --page 12
  docdex fav ls
  docdex fav ls "evita4 fuse table"
  docdex fav mv 3 "evita4 fuse table rev C"
  docdex fav rm 3`,
	}
	c.AddCommand(e.newFavAddCmd(), e.newFavRmCmd(), e.newFavMvCmd(), e.newFavLsCmd())
	return c
}

func (e *Extension) newFavAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <name> <doc-id>",
		Short: "Bookmark a document page",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runFavAdd,
	}
	c.Flags().IntP(extension.FlagPage, "p", 0, "Page the bookmark points at (0-based)")
	return c
}

func (e *Extension) runFavAdd(c *cobra.Command, args []string) error {
	name := args[0]
	docID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("invalid document id %q", args[1]))
	}
	page, _ := c.Flags().GetInt(extension.FlagPage)

	id, err := e.svc.AddFavorite(c.Context(), name, docID, page)

	log.Event("fav:add", "favorite").
		Author(cmd.Author()).
		Doc(docID).
		Detail("name", name).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add bookmark %q: %w", name, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "name": name})
	}
	fmt.Fprintf(cmd.Out(), "Added bookmark %q\n", name)
	return nil
}

func (e *Extension) newFavRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <fav-id>",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runFavRm,
	}
}

func (e *Extension) runFavRm(c *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("invalid bookmark id %q", args[0]))
	}

	err = e.svc.DeleteFavorite(c.Context(), id)

	log.Event("fav:rm", "unfavorite").
		Author(cmd.Author()).
		Detail("id", id).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("delete bookmark %d: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "removed": true})
	}
	fmt.Fprintf(cmd.Out(), "Deleted bookmark %d\n", id)
	return nil
}

func (e *Extension) newFavMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <fav-id> <new-name...>",
		Short: "Rename a bookmark",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runFavMv,
	}
}

func (e *Extension) runFavMv(c *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("invalid bookmark id %q", args[0]))
	}
	newName := strings.Join(args[1:], " ")

	err = e.svc.RenameFavorite(c.Context(), id, newName)

	log.Event("fav:mv", "favorite").
		Author(cmd.Author()).
		Detail("id", id).
		Detail("name", newName).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rename bookmark %d: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "name": newName})
	}
	fmt.Fprintf(cmd.Out(), "Renamed bookmark %d to %q\n", id, newName)
	return nil
}

func (e *Extension) newFavLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [name]",
		Short: "List bookmarks, or look one up by name",
		Args:  cobra.MaximumNArgs(1),
		RunE:  e.runFavLs,
	}
}

func (e *Extension) runFavLs(c *cobra.Command, args []string) error {
	ctx := c.Context()

	if len(args) == 1 {
		fav, err := e.svc.Favorite(ctx, args[0])
		log.Event("fav:ls", "read").Author(cmd.Author()).Detail("name", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("bookmark %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(fav)
		}
		fmt.Fprintf(cmd.Out(), "%d  %q -> doc %d p.%d\n", fav.ID, fav.Name, fav.DocumentID, fav.PageNumber)
		return nil
	}

	favs, err := e.svc.Favorites(ctx)

	log.Event("fav:ls", "list").
		Author(cmd.Author()).
		Detail("count", len(favs)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list bookmarks: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(favs)
	}

	for _, f := range favs {
		fmt.Fprintf(cmd.Out(), "%d  %q -> doc %d p.%d\n", f.ID, f.Name, f.DocumentID, f.PageNumber)
	}
	return nil
}
