// note.go implements the "docdex note" command group.

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

func (e *Extension) newNoteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "note",
		Short: "Manage document notes",
		Long: `Attach free-text notes to documents, optionally anchored to a page.

  docdex note add 42 "calibration values superseded, see rev C"
  docdex note add 42 "fuse table" --page 12
  docdex note ls 42
  docdex note rm 7`,
	}
	c.AddCommand(e.newNoteAddCmd(), e.newNoteRmCmd(), e.newNoteLsCmd())
	return c
}

func (e *Extension) newNoteAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <doc-id> <text...>",
		Short: "Attach a note to a document",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runNoteAdd,
	}
	c.Flags().IntP(extension.FlagPage, "p", -1, "Page the note refers to (0-based)")
	return c
}

func (e *Extension) runNoteAdd(c *cobra.Command, args []string) error {
	docID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("invalid document id %q", args[0]))
	}
	text := strings.Join(args[1:], " ")

	var page *int
	if p, _ := c.Flags().GetInt(extension.FlagPage); p >= 0 {
		page = &p
	}

	id, err := e.svc.AddNote(c.Context(), docID, page, text)

	log.Event("note:add", "note").
		Author(cmd.Author()).
		Doc(docID).
		Detail("id", id).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add note to %d: %w", docID, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "document_id": docID})
	}
	fmt.Fprintf(cmd.Out(), "Added note %d\n", id)
	return nil
}

func (e *Extension) newNoteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runNoteRm,
	}
}

func (e *Extension) runNoteRm(c *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("invalid note id %q", args[0]))
	}

	err = e.svc.DeleteNote(c.Context(), id)

	log.Event("note:rm", "unnote").
		Author(cmd.Author()).
		Detail("id", id).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("delete note %d: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "removed": true})
	}
	fmt.Fprintf(cmd.Out(), "Deleted note %d\n", id)
	return nil
}

func (e *Extension) newNoteLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <doc-id>",
		Short: "List a document's notes, newest first",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runNoteLs,
	}
}

func (e *Extension) runNoteLs(c *cobra.Command, args []string) error {
	docID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("invalid document id %q", args[0]))
	}

	notes, err := e.svc.Notes(c.Context(), docID)

	log.Event("note:ls", "list").
		Author(cmd.Author()).
		Doc(docID).
		Detail("count", len(notes)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list notes for %d: %w", docID, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(notes)
	}

	for _, n := range notes {
		if n.PageNumber != nil {
			fmt.Fprintf(cmd.Out(), "%d (p.%d): %s\n", n.ID, *n.PageNumber, n.Text)
		} else {
			fmt.Fprintf(cmd.Out(), "%d: %s\n", n.ID, n.Text)
		}
	}
	return nil
}
