// show.go implements the "docdex show" command for inspecting one document.
//
// Design: show resolves its argument as a document id first and falls back
// to a filesystem path, so both "docdex show 42" and "docdex show
// /srv/docs/evita4_service.pdf" work. With --page it prints the extracted
// text of that page instead of the record, which is the quickest way to
// check what the index actually captured from a file.

package index

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <id|path>",
		Short: "Show a document's record, links and notes",
		Long: `Shows one indexed document: its metadata, cross-references and notes.

  docdex show 42                  # by id
  docdex show /srv/docs/a.pdf     # by path
  docdex show 42 --page 3         # extracted text of page 3`,
		Args: cobra.ExactArgs(1),
		RunE: e.runShow,
	}
	c.Flags().IntP(extension.FlagPage, "p", -1, "Print the extracted text of this page (0-based)")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	ctx := c.Context()
	page, _ := c.Flags().GetInt(extension.FlagPage)

	doc, err := e.resolve(ctx, args[0])
	if err != nil {
		log.Event("show", "read").Author(cmd.Author()).Path(args[0]).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("show %q: %w", args[0], err))
	}

	if page >= 0 {
		text, err := e.svc.PageText(ctx, doc.ID, page)
		log.Event("show", "read").Author(cmd.Author()).Doc(doc.ID).Detail("page", page).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("page %d of %q: %w", page, doc.Filename, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{"id": doc.ID, "page": page, "text": text})
		}
		fmt.Fprintln(cmd.Out(), text)
		return nil
	}

	links, err := e.svc.Links(ctx, doc.ID)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("links for %q: %w", doc.Filename, err))
	}
	notes, err := e.svc.Notes(ctx, doc.ID)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("notes for %q: %w", doc.Filename, err))
	}

	log.Event("show", "read").Author(cmd.Author()).Doc(doc.ID).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"document": doc.ToJSON(),
			"links":    links,
			"notes":    notes,
		})
	}

	printDocument(doc)
	if len(links) > 0 {
		fmt.Fprintln(cmd.Out(), "Links:")
		for _, l := range links {
			other := l.TargetID
			if other == doc.ID {
				other = l.SourceID
			}
			if l.Description != "" {
				fmt.Fprintf(cmd.Out(), "  %d -> doc %d (%s)\n", l.ID, other, l.Description)
			} else {
				fmt.Fprintf(cmd.Out(), "  %d -> doc %d\n", l.ID, other)
			}
		}
	}
	if len(notes) > 0 {
		fmt.Fprintln(cmd.Out(), "Notes:")
		for _, n := range notes {
			if n.PageNumber != nil {
				fmt.Fprintf(cmd.Out(), "  %d (p.%d): %s\n", n.ID, *n.PageNumber, n.Text)
			} else {
				fmt.Fprintf(cmd.Out(), "  %d: %s\n", n.ID, n.Text)
			}
		}
	}
	return nil
}

// resolve looks up a document by id when the argument is numeric, falling
// back to a path lookup. A numeric filename would be shadowed by an id of
// the same value; pass the full path in that case.
func (e *Extension) resolve(ctx context.Context, arg string) (*store.Document, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if doc, err := e.svc.Document(ctx, id); err == nil {
			return doc, nil
		}
	}
	return e.svc.DocumentByPath(ctx, arg)
}

func printDocument(doc *store.Document) {
	j := doc.ToJSON()
	fmt.Fprintf(cmd.Out(), "ID:           %d\n", j.ID)
	fmt.Fprintf(cmd.Out(), "Filename:     %s\n", j.Filename)
	fmt.Fprintf(cmd.Out(), "Path:         %s\n", j.Filepath)
	fmt.Fprintf(cmd.Out(), "Modified:     %s\n", j.LastModified)
	field := func(label, v string) {
		if v != "" {
			fmt.Fprintf(cmd.Out(), "%-13s %s\n", label+":", v)
		}
	}
	field("Manufacturer", j.Manufacturer)
	field("Model", j.DeviceModel)
	field("Type", j.DocumentType)
	field("Keywords", j.Keywords)
	field("Revision", j.RevisionNumber)
	field("Rev. date", j.RevisionDate)
	field("Status", j.Status)
	field("Applies to", j.ApplicableModels)
	field("Test equip.", j.AssociatedTestEquipment)
}
