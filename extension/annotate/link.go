// link.go implements the link and unlink commands for cross-references.
//
// Design: The link command combines create and list operations based on
// parameters, following the pattern used across the CLI of one command per
// noun. Links are directed pairs, but listing shows both directions because
// a technician asking "what belongs with this manual" doesn't care which
// side created the reference.

package annotate

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

func (e *Extension) newLinkCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "link <id> [ids...]",
		Short: "Create links between documents",
		Long: `Create links between documents, or list a document's links.

  docdex link 3 7                      # link document 3 to document 7
  docdex link 3 7 9                    # link 3 to 7 and to 9
  docdex link 3 7 -d "service kit"     # with a description
  docdex link --list 3                 # list links and linked documents`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runLink,
	}
	c.Flags().StringP(extension.FlagDescription, "d", "", "Why the documents are related")
	c.Flags().BoolP(extension.FlagList, "l", false, "List links for a document")
	return c
}

func (e *Extension) runLink(c *cobra.Command, args []string) error {
	ctx := c.Context()
	description, _ := c.Flags().GetString(extension.FlagDescription)
	list, _ := c.Flags().GetBool(extension.FlagList)

	ids, err := parseIDs(args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if list {
		return e.listLinks(ctx, ids[0])
	}

	if len(ids) < 2 {
		return cmd.PrintJSONError(fmt.Errorf("link requires at least 2 document ids"))
	}
	return e.createLinks(ctx, ids[0], ids[1:], description)
}

// createLinks establishes links from a source document to one or more targets.
func (e *Extension) createLinks(ctx context.Context, from int64, targets []int64, description string) error {
	var linkIDs []int64
	for _, to := range targets {
		id, err := e.svc.AddLink(ctx, from, to, description)

		log.Event("link:create", "link").
			Author(cmd.Author()).
			Doc(from).
			Detail("to", to).
			Detail("id", id).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("link %d to %d: %w", from, to, err))
		}
		linkIDs = append(linkIDs, id)

		if !cmd.JSON() {
			if description != "" {
				fmt.Fprintf(cmd.Out(), "%d  %d -> %d (%s)\n", id, from, to, description)
			} else {
				fmt.Fprintf(cmd.Out(), "%d  %d -> %d\n", id, from, to)
			}
		}
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"from":        from,
			"targets":     targets,
			"description": description,
			"ids":         linkIDs,
		})
	}
	return nil
}

// listLinks displays a document's links alongside the documents they reach.
func (e *Extension) listLinks(ctx context.Context, docID int64) error {
	links, err := e.svc.Links(ctx, docID)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list links for %d: %w", docID, err))
	}
	linked, err := e.svc.LinkedDocuments(ctx, docID)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("linked documents for %d: %w", docID, err))
	}

	log.Event("link:list", "list").
		Author(cmd.Author()).
		Doc(docID).
		Detail("count", len(links)).
		Write(nil)

	if cmd.JSON() {
		docs := make([]store.DocJSON, len(linked))
		for i := range linked {
			docs[i] = linked[i].ToJSON()
		}
		return cmd.PrintJSON(map[string]any{"links": links, "documents": docs})
	}

	byID := make(map[int64]string, len(linked))
	for _, d := range linked {
		byID[d.ID] = d.Filename
	}
	for _, l := range links {
		other := l.TargetID
		if other == docID {
			other = l.SourceID
		}
		line := fmt.Sprintf("%d  %d %s", l.ID, other, byID[other])
		if l.Description != "" {
			line += " (" + l.Description + ")"
		}
		fmt.Fprintln(cmd.Out(), line)
	}
	return nil
}

func (e *Extension) newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <link-id>",
		Short: "Remove a link",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runUnlink,
	}
}

func (e *Extension) runUnlink(c *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("invalid link id %q", args[0]))
	}

	err = e.svc.RemoveLink(c.Context(), id)

	log.Event("link:remove", "unlink").
		Author(cmd.Author()).
		Detail("id", id).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("unlink %d: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "removed": true})
	}
	fmt.Fprintf(cmd.Out(), "Removed link %d\n", id)
	return nil
}

// parseIDs converts CLI args to document ids, failing on the first non-number.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid document id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
