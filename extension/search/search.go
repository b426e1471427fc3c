// Package search provides the search command. It blends full-text relevance
// with filename/metadata substring matches via the service's search engine.
// Registers commands: search.
package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/progress"
	searchengine "github.com/jpl-au/docdex/internal/search"
	"github.com/jpl-au/docdex/internal/service"
	"github.com/jpl-au/docdex/internal/task"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search" - this extension provides the search command.
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
	}
}

func (e *Extension) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Search indexed documents",
		Long: `Searches the index, blending full-text relevance with filename and
metadata substring matches. Full-text hits lead, each with its best
matching snippet; metadata-only hits trail in filename order.

  docdex search leak test        # plain words
  docdex search '"leak test"'    # FTS5 phrase syntax
  docdex search                  # no query: browse the collection

If the full-text engine rejects the query syntax, metadata matches are
still returned and the result is marked degraded.`,
		Args: cobra.ArbitraryArgs,
		RunE: e.runSearch,
	}
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	query := strings.Join(args, " ")

	if err := e.svc.StartSearch(ctx, query); err != nil {
		log.Event("search", "search").Author(cmd.Author()).Detail("query", query).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}

	res, err := e.followSearch(ctx)

	l := log.Event("search", "search").Author(cmd.Author()).Detail("query", query)
	if res != nil {
		l.Detail("hits", len(res.Hits)).Detail("degraded", res.Degraded)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}

	printResults(res)
	return nil
}

// followSearch polls the search bridge until the terminal message arrives.
func (e *Extension) followSearch(ctx context.Context) (*searchengine.Results, error) {
	sp := progress.NewSpinner("Searching")
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		sp.Tick()

		for _, m := range e.svc.PollSearch() {
			switch m.Type {
			case task.Status:
				sp.SetLabel(m.Text)
			case task.Info:
				sp.Stop()
				fmt.Fprintln(os.Stderr, m.Text)
				sp.Start()
			case task.Finished:
				if res, ok := m.Payload.(*searchengine.Results); ok {
					return res, nil
				}
				return &searchengine.Results{}, nil
			case task.Error:
				return nil, errors.New(m.Text)
			}
		}
	}
}

func printResults(res *searchengine.Results) {
	if len(res.Hits) == 0 {
		fmt.Fprintln(cmd.Out(), "no matches")
		return
	}

	for _, h := range res.Hits {
		d := h.Document
		meta := make([]string, 0, 3)
		for _, v := range []string{d.Manufacturer, d.DeviceModel, d.DocumentType} {
			if v != "" {
				meta = append(meta, v)
			}
		}
		line := fmt.Sprintf("%-6d %s", d.ID, d.Filename)
		if len(meta) > 0 {
			line += "  [" + strings.Join(meta, " / ") + "]"
		}
		fmt.Fprintln(cmd.Out(), line)
		if h.Snippet != nil {
			fmt.Fprintf(cmd.Out(), "       p.%d: %s\n", h.Snippet.Page, h.Snippet.Text)
		}
	}
}
