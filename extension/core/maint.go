// maint.go implements the stats and optimize commands for index maintenance.
//
// Design: optimize combines the FTS5 merge, VACUUM and a WAL checkpoint into
// one command. Users run it occasionally after large scans; splitting the
// three steps into separate commands would add surface without benefit.

package core

import (
	"fmt"
	"time"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long:  `Show aggregate index statistics: documents, indexed pages, scan roots, links, notes and bookmarks.`,
		RunE:  e.runStats,
	}
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	stats, err := e.svc.Stats(c.Context())

	log.Event("core:stats", "read").Author(cmd.Author()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(stats)
	}

	fmt.Fprintf(cmd.Out(), "Documents:  %d\n", stats.Documents)
	fmt.Fprintf(cmd.Out(), "Pages:      %d\n", stats.Pages)
	fmt.Fprintf(cmd.Out(), "Scan roots: %d\n", stats.ScanRoots)
	fmt.Fprintf(cmd.Out(), "Links:      %d\n", stats.Links)
	fmt.Fprintf(cmd.Out(), "Notes:      %d\n", stats.Notes)
	fmt.Fprintf(cmd.Out(), "Bookmarks:  %d\n", stats.Favorites)
	if stats.Documents > 0 {
		fmt.Fprintf(cmd.Out(), "Oldest doc: %s\n", time.Unix(stats.OldestDoc, 0).Format("2006-01-02"))
		fmt.Fprintf(cmd.Out(), "Newest doc: %s\n", time.Unix(stats.NewestDoc, 0).Format("2006-01-02"))
	}
	return nil
}

func (e *Extension) newOptimizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Optimise the index database",
		Long: `Merges the full-text index's internal structures, reclaims free pages
and flushes the write-ahead log. Run occasionally after large scans.`,
		RunE: e.runOptimize,
	}
}

func (e *Extension) runOptimize(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	err := e.svc.Optimize(ctx)
	if err == nil {
		err = e.svc.Compact(ctx)
	}
	if err == nil {
		err = e.svc.Checkpoint(ctx)
	}

	log.Event("core:optimize", "optimize").Author(cmd.Author()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("optimize: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]bool{"optimized": true})
	}
	fmt.Fprintln(cmd.Out(), "Index optimised")
	return nil
}
