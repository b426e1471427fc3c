// scan.go implements the "docdex scan" command.
//
// The scan runs on the service's background bridge; this command is just a
// polling consumer that turns the message stream into terminal feedback.
// Status messages drive a spinner until the worker starts reporting file
// counts, at which point the display switches to a progress line.

package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/progress"
	"github.com/jpl-au/docdex/internal/scan"
	"github.com/jpl-au/docdex/internal/task"
	"github.com/spf13/cobra"
)

// pollInterval balances display smoothness against busy-waiting. The worker
// posts progress in file-count batches, so polling faster gains nothing.
const pollInterval = 100 * time.Millisecond

func (e *Extension) newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan registered roots and update the index",
		Long: `Walks the registered scan roots and updates the index incrementally:
new files are added, modified files are re-extracted, and entries whose
files have vanished are removed. Unchanged files are skipped by mtime.

Register directories first with "docdex root add".`,
		Args: cobra.NoArgs,
		RunE: e.runScan,
	}
}

func (e *Extension) runScan(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	if err := e.svc.StartScan(ctx); err != nil {
		log.Event("scan", "scan").Author(cmd.Author()).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("scan: %w", err))
	}

	sum, err := e.followScan(ctx)

	l := log.Event("scan", "scan").Author(cmd.Author())
	if sum != nil {
		l.Detail("added", sum.Added).
			Detail("updated", sum.Updated).
			Detail("removed", sum.Removed).
			Detail("errors", sum.Errors)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("scan: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(sum)
	}
	fmt.Fprintln(cmd.Out(), sum.String())
	return nil
}

// followScan polls the scan bridge until the terminal message arrives,
// animating a spinner (and later a progress counter) on stderr.
func (e *Extension) followScan(ctx context.Context) (*scan.Summary, error) {
	sp := progress.NewSpinner("Scanning")
	sp.Start()
	defer sp.Stop()

	var prog *progress.Progress

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		sp.Tick()

		for _, m := range e.svc.PollScan() {
			switch m.Type {
			case task.Status:
				sp.SetLabel(m.Text)
			case task.Progress:
				// First count message with a total: retire the spinner for a
				// counter. A count without a total stays on the spinner.
				if prog == nil {
					if m.Total == 0 {
						sp.SetLabel(fmt.Sprintf("Indexing (%d)", m.Current))
						continue
					}
					sp.Stop()
					prog = progress.New("Indexing", m.Total)
				}
				prog.Set(m.Current)
				prog.Print()
			case task.Info:
				sp.Stop()
				if prog != nil {
					prog.Done()
				}
				fmt.Fprintln(os.Stderr, m.Text)
				if prog == nil {
					sp.Start()
				}
			case task.Finished:
				if prog != nil {
					prog.Done()
				}
				if sum, ok := m.Payload.(scan.Summary); ok {
					return &sum, nil
				}
				return &scan.Summary{}, nil
			case task.Error:
				if prog != nil {
					prog.Done()
				}
				return nil, errors.New(m.Text)
			}
		}
	}
}
