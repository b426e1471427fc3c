// Package scan implements the incremental indexing walk: diff the
// filesystem under the configured roots against the store's baseline,
// re-extract only new and modified files, then drop documents whose files
// have vanished.
//
// The scanner runs in a background goroutine and reports through a task
// bridge; it never returns an error directly. Per-file failures are counted
// and reported as info messages so one unreadable PDF cannot abort a
// thousand-file scan.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpl-au/docdex/internal/extract"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/jpl-au/docdex/internal/task"
)

// progressEvery is how many enumerated files pass between progress messages.
const progressEvery = 100

// Summary is the terminal payload of a scan run.
type Summary struct {
	Added     int           `json:"added"`     // new documents indexed
	Updated   int           `json:"updated"`   // modified documents re-processed
	Reindexed int           `json:"reindexed"` // documents whose text entries were rebuilt
	Removed   int           `json:"removed"`   // documents whose files vanished
	Errors    int           `json:"errors"`    // per-file extraction/indexing failures
	Duration  time.Duration `json:"duration"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d added, %d updated, %d reindexed, %d removed, %d errors in %s",
		s.Added, s.Updated, s.Reindexed, s.Removed, s.Errors, s.Duration.Round(time.Millisecond))
}

// Scanner walks scan roots and keeps the store in step with the filesystem.
type Scanner struct {
	store *store.SQLiteStore

	// MaxDepth limits directory recursion below each root; 0 is unlimited.
	MaxDepth int
}

// New returns a Scanner over the given store.
func New(s *store.SQLiteStore) *Scanner {
	return &Scanner{store: s}
}

// Run performs one full incremental scan, reporting through the bridge.
// The bridge must already be started; Run always posts exactly one terminal
// message. Intended to be called in a goroutine.
func (sc *Scanner) Run(ctx context.Context, bridge *task.Bridge) {
	start := time.Now()

	roots, err := sc.store.Roots(ctx)
	if err != nil {
		bridge.Fail(fmt.Errorf("load scan roots: %w", err))
		return
	}
	if len(roots) == 0 {
		bridge.Info("no scan paths configured")
		bridge.Finish(Summary{Duration: time.Since(start)})
		return
	}

	baseline, err := sc.store.Baseline(ctx)
	if err != nil {
		bridge.Fail(fmt.Errorf("load index baseline: %w", err))
		return
	}

	bridge.Status("Starting incremental scan")

	var sum Summary

	// Enumerate before processing so progress messages carry a real total.
	files, err := sc.enumerate(ctx, bridge, roots, &sum)
	if err != nil {
		bridge.Fail(err)
		return
	}

	found := make(map[string]bool, len(baseline))
	for i, f := range files {
		if ctx.Err() != nil {
			bridge.Fail(ctx.Err())
			return
		}
		if (i+1)%progressEvery == 0 {
			bridge.Progress(i+1, len(files), f.path)
		}
		sc.processFile(ctx, bridge, f, baseline, found, &sum)
	}

	bridge.Status("Removing obsolete entries")
	var stale []int64
	for path, entry := range baseline {
		if !found[path] {
			stale = append(stale, entry.ID)
		}
	}
	removed, err := sc.store.DeleteByIDs(ctx, stale)
	if err != nil {
		bridge.Fail(fmt.Errorf("remove obsolete documents: %w", err))
		return
	}
	sum.Removed = int(removed)

	// Index optimisation is best-effort: a failure here never loses data.
	bridge.Status("Optimizing index")
	if err := sc.store.Optimize(ctx); err != nil {
		bridge.Info("optimize failed: " + err.Error())
	}

	sum.Duration = time.Since(start)
	bridge.Finish(sum)
}

// candidate is one file the enumeration pass selected for processing.
type candidate struct {
	root store.ScanRoot
	path string
	d    fs.DirEntry
}

// enumerate walks every root and collects the files that pass the skip and
// depth filters. Unreadable directories are counted and skipped.
func (sc *Scanner) enumerate(ctx context.Context, bridge *task.Bridge,
	roots []store.ScanRoot, sum *Summary) ([]candidate, error) {

	var files []candidate
	for _, root := range roots {
		info, err := os.Stat(root.Path)
		if err != nil || !info.IsDir() {
			bridge.Status("Skipping inaccessible root: " + root.Path)
			continue
		}
		bridge.Status("Scanning: " + root.Path)

		err = filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, walkErr error) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if walkErr != nil {
				bridge.Info("cannot read " + path)
				sum.Errors++
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if sc.tooDeep(root.Path, path) {
					return fs.SkipDir
				}
				return nil
			}
			if skipFile(d.Name()) {
				return nil
			}
			files = append(files, candidate{root: root, path: path, d: d})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root.Path, err)
		}
	}
	return files, nil
}

// processFile diffs one file against the baseline and indexes it when new or
// modified. Failures are counted, reported and swallowed; a file that fails
// here is still on disk, so it is marked found and kept out of the
// obsolete-entry pass.
func (sc *Scanner) processFile(ctx context.Context, bridge *task.Bridge, f candidate,
	baseline map[string]store.BaselineEntry, found map[string]bool, sum *Summary) {

	entry, known := baseline[f.path]

	info, err := f.d.Info()
	if err != nil {
		bridge.Info("stat failed: " + f.path)
		sum.Errors++
		if known {
			found[f.path] = true
		}
		return
	}
	mtime := info.ModTime().Unix()

	if known && mtime <= entry.LastModified {
		found[f.path] = true
		return
	}

	meta := MetaFromPath(f.path)
	manufacturer := f.root.DefaultManufacturer
	if manufacturer == "" {
		manufacturer = meta.Manufacturer
	}

	pages, err := extract.Pages(f.path)
	if err != nil {
		bridge.Info("text extraction failed: " + f.path)
		sum.Errors++
		pages = nil // metadata still gets indexed
	}

	bridge.Status("Indexing: " + f.d.Name())
	_, created, err := sc.store.IndexDocument(ctx, store.Fields{
		Filepath:     f.path,
		Filename:     f.d.Name(),
		LastModified: mtime,
		Manufacturer: manufacturer,
		DeviceModel:  meta.DeviceModel,
		DocumentType: meta.DocumentType,
	}, pages)
	if err != nil {
		bridge.Info("indexing failed: " + f.path)
		sum.Errors++
		if known {
			found[f.path] = true
		}
		return
	}

	if created {
		sum.Added++
	} else {
		sum.Updated++
	}
	if len(pages) > 0 {
		sum.Reindexed++
	}
	found[f.path] = true
}

// tooDeep reports whether dir exceeds the configured recursion depth below
// root.
func (sc *Scanner) tooDeep(root, dir string) bool {
	if sc.MaxDepth <= 0 || dir == root {
		return false
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	depth := strings.Count(rel, string(filepath.Separator)) + 1
	return depth > sc.MaxDepth
}

// skipFile filters out files that should never be indexed: Office lock
// files, temporary saves and unsupported extensions.
func skipFile(name string) bool {
	if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".~lock.") {
		return true
	}
	return !extract.Supported(filepath.Ext(name))
}
