// roots.go implements scan root management.

package document

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/docdex/internal/store"
)

// AddRoot registers a directory for scanning. Relative paths are made
// absolute first so the stored root is stable regardless of where docdex
// runs from later.
func (s *Service) AddRoot(ctx context.Context, path, defaultManufacturer string) (int64, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolve root path %s: %w", path, err)
	}
	return s.store.AddRoot(ctx, abs, defaultManufacturer)
}

// RemoveRoot unregisters a scan root by path.
func (s *Service) RemoveRoot(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve root path %s: %w", path, err)
	}
	return s.store.RemoveRoot(ctx, abs)
}

// Roots returns all scan roots ordered by path.
func (s *Service) Roots(ctx context.Context) ([]store.ScanRoot, error) {
	return s.store.Roots(ctx)
}
