// maint.go implements maintenance operations: statistics, full-text index
// optimisation and database compaction.

package document

import (
	"context"

	"github.com/jpl-au/docdex/internal/store"
)

// Stats returns aggregate index statistics.
func (s *Service) Stats(ctx context.Context) (store.Stats, error) {
	return s.store.Stats(ctx)
}

// Optimize merges the full-text index's internal structures.
func (s *Service) Optimize(ctx context.Context) error {
	return s.store.Optimize(ctx)
}

// Compact reclaims free pages in the database file.
func (s *Service) Compact(ctx context.Context) error {
	return s.store.Compact(ctx)
}
