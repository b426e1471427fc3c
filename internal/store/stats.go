// stats.go implements aggregate statistics for operational visibility.
//
// Separated to collect read-only aggregate operations distinct from CRUD.
// All queries use COUNT()/MIN()/MAX() directly; no document content is
// loaded into memory.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats returns aggregate counts across the index.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM documents`, &st.Documents},
		{`SELECT COUNT(*) FROM documents_fts`, &st.Pages},
		{`SELECT COUNT(*) FROM scan_roots`, &st.ScanRoots},
		{`SELECT COUNT(*) FROM links`, &st.Links},
		{`SELECT COUNT(*) FROM notes`, &st.Notes},
		{`SELECT COUNT(*) FROM favorites`, &st.Favorites},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return st, fmt.Errorf("stats: %w", err)
		}
	}

	var oldest, newest sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(last_modified), MAX(last_modified) FROM documents`).Scan(&oldest, &newest)
	if err != nil {
		return st, fmt.Errorf("stats mtime range: %w", err)
	}
	st.OldestDoc = oldest.Int64
	st.NewestDoc = newest.Int64

	return st, nil
}
