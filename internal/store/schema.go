// schema.go defines the SQLite database schema and provides schema execution
// helpers.
//
// Schema files are embedded from the sql/ directory and executed in
// alphabetical order (hence the numeric prefixes like 001_, 002_). This
// keeps each table's schema self-contained and reviewable, and produces
// cleaner diffs when the schema changes.

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

// execSchema executes all embedded .sql files in alphabetical order. Each
// file uses IF NOT EXISTS clauses for idempotency.
func execSchema(db *sql.DB) error {
	entries, err := fs.ReadDir(schemas, "sql")
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	// Sort entries to ensure deterministic order (should already be sorted, but be explicit)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := schemas.ReadFile("sql/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}
