// roots.go implements the user-managed list of scan roots.
//
// Roots are not deduplicated against each other: overlapping roots cost a
// little extra walking but cannot duplicate documents, because document
// identity is the filepath.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/docdex/internal/validate"
)

// AddRoot registers a directory for scanning with an optional default
// manufacturer applied to new documents found under it. Returns
// ErrAlreadyExists for a duplicate path.
func (s *SQLiteStore) AddRoot(ctx context.Context, path, defaultManufacturer string) (int64, error) {
	if err := validate.Root(path); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_roots (path, default_manufacturer) VALUES (?, ?)`,
		path, nilIfEmpty(defaultManufacturer))
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("scan root %s: %w", path, ErrAlreadyExists)
	}
	if err != nil {
		return 0, fmt.Errorf("add scan root: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add scan root: %w", err)
	}
	return id, nil
}

// RemoveRoot deletes a scan root by path. Returns ErrNotFound if it isn't
// registered. Documents indexed under the root remain until the next scan
// no longer finds them.
func (s *SQLiteStore) RemoveRoot(ctx context.Context, path string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scan_roots WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("remove scan root %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove scan root %s: %w", path, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Roots returns all scan roots ordered by path.
func (s *SQLiteStore) Roots(ctx context.Context) ([]ScanRoot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, default_manufacturer FROM scan_roots ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list scan roots: %w", err)
	}
	defer rows.Close()

	var roots []ScanRoot
	for rows.Next() {
		var r ScanRoot
		var manuf sql.NullString
		if err := rows.Scan(&r.ID, &r.Path, &manuf); err != nil {
			return nil, fmt.Errorf("scan root row: %w", err)
		}
		r.DefaultManufacturer = manuf.String
		roots = append(roots, r)
	}
	return roots, rows.Err()
}
