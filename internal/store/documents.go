// documents.go implements document row persistence: the scan-facing upsert,
// lookups, listings, explicit metadata edits and bulk deletion.
//
// Design: IndexDocument is the single write path used by the scanner. It
// combines the metadata upsert and the full-text replacement in one
// transaction so a document's index entries are always replaced as a
// complete set - a crash or error mid-file leaves the previous state intact.
//
// Metadata merge policy: heuristic values only fill empty columns
// (COALESCE keeps the stored value when present); filename and last_modified
// are always overwritten because the filesystem is authoritative for them.
// SetFields is the explicit user edit and the only way to overwrite a
// non-empty column.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// IndexDocument upserts the document row for f.Filepath and atomically
// replaces its full-text entries with pages. It returns the document id and
// whether a new row was created.
func (s *SQLiteStore) IndexDocument(ctx context.Context, f Fields, pages []Page) (int64, bool, error) {
	var id int64
	var created bool

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT id FROM documents WHERE filepath = ?`, f.Filepath).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			res, err := tx.ExecContext(ctx, `
				INSERT INTO documents (filename, filepath, manufacturer, device_model, document_type, keywords, last_modified)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				f.Filename, f.Filepath, nilIfEmpty(f.Manufacturer), nilIfEmpty(f.DeviceModel),
				nilIfEmpty(f.DocumentType), nilIfEmpty(f.Keywords), f.LastModified)
			if err != nil {
				return fmt.Errorf("insert document: %w", err)
			}
			id, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("insert document id: %w", err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("lookup document: %w", err)
		default:
			// Existing row: filename and mtime always follow the filesystem;
			// heuristic metadata only fills columns that are still empty.
			_, err := tx.ExecContext(ctx, `
				UPDATE documents SET
					filename      = ?,
					last_modified = ?,
					manufacturer  = COALESCE(manufacturer, ?),
					device_model  = COALESCE(device_model, ?),
					document_type = COALESCE(document_type, ?),
					keywords      = COALESCE(keywords, ?)
				WHERE id = ?`,
				f.Filename, f.LastModified, nilIfEmpty(f.Manufacturer), nilIfEmpty(f.DeviceModel),
				nilIfEmpty(f.DocumentType), nilIfEmpty(f.Keywords), id)
			if err != nil {
				return fmt.Errorf("update document: %w", err)
			}
		}

		return replaceEntries(ctx, tx, id, pages)
	})
	if err != nil {
		return 0, false, err
	}
	return id, created, nil
}

// Get retrieves a document by id. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+docColumns+` FROM documents WHERE id = ?`, id)
	return s.scanDocument(row)
}

// GetByPath retrieves a document by its filepath.
func (s *SQLiteStore) GetByPath(ctx context.Context, filepath string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+docColumns+` FROM documents WHERE filepath = ?`, filepath)
	return s.scanDocument(row)
}

// List returns all documents ordered by filename. This is the browse-mode
// result set used when the search query is empty.
func (s *SQLiteStore) List(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+docColumns+` FROM documents ORDER BY filename`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	return s.scanDocuments(rows)
}

// ByIDs fetches the documents for a set of ids. Order of the result is
// unspecified; callers that need rank order re-sort using their rank map.
func (s *SQLiteStore) ByIDs(ctx context.Context, ids []int64) ([]Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+docColumns+` FROM documents WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch documents by id: %w", err)
	}
	defer rows.Close()
	return s.scanDocuments(rows)
}

// Baseline returns the diff baseline for a scan run: every indexed filepath
// mapped to its id and last-known modification time.
func (s *SQLiteStore) Baseline(ctx context.Context) (map[string]BaselineEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filepath, id, last_modified FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}
	defer rows.Close()

	baseline := make(map[string]BaselineEntry)
	for rows.Next() {
		var path string
		var e BaselineEntry
		if err := rows.Scan(&path, &e.ID, &e.LastModified); err != nil {
			return nil, fmt.Errorf("scan baseline row: %w", err)
		}
		baseline[path] = e
	}
	return baseline, rows.Err()
}

// DeleteByIDs removes documents in one transaction. The schema cascades the
// deletion to links, notes and favorites; the FTS trigger removes full-text
// entries. Returns the number of document rows deleted.
func (s *SQLiteStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var removed int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
			if err != nil {
				return fmt.Errorf("delete document %d: %w", id, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("delete document %d: %w", id, err)
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// MetadataMatch returns ids of documents whose filename, path or curated
// metadata contains the query, case-insensitively. LIKE with no indexes on
// the pattern is acceptable here: the document table is small relative to
// the full-text index and this query runs once per search.
func (s *SQLiteStore) MetadataMatch(ctx context.Context, query string) ([]int64, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM documents
		WHERE filename LIKE ? OR filepath LIKE ? OR manufacturer LIKE ?
		   OR device_model LIKE ? OR document_type LIKE ? OR keywords LIKE ?`,
		pattern, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("metadata match: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan metadata match: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetFields applies an explicit metadata edit to one or more documents,
// overwriting stored values. Returns the number of rows updated; ErrNotFound
// if none of the ids exist.
func (s *SQLiteStore) SetFields(ctx context.Context, ids []int64, e FieldEdits) (int64, error) {
	if len(ids) == 0 || e.Empty() {
		return 0, nil
	}

	var sets []string
	var args []any
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, nilIfEmpty(*v))
		}
	}
	add("manufacturer", e.Manufacturer)
	add("device_model", e.DeviceModel)
	add("document_type", e.DocumentType)
	add("keywords", e.Keywords)
	add("revision_number", e.RevisionNumber)
	add("revision_date", e.RevisionDate)
	add("status", e.Status)
	add("applicable_models", e.ApplicableModels)
	add("associated_test_equipment", e.AssociatedTestEquipment)

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET `+strings.Join(sets, ", ")+` WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("set fields: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set fields: %w", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}
