// links.go implements cross-references between documents.
//
// Design: links are directed edges with an optional description ("see
// calibration annex", "supersedes"). Uniqueness on the ordered pair and the
// no-self-link rule are enforced here, not by callers; deletion of either
// endpoint cascades via the schema's foreign keys.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/docdex/internal/validate"
)

// AddLink creates a directed link between two documents. Returns
// ErrAlreadyExists for a duplicate ordered pair, ErrNotFound if either
// endpoint doesn't exist, and validate.ErrSelfLink for source == target.
func (s *SQLiteStore) AddLink(ctx context.Context, sourceID, targetID int64, description string) (int64, error) {
	if err := validate.Link(sourceID, targetID); err != nil {
		return 0, err
	}
	for _, id := range []int64{sourceID, targetID} {
		if _, err := s.Get(ctx, id); err != nil {
			return 0, fmt.Errorf("link endpoint %d: %w", id, err)
		}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO links (source_doc_id, target_doc_id, description)
		VALUES (?, ?, ?)`,
		sourceID, targetID, nilIfEmpty(description))
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("link %d -> %d: %w", sourceID, targetID, ErrAlreadyExists)
	}
	if err != nil {
		return 0, fmt.Errorf("create link: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create link: %w", err)
	}
	return id, nil
}

// RemoveLink deletes a link by id. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) RemoveLink(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove link %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove link %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Links returns all links touching a document, in either direction.
func (s *SQLiteStore) Links(ctx context.Context, docID int64) ([]Link, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_doc_id, target_doc_id, description FROM links
		WHERE source_doc_id = ? OR target_doc_id = ?
		ORDER BY id`, docID, docID)
	if err != nil {
		return nil, fmt.Errorf("list links for %d: %w", docID, err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var l Link
		var desc sql.NullString
		if err := rows.Scan(&l.ID, &l.SourceID, &l.TargetID, &desc); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		l.Description = desc.String
		links = append(links, l)
	}
	return links, rows.Err()
}

// LinkedDocuments returns the documents on the far side of every link
// touching docID, ordered by filename. This powers the "related documents"
// pane and the MCP linked-documents tool.
func (s *SQLiteStore) LinkedDocuments(ctx context.Context, docID int64) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+docColumns+` FROM documents WHERE id IN (
			SELECT target_doc_id FROM links WHERE source_doc_id = ?
			UNION
			SELECT source_doc_id FROM links WHERE target_doc_id = ?
		)
		ORDER BY filename`, docID, docID)
	if err != nil {
		return nil, fmt.Errorf("linked documents for %d: %w", docID, err)
	}
	defer rows.Close()
	return s.scanDocuments(rows)
}
