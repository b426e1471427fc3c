// notes.go implements per-document annotations.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpl-au/docdex/internal/validate"
)

// AddNote attaches a note to a document, optionally anchored to a page.
// Returns ErrNotFound if the document doesn't exist.
func (s *SQLiteStore) AddNote(ctx context.Context, docID int64, page *int, text string) (int64, error) {
	if err := validate.NoteText(text); err != nil {
		return 0, err
	}
	if page != nil {
		if err := validate.Page(*page); err != nil {
			return 0, err
		}
	}
	if _, err := s.Get(ctx, docID); err != nil {
		return 0, fmt.Errorf("note document %d: %w", docID, err)
	}

	var pageArg any
	if page != nil {
		pageArg = *page
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (doc_id, page_number, note_text, created_at)
		VALUES (?, ?, ?, ?)`,
		docID, pageArg, text, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("create note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create note: %w", err)
	}
	return id, nil
}

// DeleteNote removes a note by id. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Notes returns a document's notes, newest first.
func (s *SQLiteStore) Notes(ctx context.Context, docID int64) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, page_number, note_text, created_at FROM notes
		WHERE doc_id = ? ORDER BY created_at DESC, id DESC`, docID)
	if err != nil {
		return nil, fmt.Errorf("list notes for %d: %w", docID, err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var page sql.NullInt64
		if err := rows.Scan(&n.ID, &n.DocumentID, &page, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if page.Valid {
			p := int(page.Int64)
			n.PageNumber = &p
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
