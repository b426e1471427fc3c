// favorites.go implements named page bookmarks.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/docdex/internal/validate"
)

// AddFavorite creates a named bookmark on a document page. Returns
// ErrAlreadyExists for a duplicate name and ErrNotFound if the document
// doesn't exist.
func (s *SQLiteStore) AddFavorite(ctx context.Context, name string, docID int64, page int) (int64, error) {
	if err := validate.FavoriteName(name); err != nil {
		return 0, err
	}
	if err := validate.Page(page); err != nil {
		return 0, err
	}
	if _, err := s.Get(ctx, docID); err != nil {
		return 0, fmt.Errorf("favorite document %d: %w", docID, err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (name, doc_id, page_number) VALUES (?, ?, ?)`,
		name, docID, page)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("favorite %q: %w", name, ErrAlreadyExists)
	}
	if err != nil {
		return 0, fmt.Errorf("create favorite: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create favorite: %w", err)
	}
	return id, nil
}

// DeleteFavorite removes a favorite by id. Returns ErrNotFound if it doesn't
// exist.
func (s *SQLiteStore) DeleteFavorite(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete favorite %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RenameFavorite changes a favorite's display name. Returns
// ErrAlreadyExists when the new name is taken and ErrNotFound when the
// favorite doesn't exist.
func (s *SQLiteStore) RenameFavorite(ctx context.Context, id int64, newName string) error {
	if err := validate.FavoriteName(newName); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE favorites SET name = ? WHERE id = ?`, newName, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("favorite %q: %w", newName, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("rename favorite %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename favorite %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Favorite retrieves a favorite by name.
func (s *SQLiteStore) Favorite(ctx context.Context, name string) (*Favorite, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, doc_id, page_number FROM favorites WHERE name = ?`, name)
	var f Favorite
	err := row.Scan(&f.ID, &f.Name, &f.DocumentID, &f.PageNumber)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch favorite %q: %w", name, err)
	}
	return &f, nil
}

// Favorites returns all favorites ordered by name.
func (s *SQLiteStore) Favorites(ctx context.Context) ([]Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, doc_id, page_number FROM favorites ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.Name, &f.DocumentID, &f.PageNumber); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
