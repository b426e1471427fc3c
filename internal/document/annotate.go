// annotate.go implements the user annotation operations: notes and
// favorites. Both are curated data that survives rescans; they disappear
// only when their document is removed from the index.

package document

import (
	"context"

	"github.com/jpl-au/docdex/internal/store"
)

// AddNote attaches a note to a document, optionally anchored to a page.
func (s *Service) AddNote(ctx context.Context, docID int64, page *int, text string) (int64, error) {
	return s.store.AddNote(ctx, docID, page, text)
}

// DeleteNote removes a note by id.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	return s.store.DeleteNote(ctx, id)
}

// Notes returns a document's notes, newest first.
func (s *Service) Notes(ctx context.Context, docID int64) ([]store.Note, error) {
	return s.store.Notes(ctx, docID)
}

// AddFavorite creates a named bookmark on a document page.
func (s *Service) AddFavorite(ctx context.Context, name string, docID int64, page int) (int64, error) {
	return s.store.AddFavorite(ctx, name, docID, page)
}

// DeleteFavorite removes a favorite by id.
func (s *Service) DeleteFavorite(ctx context.Context, id int64) error {
	return s.store.DeleteFavorite(ctx, id)
}

// RenameFavorite changes a favorite's display name.
func (s *Service) RenameFavorite(ctx context.Context, id int64, newName string) error {
	return s.store.RenameFavorite(ctx, id, newName)
}

// Favorite retrieves a favorite by name.
func (s *Service) Favorite(ctx context.Context, name string) (*store.Favorite, error) {
	return s.store.Favorite(ctx, name)
}

// Favorites returns all favorites ordered by name.
func (s *Service) Favorites(ctx context.Context) ([]store.Favorite, error) {
	return s.store.Favorites(ctx)
}
