// links.go implements cross-reference operations between documents.

package document

import (
	"context"

	"github.com/jpl-au/docdex/internal/store"
)

// AddLink creates a directed link between two documents.
func (s *Service) AddLink(ctx context.Context, sourceID, targetID int64, description string) (int64, error) {
	return s.store.AddLink(ctx, sourceID, targetID, description)
}

// RemoveLink deletes a link by id.
func (s *Service) RemoveLink(ctx context.Context, id int64) error {
	return s.store.RemoveLink(ctx, id)
}

// Links returns all links touching a document, in either direction.
func (s *Service) Links(ctx context.Context, docID int64) ([]store.Link, error) {
	return s.store.Links(ctx, docID)
}

// LinkedDocuments returns the documents linked to docID, ordered by filename.
func (s *Service) LinkedDocuments(ctx context.Context, docID int64) ([]store.Document, error) {
	return s.store.LinkedDocuments(ctx, docID)
}
