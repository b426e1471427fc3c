// read.go implements the read-side operations: document lookup, listing and
// indexed page text. All are thin passthroughs; the store owns the queries.

package document

import (
	"context"

	"github.com/jpl-au/docdex/internal/store"
)

// Document returns one document by id.
func (s *Service) Document(ctx context.Context, id int64) (*store.Document, error) {
	return s.store.Get(ctx, id)
}

// DocumentByPath returns one document by its filesystem path.
func (s *Service) DocumentByPath(ctx context.Context, path string) (*store.Document, error) {
	return s.store.GetByPath(ctx, path)
}

// List returns all documents ordered by filename.
func (s *Service) List(ctx context.Context) ([]store.Document, error) {
	return s.store.List(ctx)
}

// PageText returns the indexed text of one page of a document.
func (s *Service) PageText(ctx context.Context, id int64, page int) (string, error) {
	return s.store.PageText(ctx, id, page)
}
