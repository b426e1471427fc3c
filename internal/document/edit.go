// edit.go implements explicit metadata edits. This is the only path that
// overwrites non-empty metadata; scan-time extraction only fills blanks.

package document

import (
	"context"

	"github.com/jpl-au/docdex/internal/store"
)

// SetFields applies a metadata edit to one or more documents. An empty
// value clears the column; a nil pointer leaves it untouched.
func (s *Service) SetFields(ctx context.Context, ids []int64, edits store.FieldEdits) (int64, error) {
	return s.store.SetFields(ctx, ids, edits)
}
