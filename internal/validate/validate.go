// Package validate provides input validation for the store layer.
//
// Design Decision: Validation happens at the store layer (not just the
// service layer) because the store is the persistence boundary. Anyone with
// direct store access (tests, future code paths) must have their inputs
// validated before they can corrupt state.
package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Link validates a link's endpoints. Self-referential links are rejected
// because they create meaningless cycles and complicate graph traversal.
func Link(source, target int64) error {
	if source == target {
		return fmt.Errorf("%w: document %d", ErrSelfLink, source)
	}
	return nil
}

// FavoriteName validates a favorite's display name.
func FavoriteName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: favorite name", ErrEmptyName)
	}
	return nil
}

// NoteText validates a note body.
func NoteText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: note body", ErrEmptyText)
	}
	return nil
}

// Page validates a page number. Pages are 0-indexed; negative numbers can
// only come from caller bugs.
func Page(page int) error {
	if page < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	return nil
}

// Root validates a scan root path: non-empty and absolute. Relative roots
// would silently change meaning with the working directory between runs.
func Root(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %s is not absolute", ErrInvalidRoot, path)
	}
	return nil
}
