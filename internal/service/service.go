// Package service defines the shared interface for index operations.
// Commands and the MCP server depend on this interface rather than concrete
// implementations, enabling testing with mocks and future backend changes.
package service

import (
	"context"
	"database/sql"

	"github.com/jpl-au/docdex/internal/search"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/jpl-au/docdex/internal/task"
)

// Service defines all index operations.
//
// Commands should use document.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := document.New()
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	doc, err := svc.Document(ctx, 42)
type Service interface {
	// Close checkpoints the WAL and releases database resources.
	// Always defer this after New().
	Close() error

	// StartScan launches an incremental scan in the background. Returns
	// task.ErrActive if a scan is already running; at most one scan runs
	// at a time. Progress arrives via PollScan.
	StartScan(ctx context.Context) error

	// PollScan drains pending scan messages. The scan is over when a
	// message with Terminal() true arrives; its payload is a scan.Summary.
	PollScan() []task.Message

	// StartSearch launches a search in the background. Returns
	// task.ErrActive while a previous search is still unfinished.
	// Progress arrives via PollSearch; the terminal payload is a
	// *search.Results.
	StartSearch(ctx context.Context, query string) error

	// PollSearch drains pending search messages.
	PollSearch() []task.Message

	// Search runs a query synchronously. An empty query lists the whole
	// collection in filename order (browse mode).
	Search(ctx context.Context, query string) (*search.Results, error)

	// Document returns one document by id.
	// Returns store.ErrNotFound if it doesn't exist.
	Document(ctx context.Context, id int64) (*store.Document, error)

	// DocumentByPath returns one document by its filesystem path.
	DocumentByPath(ctx context.Context, path string) (*store.Document, error)

	// List returns all documents ordered by filename.
	List(ctx context.Context) ([]store.Document, error)

	// PageText returns the indexed text of one page of a document.
	// Returns store.ErrNotFound if that page has no indexed text.
	PageText(ctx context.Context, id int64, page int) (string, error)

	// SetFields applies an explicit metadata edit to one or more documents.
	// Unlike scan-time extraction, edits overwrite stored values; an empty
	// value clears the column. Returns the number of documents updated.
	SetFields(ctx context.Context, ids []int64, edits store.FieldEdits) (int64, error)

	// AddLink creates a directed link between two documents with an
	// optional description. Self-links are rejected; the ordered pair is
	// unique.
	AddLink(ctx context.Context, sourceID, targetID int64, description string) (int64, error)

	// RemoveLink deletes a link by id.
	RemoveLink(ctx context.Context, id int64) error

	// Links returns all links touching a document, in either direction.
	Links(ctx context.Context, docID int64) ([]store.Link, error)

	// LinkedDocuments returns the documents on the far side of every link
	// touching docID, ordered by filename.
	LinkedDocuments(ctx context.Context, docID int64) ([]store.Document, error)

	// AddNote attaches a note to a document, optionally anchored to a page.
	AddNote(ctx context.Context, docID int64, page *int, text string) (int64, error)

	// DeleteNote removes a note by id.
	DeleteNote(ctx context.Context, id int64) error

	// Notes returns a document's notes, newest first.
	Notes(ctx context.Context, docID int64) ([]store.Note, error)

	// AddFavorite creates a named bookmark on a document page.
	// Favorite names are unique across the index.
	AddFavorite(ctx context.Context, name string, docID int64, page int) (int64, error)

	// DeleteFavorite removes a favorite by id.
	DeleteFavorite(ctx context.Context, id int64) error

	// RenameFavorite changes a favorite's display name.
	RenameFavorite(ctx context.Context, id int64, newName string) error

	// Favorite retrieves a favorite by name.
	Favorite(ctx context.Context, name string) (*store.Favorite, error)

	// Favorites returns all favorites ordered by name.
	Favorites(ctx context.Context) ([]store.Favorite, error)

	// AddRoot registers a directory for scanning, with an optional default
	// manufacturer applied to new documents found under it.
	AddRoot(ctx context.Context, path, defaultManufacturer string) (int64, error)

	// RemoveRoot unregisters a scan root by path. Documents indexed under
	// it remain until a scan no longer finds their files.
	RemoveRoot(ctx context.Context, path string) error

	// Roots returns all scan roots ordered by path.
	Roots(ctx context.Context) ([]store.ScanRoot, error)

	// Stats returns aggregate index statistics for operational visibility.
	Stats(ctx context.Context) (store.Stats, error)

	// Optimize merges the full-text index's internal structures. Cheap
	// enough to run after every scan; also exposed as a command.
	Optimize(ctx context.Context) error

	// Compact reclaims free pages in the database file (VACUUM).
	Compact(ctx context.Context) error

	// Checkpoint flushes the WAL to the main database file, removing
	// the -wal and -shm files. Useful before backup or distribution.
	Checkpoint(ctx context.Context) error

	// DB returns the underlying SQLite connection for maintenance queries.
	// Do not close this connection directly; use Service.Close().
	DB() *sql.DB

	// DBPath returns the path to the database file.
	DBPath() string
}
