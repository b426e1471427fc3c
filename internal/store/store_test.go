package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/docdex/internal/store"
	"github.com/jpl-au/docdex/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "docdex-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

// fields returns scan Fields with test defaults.
func fields(path string, mtime int64) store.Fields {
	return store.Fields{
		Filepath:     path,
		Filename:     filepath.Base(path),
		LastModified: mtime,
	}
}

// page is a single-page helper for index calls.
func page(text string) []store.Page {
	return []store.Page{{Number: 0, Text: text}}
}

// --- Document CRUD Tests ---

func TestStore_IndexAndGet(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	f := fields("/docs/ventilator_manual.pdf", 1000)
	f.Manufacturer = "draeger"
	f.DocumentType = "manual"

	id, created, err := s.IndexDocument(ctx, f, page("ventilator service text"))
	require.NoError(t, err)
	assert.True(t, created)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ventilator_manual.pdf", doc.Filename)
	assert.Equal(t, "/docs/ventilator_manual.pdf", doc.Filepath)
	assert.Equal(t, "draeger", doc.Manufacturer)
	assert.Equal(t, "manual", doc.DocumentType)
	assert.Equal(t, int64(1000), doc.LastModified)
}

func TestStore_IndexIsIdempotent(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	f := fields("/docs/a.pdf", 1000)

	id1, created, err := s.IndexDocument(ctx, f, page("alpha"))
	require.NoError(t, err)
	assert.True(t, created)

	// Same path again: same id, not created, still one row and one entry.
	id2, created, err := s.IndexDocument(ctx, f, page("alpha"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id1, id2)

	docs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	n, err := s.PageCount(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_IndexPreservesCuratedMetadata(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	f := fields("/docs/b.pdf", 1000)
	f.Manufacturer = "siemens"
	id, _, err := s.IndexDocument(ctx, f, page("one"))
	require.NoError(t, err)

	// User curates a field the heuristics didn't set.
	status := "approved"
	_, err = s.SetFields(ctx, []int64{id}, store.FieldEdits{Status: &status})
	require.NoError(t, err)

	// Rescan with different heuristic values and a newer mtime.
	f2 := fields("/docs/b.pdf", 2000)
	f2.Manufacturer = "philips"
	f2.DeviceModel = "MX800"
	_, _, err = s.IndexDocument(ctx, f2, page("two"))
	require.NoError(t, err)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	// Stored manufacturer survives; empty model was filled; curated status
	// and the filesystem-owned mtime behave as specified.
	assert.Equal(t, "siemens", doc.Manufacturer)
	assert.Equal(t, "MX800", doc.DeviceModel)
	assert.Equal(t, "approved", doc.Status)
	assert.Equal(t, int64(2000), doc.LastModified)
}

func TestStore_GetByPath(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, _, err := s.IndexDocument(ctx, fields("/docs/c.txt", 1), page("c"))
	require.NoError(t, err)

	doc, err := s.GetByPath(ctx, "/docs/c.txt")
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)

	_, err = s.GetByPath(ctx, "/docs/missing.txt")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_NotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.Get(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.SetFields(ctx, []int64{999}, store.FieldEdits{Status: ptr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.RemoveLink(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteNote(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteFavorite(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Baseline(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	idA, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 100), page("a"))
	require.NoError(t, err)
	idB, _, err := s.IndexDocument(ctx, fields("/docs/b.pdf", 200), page("b"))
	require.NoError(t, err)

	baseline, err := s.Baseline(ctx)
	require.NoError(t, err)
	require.Len(t, baseline, 2)
	assert.Equal(t, store.BaselineEntry{ID: idA, LastModified: 100}, baseline["/docs/a.pdf"])
	assert.Equal(t, store.BaselineEntry{ID: idB, LastModified: 200}, baseline["/docs/b.pdf"])
}

func TestStore_DeleteCascades(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	idA, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), page("alpha text"))
	require.NoError(t, err)
	idB, _, err := s.IndexDocument(ctx, fields("/docs/b.pdf", 1), page("beta text"))
	require.NoError(t, err)

	_, err = s.AddLink(ctx, idA, idB, "related")
	require.NoError(t, err)
	_, err = s.AddNote(ctx, idA, nil, "check this")
	require.NoError(t, err)
	_, err = s.AddFavorite(ctx, "alpha page", idA, 0)
	require.NoError(t, err)

	removed, err := s.DeleteByIDs(ctx, []int64{idA})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// Everything attached to A is gone; B is untouched.
	links, err := s.Links(ctx, idB)
	require.NoError(t, err)
	assert.Empty(t, links)

	notes, err := s.Notes(ctx, idA)
	require.NoError(t, err)
	assert.Empty(t, notes)

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)

	n, err := s.PageCount(ctx, idA)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Get(ctx, idB)
	assert.NoError(t, err)
}

// Cascades must hold on every pooled connection, not just the one that
// happened to serve the session pragmas. Pinning one connection forces the
// delete onto a second one; the attached rows must still go with it.
func TestStore_DeleteCascadesOnSecondConnection(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), page("alpha text"))
	require.NoError(t, err)
	_, err = s.AddNote(ctx, id, nil, "check this")
	require.NoError(t, err)
	_, err = s.AddFavorite(ctx, "alpha page", id, 0)
	require.NoError(t, err)

	// Hold a connection out of the pool so the delete below cannot reuse it.
	conn, err := s.DB().Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()
	var fk int
	require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	require.Equal(t, 1, fk)

	removed, err := s.DeleteByIDs(ctx, []int64{id})
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	var n int
	require.NoError(t, conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE doc_id = ?`, id).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE doc_id = ?`, id).Scan(&n))
	assert.Zero(t, n)
}

func TestStore_MetadataMatch(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	f := fields("/docs/infusion_pump_sop.pdf", 1)
	f.Manufacturer = "medtronic"
	idA, _, err := s.IndexDocument(ctx, f, nil)
	require.NoError(t, err)
	_, _, err = s.IndexDocument(ctx, fields("/docs/other.pdf", 1), nil)
	require.NoError(t, err)

	// Case-insensitive substring over filename and metadata columns.
	ids, err := s.MetadataMatch(ctx, "INFUSION")
	require.NoError(t, err)
	assert.Equal(t, []int64{idA}, ids)

	ids, err = s.MetadataMatch(ctx, "medtronic")
	require.NoError(t, err)
	assert.Equal(t, []int64{idA}, ids)

	ids, err = s.MetadataMatch(ctx, "nosuchterm")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_SetFieldsClearsWithEmpty(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	f := fields("/docs/d.pdf", 1)
	f.Keywords = "pump, battery"
	id, _, err := s.IndexDocument(ctx, f, nil)
	require.NoError(t, err)

	// Explicit edit with an empty value clears the column.
	n, err := s.SetFields(ctx, []int64{id}, store.FieldEdits{Keywords: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, doc.Keywords)
}

// --- Link Tests ---

func TestStore_Links(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	idA, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), nil)
	require.NoError(t, err)
	idB, _, err := s.IndexDocument(ctx, fields("/docs/b.pdf", 1), nil)
	require.NoError(t, err)

	linkID, err := s.AddLink(ctx, idA, idB, "see annex")
	require.NoError(t, err)

	// Duplicate ordered pair rejected; reverse direction allowed.
	_, err = s.AddLink(ctx, idA, idB, "")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
	_, err = s.AddLink(ctx, idB, idA, "")
	require.NoError(t, err)

	// Self-link rejected.
	_, err = s.AddLink(ctx, idA, idA, "")
	assert.ErrorIs(t, err, validate.ErrSelfLink)

	// Missing endpoint rejected.
	_, err = s.AddLink(ctx, idA, 999, "")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Both directions visible from either side.
	links, err := s.Links(ctx, idA)
	require.NoError(t, err)
	assert.Len(t, links, 2)
	assert.Equal(t, "see annex", links[0].Description)

	linked, err := s.LinkedDocuments(ctx, idA)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, idB, linked[0].ID)

	require.NoError(t, s.RemoveLink(ctx, linkID))
	links, err = s.Links(ctx, idB)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

// --- Note Tests ---

func TestStore_Notes(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), nil)
	require.NoError(t, err)

	p := 4
	noteID, err := s.AddNote(ctx, id, &p, "calibration values on this page")
	require.NoError(t, err)
	_, err = s.AddNote(ctx, id, nil, "document-wide remark")
	require.NoError(t, err)

	// Blank text and negative page rejected.
	_, err = s.AddNote(ctx, id, nil, "   ")
	assert.ErrorIs(t, err, validate.ErrEmptyText)
	neg := -1
	_, err = s.AddNote(ctx, id, &neg, "x")
	assert.ErrorIs(t, err, validate.ErrInvalidPage)

	// Missing document rejected.
	_, err = s.AddNote(ctx, 999, nil, "x")
	assert.ErrorIs(t, err, store.ErrNotFound)

	notes, err := s.Notes(ctx, id)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// Newest first.
	assert.Equal(t, "document-wide remark", notes[0].Text)
	assert.Nil(t, notes[0].PageNumber)
	require.NotNil(t, notes[1].PageNumber)
	assert.Equal(t, 4, *notes[1].PageNumber)

	require.NoError(t, s.DeleteNote(ctx, noteID))
	notes, err = s.Notes(ctx, id)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

// --- Favorite Tests ---

func TestStore_Favorites(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), nil)
	require.NoError(t, err)

	favID, err := s.AddFavorite(ctx, "battery specs", id, 12)
	require.NoError(t, err)

	// Name is unique.
	_, err = s.AddFavorite(ctx, "battery specs", id, 3)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// Blank name rejected.
	_, err = s.AddFavorite(ctx, "  ", id, 0)
	assert.ErrorIs(t, err, validate.ErrEmptyName)

	f, err := s.Favorite(ctx, "battery specs")
	require.NoError(t, err)
	assert.Equal(t, id, f.DocumentID)
	assert.Equal(t, 12, f.PageNumber)

	require.NoError(t, s.RenameFavorite(ctx, favID, "battery table"))
	_, err = s.Favorite(ctx, "battery specs")
	assert.ErrorIs(t, err, store.ErrNotFound)
	f, err = s.Favorite(ctx, "battery table")
	require.NoError(t, err)
	assert.Equal(t, favID, f.ID)

	// Rename onto a taken name rejected.
	otherID, err := s.AddFavorite(ctx, "other", id, 0)
	require.NoError(t, err)
	err = s.RenameFavorite(ctx, otherID, "battery table")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "battery table", favs[0].Name)

	require.NoError(t, s.DeleteFavorite(ctx, favID))
	favs, err = s.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

// --- Scan Root Tests ---

func TestStore_Roots(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.AddRoot(ctx, "/srv/manuals", "draeger")
	require.NoError(t, err)
	_, err = s.AddRoot(ctx, "/srv/archive", "")
	require.NoError(t, err)

	// Duplicate path rejected; relative path rejected.
	_, err = s.AddRoot(ctx, "/srv/manuals", "")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
	_, err = s.AddRoot(ctx, "relative/path", "")
	assert.ErrorIs(t, err, validate.ErrInvalidRoot)

	roots, err := s.Roots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "/srv/archive", roots[0].Path)
	assert.Equal(t, "/srv/manuals", roots[1].Path)
	assert.Equal(t, "draeger", roots[1].DefaultManufacturer)

	require.NoError(t, s.RemoveRoot(ctx, "/srv/archive"))
	err = s.RemoveRoot(ctx, "/srv/archive")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- Stats Tests ---

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	idA, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 100),
		[]store.Page{{Number: 0, Text: "one"}, {Number: 1, Text: "two"}})
	require.NoError(t, err)
	idB, _, err := s.IndexDocument(ctx, fields("/docs/b.pdf", 300), page("three"))
	require.NoError(t, err)

	_, err = s.AddRoot(ctx, "/docs", "")
	require.NoError(t, err)
	_, err = s.AddLink(ctx, idA, idB, "")
	require.NoError(t, err)
	_, err = s.AddNote(ctx, idA, nil, "n")
	require.NoError(t, err)
	_, err = s.AddFavorite(ctx, "f", idB, 0)
	require.NoError(t, err)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Documents)
	assert.Equal(t, int64(3), st.Pages)
	assert.Equal(t, int64(1), st.ScanRoots)
	assert.Equal(t, int64(1), st.Links)
	assert.Equal(t, int64(1), st.Notes)
	assert.Equal(t, int64(1), st.Favorites)
	assert.Equal(t, int64(100), st.OldestDoc)
	assert.Equal(t, int64(300), st.NewestDoc)
}

func ptr(s string) *string { return &s }
