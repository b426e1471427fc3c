package document_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/docdex/internal/document"
	"github.com/jpl-au/docdex/internal/repo"
	"github.com/jpl-au/docdex/internal/scan"
	"github.com/jpl-au/docdex/internal/search"
	"github.com/jpl-au/docdex/internal/service"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/jpl-au/docdex/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time check that the concrete service satisfies the interface.
var _ service.Service = (*document.Service)(nil)

func setupService(t *testing.T) *document.Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, repo.Init(false, dir))

	svc, err := document.Open(filepath.Join(dir, repo.Dir, repo.DBFile))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

// drain polls until a terminal message arrives or the deadline passes.
func drain(t *testing.T, poll func() []task.Message) task.Message {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		for _, m := range poll() {
			if m.Terminal() {
				return m
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no terminal message before deadline")
	return task.Message{}
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))
}

func TestService_ScanLifecycle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	docs := t.TempDir()
	writeDoc(t, docs, "vent.txt", "ventilator leak test procedure")
	writeDoc(t, docs, "pump.txt", "infusion pump battery check")

	_, err := svc.AddRoot(ctx, docs, "")
	require.NoError(t, err)

	require.NoError(t, svc.StartScan(ctx))
	terminal := drain(t, svc.PollScan)
	require.Equal(t, task.Finished, terminal.Type)

	sum := terminal.Payload.(scan.Summary)
	assert.Equal(t, 2, sum.Added)
	assert.Zero(t, sum.Errors)

	// Bridge released: a new scan can start, and it touches nothing.
	require.NoError(t, svc.StartScan(ctx))
	terminal = drain(t, svc.PollScan)
	sum = terminal.Payload.(scan.Summary)
	assert.Zero(t, sum.Added)
	assert.Zero(t, sum.Updated)
}

func TestService_SearchAsync(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	docs := t.TempDir()
	writeDoc(t, docs, "vent.txt", "ventilator leak test procedure")
	_, err := svc.AddRoot(ctx, docs, "")
	require.NoError(t, err)
	require.NoError(t, svc.StartScan(ctx))
	drain(t, svc.PollScan)

	require.NoError(t, svc.StartSearch(ctx, "leak"))
	terminal := drain(t, svc.PollSearch)
	require.Equal(t, task.Finished, terminal.Type)

	res := terminal.Payload.(*search.Results)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "vent.txt", res.Hits[0].Document.Filename)
	require.NotNil(t, res.Hits[0].Snippet)
}

func TestService_AnnotationsRoundTrip(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	docs := t.TempDir()
	writeDoc(t, docs, "a.txt", "alpha")
	writeDoc(t, docs, "b.txt", "beta")
	_, err := svc.AddRoot(ctx, docs, "")
	require.NoError(t, err)
	require.NoError(t, svc.StartScan(ctx))
	drain(t, svc.PollScan)

	a, err := svc.DocumentByPath(ctx, filepath.Join(docs, "a.txt"))
	require.NoError(t, err)
	b, err := svc.DocumentByPath(ctx, filepath.Join(docs, "b.txt"))
	require.NoError(t, err)

	_, err = svc.AddLink(ctx, a.ID, b.ID, "companion")
	require.NoError(t, err)
	linked, err := svc.LinkedDocuments(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, b.ID, linked[0].ID)

	_, err = svc.AddNote(ctx, a.ID, nil, "check voltage table")
	require.NoError(t, err)
	notes, err := svc.Notes(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	_, err = svc.AddFavorite(ctx, "voltage table", a.ID, 0)
	require.NoError(t, err)
	fav, err := svc.Favorite(ctx, "voltage table")
	require.NoError(t, err)
	assert.Equal(t, a.ID, fav.DocumentID)
}

func TestService_SetFields(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	docs := t.TempDir()
	writeDoc(t, docs, "a.txt", "alpha")
	_, err := svc.AddRoot(ctx, docs, "")
	require.NoError(t, err)
	require.NoError(t, svc.StartScan(ctx))
	drain(t, svc.PollScan)

	doc, err := svc.DocumentByPath(ctx, filepath.Join(docs, "a.txt"))
	require.NoError(t, err)

	status := "Active"
	n, err := svc.SetFields(ctx, []int64{doc.ID}, store.FieldEdits{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	doc, err = svc.Document(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Active", doc.Status)
}

func TestService_StatsAndMaintenance(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	docs := t.TempDir()
	writeDoc(t, docs, "a.txt", "alpha content")
	_, err := svc.AddRoot(ctx, docs, "")
	require.NoError(t, err)
	require.NoError(t, svc.StartScan(ctx))
	drain(t, svc.PollScan)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Documents)
	assert.Equal(t, int64(1), st.ScanRoots)

	require.NoError(t, svc.Optimize(ctx))
	require.NoError(t, svc.Compact(ctx))
	require.NoError(t, svc.Checkpoint(ctx))
}
