package search_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jpl-au/docdex/internal/search"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/jpl-au/docdex/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func index(t *testing.T, s *store.SQLiteStore, f store.Fields, text string) int64 {
	t.Helper()
	var pages []store.Page
	if text != "" {
		pages = []store.Page{{Number: 0, Text: text}}
	}
	id, _, err := s.IndexDocument(context.Background(), f, pages)
	require.NoError(t, err)
	return id
}

func TestSearch_EmptyQueryBrowses(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)

	index(t, s, store.Fields{Filepath: "/d/zeta.pdf", Filename: "zeta.pdf"}, "")
	index(t, s, store.Fields{Filepath: "/d/alpha.pdf", Filename: "alpha.pdf"}, "")

	for _, q := range []string{"", "   "} {
		res, err := e.Search(context.Background(), q)
		require.NoError(t, err)
		assert.True(t, res.Browse)
		require.Len(t, res.Hits, 2)
		assert.Equal(t, "alpha.pdf", res.Hits[0].Document.Filename)
		assert.Equal(t, "zeta.pdf", res.Hits[1].Document.Filename)
		assert.Nil(t, res.Hits[0].Snippet)
	}
}

func TestSearch_FullTextBeforeMetadataOnly(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)

	// A matches in content only; B matches in filename only.
	idA := index(t, s, store.Fields{Filepath: "/d/a.pdf", Filename: "a.pdf"},
		"step by step calibration procedure")
	idB := index(t, s, store.Fields{Filepath: "/d/calibration_log.pdf", Filename: "calibration_log.pdf"}, "")

	res, err := e.Search(context.Background(), "calibration")
	require.NoError(t, err)
	require.Len(t, res.Hits, 2)
	assert.False(t, res.Browse)
	assert.False(t, res.Degraded)

	// Full-text hit leads; metadata-only hit trails at the placeholder rank.
	assert.Equal(t, idA, res.Hits[0].Document.ID)
	assert.Equal(t, idB, res.Hits[1].Document.ID)
	assert.Less(t, res.Hits[0].Rank, res.Hits[1].Rank)
	assert.Equal(t, float64(9999), res.Hits[1].Rank)

	require.NotNil(t, res.Hits[0].Snippet)
	assert.Contains(t, res.Hits[0].Snippet.Text, "[calibration]")
	assert.Nil(t, res.Hits[1].Snippet)
}

func TestSearch_FullTextRankOverridesMetadataRank(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)

	// Matches both by filename and content: the real rank must win.
	id := index(t, s, store.Fields{Filepath: "/d/battery_guide.pdf", Filename: "battery_guide.pdf"},
		"battery replacement instructions")

	res, err := e.Search(context.Background(), "battery")
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, id, res.Hits[0].Document.ID)
	assert.Less(t, res.Hits[0].Rank, float64(9999))
	require.NotNil(t, res.Hits[0].Snippet)
}

func TestSearch_MetadataOnlyTiesSortByFilename(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)

	index(t, s, store.Fields{Filepath: "/d/pump_b.pdf", Filename: "pump_b.pdf"}, "")
	index(t, s, store.Fields{Filepath: "/d/pump_a.pdf", Filename: "pump_a.pdf"}, "")

	res, err := e.Search(context.Background(), "pump")
	require.NoError(t, err)
	require.Len(t, res.Hits, 2)
	assert.Equal(t, "pump_a.pdf", res.Hits[0].Document.Filename)
	assert.Equal(t, "pump_b.pdf", res.Hits[1].Document.Filename)
}

func TestSearch_MalformedQueryDegradesToMetadata(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)

	id := index(t, s, store.Fields{Filepath: `/d/"quoted".txt`, Filename: `"quoted".txt`},
		"some indexed text")

	// An unbalanced quote is invalid FTS5 syntax but a legitimate substring.
	res, err := e.Search(context.Background(), `"quoted`)
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, id, res.Hits[0].Document.ID)
	assert.Nil(t, res.Hits[0].Snippet)
}

// snippetlessStore fails the snippet query while leaving the ranked match
// intact, as an FTS5 auxiliary-function error can.
type snippetlessStore struct {
	search.Store
}

func (snippetlessStore) BestSnippets(context.Context, string) (map[int64]store.Snippet, error) {
	return nil, errors.New("snippet query failed")
}

func TestSearch_SnippetFailureKeepsFullTextRanks(t *testing.T) {
	s := setupStore(t)
	e := search.New(snippetlessStore{Store: s})

	id := index(t, s, store.Fields{Filepath: "/d/battery_guide.pdf", Filename: "battery_guide.pdf"},
		"battery replacement instructions")

	// Losing snippets costs the highlights only: the result is not degraded
	// and the full-text rank still beats the metadata placeholder.
	res, err := e.Search(context.Background(), "battery")
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, id, res.Hits[0].Document.ID)
	assert.Less(t, res.Hits[0].Rank, float64(9999))
	assert.Nil(t, res.Hits[0].Snippet)
}

func TestSearch_NoMatches(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)

	index(t, s, store.Fields{Filepath: "/d/a.pdf", Filename: "a.pdf"}, "unrelated")

	res, err := e.Search(context.Background(), "zzzznothing")
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
	assert.False(t, res.Degraded)
}

func TestSearch_Limit(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)
	e.Limit = 2

	index(t, s, store.Fields{Filepath: "/d/pump_a.pdf", Filename: "pump_a.pdf"}, "")
	index(t, s, store.Fields{Filepath: "/d/pump_b.pdf", Filename: "pump_b.pdf"}, "")
	index(t, s, store.Fields{Filepath: "/d/pump_c.pdf", Filename: "pump_c.pdf"}, "")

	res, err := e.Search(context.Background(), "pump")
	require.NoError(t, err)
	assert.Len(t, res.Hits, 2)

	res, err = e.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, res.Hits, 2)
}

func TestSearch_RunPostsTerminal(t *testing.T) {
	s := setupStore(t)
	e := search.New(s)

	index(t, s, store.Fields{Filepath: "/d/a.txt", Filename: "a.txt"}, "leak test notes")

	b := task.NewBridge()
	require.NoError(t, b.Start())
	e.Run(context.Background(), b, "leak")

	msgs := b.Poll()
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	require.Equal(t, task.Finished, last.Type)
	res := last.Payload.(*search.Results)
	require.Len(t, res.Hits, 1)
	assert.False(t, b.Active())
}
