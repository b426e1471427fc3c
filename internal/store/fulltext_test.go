package store_test

import (
	"context"
	"testing"

	"github.com/jpl-au/docdex/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFulltext_ReplaceEntries(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1),
		[]store.Page{{Number: 0, Text: "first page"}, {Number: 1, Text: "second page"}})
	require.NoError(t, err)

	n, err := s.PageCount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Replacement is total: old pages vanish, blank pages are skipped.
	err = s.ReplaceEntries(ctx, id, []store.Page{
		{Number: 0, Text: "rewritten page"},
		{Number: 1, Text: "   "},
		{Number: 2, Text: "third page"},
	})
	require.NoError(t, err)

	n, err = s.PageCount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	text, err := s.PageText(ctx, id, 0)
	require.NoError(t, err)
	assert.Equal(t, "rewritten page", text)

	_, err = s.PageText(ctx, id, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFulltext_SearchRanked(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	// Document A mentions the term repeatedly in a short page; document B
	// mentions it once in a long page. A should rank better (lower).
	idA, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1),
		page("calibration calibration calibration procedure"))
	require.NoError(t, err)
	idB, _, err := s.IndexDocument(ctx, fields("/docs/b.pdf", 1),
		page("this long page describes general maintenance and mentions calibration "+
			"once among many other unrelated words about routine servicing schedules"))
	require.NoError(t, err)
	_, _, err = s.IndexDocument(ctx, fields("/docs/c.pdf", 1), page("unrelated content"))
	require.NoError(t, err)

	matches, err := s.SearchRanked(ctx, "calibration")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, idA, matches[0].DocID)
	assert.Equal(t, idB, matches[1].DocID)
	assert.Less(t, matches[0].Rank, matches[1].Rank)
}

func TestFulltext_SearchRankedBestPagePerDoc(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	// One document with a weak match on page 0 and a strong match on page 3:
	// the document's rank must be its best page, reported once.
	id, _, err := s.IndexDocument(ctx, fields("/docs/multi.pdf", 1), []store.Page{
		{Number: 0, Text: "a brief mention of battery among much other prose about the device"},
		{Number: 3, Text: "battery battery battery replacement"},
	})
	require.NoError(t, err)

	matches, err := s.SearchRanked(ctx, "battery")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, id, matches[0].DocID)
}

func TestFulltext_SearchRankedSyntaxError(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), page("text"))
	require.NoError(t, err)

	// Unbalanced quote is an FTS5 syntax error, surfaced to the caller.
	_, err = s.SearchRanked(ctx, `"unterminated`)
	assert.Error(t, err)
}

func TestFulltext_BestSnippets(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	idA, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), []store.Page{
		{Number: 0, Text: "introduction with a passing note on leak testing somewhere in the overview text"},
		{Number: 5, Text: "leak testing leak testing procedure"},
	})
	require.NoError(t, err)
	idB, _, err := s.IndexDocument(ctx, fields("/docs/b.pdf", 1),
		page("general leak inspection guidance"))
	require.NoError(t, err)

	snippets, err := s.BestSnippets(ctx, "leak")
	require.NoError(t, err)
	require.Len(t, snippets, 2)

	// A's best page is 5; matched terms are bracket-marked.
	assert.Equal(t, 5, snippets[idA].Page)
	assert.Contains(t, snippets[idA].Text, "[leak]")
	assert.Equal(t, 0, snippets[idB].Page)
	assert.Contains(t, snippets[idB].Text, "[leak]")
}

func TestFulltext_StemmingMatchesWordForms(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1),
		page("calibrating the flow sensor"))
	require.NoError(t, err)

	// Porter stemming: "calibration" matches "calibrating".
	matches, err := s.SearchRanked(ctx, "calibration")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, id, matches[0].DocID)
}

func TestFulltext_OptimizeAndCompact(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, _, err := s.IndexDocument(ctx, fields("/docs/a.pdf", 1), page("some text"))
	require.NoError(t, err)

	require.NoError(t, s.Optimize(ctx))
	require.NoError(t, s.Compact(ctx))

	// Index still queryable afterwards.
	matches, err := s.SearchRanked(ctx, "text")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
