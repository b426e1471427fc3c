// fulltext.go implements the FTS5-backed full-text index: entry replacement,
// ranked matching and snippet extraction.
//
// Separated from documents.go because FTS5 has fundamentally different query
// semantics. Document reads use exact id/path matching; FTS5 uses tokenised
// search with its own query grammar (implicit AND of terms, OR, prefix*,
// "phrase" matching) inherited from SQLite - documented here, not
// re-specified.
//
// Design: rank is FTS5's relative ordering scalar; lower is more relevant.
// A malformed user query surfaces as an SQLite error at MATCH time, so every
// query method here has a documented degradation path instead of failing the
// whole search.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ReplaceEntries deletes all full-text entries for a document and inserts
// the new set as one atomic unit. Pages with no non-whitespace text are
// omitted rather than stored empty.
func (s *SQLiteStore) ReplaceEntries(ctx context.Context, docID int64, pages []Page) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		return replaceEntries(ctx, tx, docID, pages)
	})
}

// replaceEntries is the transactional core shared with IndexDocument.
func replaceEntries(ctx context.Context, tx *sql.Tx, docID int64, pages []Page) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents_fts WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("clear full-text entries: %w", err)
	}
	for _, p := range pages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents_fts (doc_id, page_number, content) VALUES (?, ?, ?)`,
			docID, p.Number, p.Text)
		if err != nil {
			return fmt.Errorf("insert full-text entry page %d: %w", p.Number, err)
		}
	}
	return nil
}

// PageCount returns the number of full-text entries stored for a document.
func (s *SQLiteStore) PageCount(ctx context.Context, docID int64) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents_fts WHERE doc_id = ?`, docID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count full-text entries: %w", err)
	}
	return n, nil
}

// PageText returns the stored extracted text of one page.
func (s *SQLiteStore) PageText(ctx context.Context, docID int64, page int) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM documents_fts WHERE doc_id = ? AND page_number = ?`,
		docID, page).Scan(&text)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("fetch page text: %w", err)
	}
	return text, nil
}

// SearchRanked runs a full-text query and returns each matching document's
// best (lowest) page rank, ascending. A syntax error in the query is
// returned to the caller, which degrades to metadata-only ranking.
func (s *SQLiteStore) SearchRanked(ctx context.Context, query string) ([]RankedMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, MIN(rank) AS best
		FROM (SELECT doc_id, rank FROM documents_fts WHERE documents_fts MATCH ?)
		GROUP BY doc_id
		ORDER BY best`, query)
	if err != nil {
		return nil, fmt.Errorf("full-text search %q: %w", query, err)
	}
	defer rows.Close()

	var matches []RankedMatch
	for rows.Next() {
		var m RankedMatch
		if err := rows.Scan(&m.DocID, &m.Rank); err != nil {
			return nil, fmt.Errorf("scan ranked match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// snippetWindow is the token budget around a match passed to FTS5's
// snippet() function; matched terms are wrapped in bracket markers.
const snippetWindow = 15

// BestSnippets returns, per matching document, the snippet and page of its
// single highest-ranked matching page. The primary query uses a window
// function to pick one row per document; if it fails (older SQLite builds,
// query quirks) a flat fallback query is tried and the first row per
// document wins since results arrive rank-ordered.
func (s *SQLiteStore) BestSnippets(ctx context.Context, query string) (map[int64]Snippet, error) {
	rows, err := s.db.QueryContext(ctx, `
		WITH ranked_matches AS (
			SELECT doc_id, page_number,
			       snippet(documents_fts, 2, '[', ']', '...', ?) AS snippet_text,
			       rank,
			       ROW_NUMBER() OVER (PARTITION BY doc_id ORDER BY rank) AS rn
			FROM documents_fts WHERE documents_fts MATCH ?
		)
		SELECT doc_id, snippet_text, page_number FROM ranked_matches WHERE rn = 1`,
		snippetWindow, query)
	if err != nil {
		return s.bestSnippetsFallback(ctx, query)
	}
	defer rows.Close()

	return scanSnippets(rows, false)
}

// bestSnippetsFallback is the reduced snippet query used when the window
// query fails: plain rank-ordered rows, first per document kept.
func (s *SQLiteStore) bestSnippetsFallback(ctx context.Context, query string) (map[int64]Snippet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, snippet(documents_fts, 2, '[', ']', '...', ?), page_number
		FROM documents_fts WHERE documents_fts MATCH ?
		ORDER BY rank, doc_id, page_number`,
		snippetWindow, query)
	if err != nil {
		return nil, fmt.Errorf("snippet query %q: %w", query, err)
	}
	defer rows.Close()

	return scanSnippets(rows, true)
}

// scanSnippets collects snippet rows into a per-document map. When
// firstWins is set, later rows for an already-seen document are ignored.
func scanSnippets(rows *sql.Rows, firstWins bool) (map[int64]Snippet, error) {
	snippets := make(map[int64]Snippet)
	for rows.Next() {
		var docID int64
		var sn Snippet
		if err := rows.Scan(&docID, &sn.Text, &sn.Page); err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		if firstWins {
			if _, seen := snippets[docID]; seen {
				continue
			}
		}
		snippets[docID] = sn
	}
	return snippets, rows.Err()
}

// Optimize merges the FTS5 index's internal b-trees. Run after a scan so
// accumulated incremental writes don't degrade query performance.
func (s *SQLiteStore) Optimize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents_fts(documents_fts) VALUES('optimize')`); err != nil {
		return fmt.Errorf("optimize full-text index: %w", err)
	}
	return nil
}

// Compact reclaims free pages in the database file. Separate from Optimize
// because VACUUM rewrites the whole file and cannot run inside a transaction.
func (s *SQLiteStore) Compact(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("compact database: %w", err)
	}
	return nil
}
