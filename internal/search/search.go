// Package search implements ranked document search blending two signals:
// case-insensitive substring matches over filenames and curated metadata,
// and full-text relevance from the FTS5 index.
//
// Merge policy: metadata matches enter with a fixed placeholder rank that is
// worse than any real full-text rank; a full-text rank for the same document
// overwrites it. Results sort by rank ascending (lower is more relevant), so
// full-text hits lead and metadata-only hits trail in filename order.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jpl-au/docdex/internal/store"
	"github.com/jpl-au/docdex/internal/task"
	"golang.org/x/sync/errgroup"
)

// metadataRank is the placeholder rank for metadata-only matches. FTS5 ranks
// are small negative numbers, so this always sorts after every full-text hit.
const metadataRank = 9999

// DefaultLimit caps result counts when no limit is configured.
const DefaultLimit = 50

// Hit is one search result: the document, its merged rank, and the best
// matching snippet when the full-text index matched.
type Hit struct {
	Document store.DocJSON  `json:"document"`
	Rank     float64        `json:"rank"`
	Snippet  *store.Snippet `json:"snippet,omitempty"`
}

// Results is the outcome of one search, and the terminal payload of an
// asynchronous search run.
type Results struct {
	Query string `json:"query"`
	// Browse is set when the query was empty and the full collection was
	// listed instead of searched.
	Browse bool `json:"browse,omitempty"`
	// Degraded is set when the full-text index could not run the query
	// (typically malformed match syntax) and only metadata was searched.
	Degraded bool  `json:"degraded,omitempty"`
	Hits     []Hit `json:"hits"`
}

// Store is the slice of the document store a search needs.
type Store interface {
	SearchRanked(ctx context.Context, query string) ([]store.RankedMatch, error)
	BestSnippets(ctx context.Context, query string) (map[int64]store.Snippet, error)
	MetadataMatch(ctx context.Context, query string) ([]int64, error)
	ByIDs(ctx context.Context, ids []int64) ([]store.Document, error)
	List(ctx context.Context) ([]store.Document, error)
}

// Engine executes searches against a store.
type Engine struct {
	store Store

	// Limit caps the number of hits returned; 0 means DefaultLimit.
	Limit int
}

// New returns an Engine over the given store.
func New(s Store) *Engine {
	return &Engine{store: s}
}

// Search runs one query synchronously. An empty or blank query lists the
// whole collection in filename order.
func (e *Engine) Search(ctx context.Context, query string) (*Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return e.browse(ctx)
	}

	// The two full-text queries are independent of the metadata pass, so
	// all three run concurrently. Full-text failure is a degradation, not
	// an error: the query may simply be invalid FTS5 syntax.
	var (
		matches  []store.RankedMatch
		snippets map[int64]store.Snippet
		ftsErr   error
		snipErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matches, ftsErr = e.store.SearchRanked(gctx, query)
		return nil
	})
	g.Go(func() error {
		snippets, snipErr = e.store.BestSnippets(gctx, query)
		return nil
	})

	metaIDs, err := e.store.MetadataMatch(ctx, query)
	g.Wait()
	if err != nil {
		return nil, fmt.Errorf("metadata search: %w", err)
	}

	res := &Results{Query: query}
	ranks := make(map[int64]float64, len(metaIDs)+len(matches))
	for _, id := range metaIDs {
		ranks[id] = metadataRank
	}
	if ftsErr != nil {
		res.Degraded = true
		snippets = nil
	} else {
		for _, m := range matches {
			ranks[m.DocID] = m.Rank
		}
		// A snippet failure alone just costs the highlights; the full-text
		// ranks still stand.
		if snipErr != nil {
			snippets = nil
		}
	}

	if len(ranks) == 0 {
		return res, nil
	}

	ids := make([]int64, 0, len(ranks))
	for id := range ranks {
		ids = append(ids, id)
	}
	docs, err := e.store.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve search hits: %w", err)
	}

	res.Hits = make([]Hit, 0, len(docs))
	for _, d := range docs {
		h := Hit{Document: d.ToJSON(), Rank: ranks[d.ID]}
		if sn, ok := snippets[d.ID]; ok {
			s := sn
			h.Snippet = &s
		}
		res.Hits = append(res.Hits, h)
	}
	sort.Slice(res.Hits, func(i, j int) bool {
		if res.Hits[i].Rank != res.Hits[j].Rank {
			return res.Hits[i].Rank < res.Hits[j].Rank
		}
		return res.Hits[i].Document.Filename < res.Hits[j].Document.Filename
	})

	if limit := e.limit(); len(res.Hits) > limit {
		res.Hits = res.Hits[:limit]
	}
	return res, nil
}

// Run executes one search, reporting through the bridge. The bridge must
// already be started; Run always posts exactly one terminal message.
// Intended to be called in a goroutine.
func (e *Engine) Run(ctx context.Context, bridge *task.Bridge, query string) {
	if strings.TrimSpace(query) == "" {
		bridge.Status("Listing documents")
	} else {
		bridge.Status("Searching: " + query)
	}

	res, err := e.Search(ctx, query)
	if err != nil {
		bridge.Fail(err)
		return
	}
	if res.Degraded {
		bridge.Info("full-text query failed, metadata matches only")
	}
	bridge.Finish(res)
}

func (e *Engine) browse(ctx context.Context) (*Results, error) {
	docs, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	res := &Results{Browse: true, Hits: make([]Hit, 0, len(docs))}
	for _, d := range docs {
		res.Hits = append(res.Hits, Hit{Document: d.ToJSON()})
	}
	if limit := e.limit(); len(res.Hits) > limit {
		res.Hits = res.Hits[:limit]
	}
	return res, nil
}

func (e *Engine) limit() int {
	if e.Limit > 0 {
		return e.Limit
	}
	return DefaultLimit
}
