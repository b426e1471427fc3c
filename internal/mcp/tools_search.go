// tools_search.go implements MCP tools for querying the index.
//
// Design: Search runs synchronously here. The CLI polls the background
// search bridge so it can animate a spinner; an MCP client gets nothing
// from intermediate progress, so the handler calls the engine directly
// and returns the finished result set in one response.

package mcp

import (
	"context"

	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// searchDocuments handles docdex_search tool calls.
func (h *handlers) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	res, err := h.svc.Search(ctx, query)

	l := log.Event("mcp:search", "search").Author("mcp").Detail("query", query)
	if res != nil {
		l.Detail("hits", len(res.Hits)).Detail("degraded", res.Degraded)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(res)
}

// listDocuments handles docdex_list tool calls.
func (h *handlers) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // req carries no parameters
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	docs, err := h.svc.List(ctx)

	log.Event("mcp:list", "list").Author("mcp").Detail("count", len(docs)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := make([]store.DocJSON, len(docs))
	for i := range docs {
		result[i] = docs[i].ToJSON()
	}

	return jsonResult(result)
}
