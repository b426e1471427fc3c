// tools_links.go implements MCP tools for document relationship management.
//
// Design: The link tool combines create and list operations based on
// parameters. This reduces the tool count for LLMs while maintaining full
// functionality through parameter combinations.

package mcp

import (
	"context"

	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// linkDocuments handles docdex_link tool calls.
func (h *handlers) linkDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	var err error
	from := getID(req, "from")
	to := getID(req, "to")
	description := getString(req, "description", "")
	list := getBool(req, "list", false)

	// List links and the documents on their far ends
	if list {
		if from <= 0 {
			return mcp.NewToolResultError("from is required for listing"), nil
		}

		l := log.Event("mcp:link", "list").Author("mcp").Doc(from)
		defer func() { l.Write(err) }()

		var links []store.Link
		links, err = h.svc.Links(ctx, from)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var linked []store.Document
		linked, err = h.svc.LinkedDocuments(ctx, from)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		l.Detail("count", len(links))

		docs := make([]store.DocJSON, len(linked))
		for i := range linked {
			docs[i] = linked[i].ToJSON()
		}
		return jsonResult(map[string]any{
			"links":     links,
			"documents": docs,
		})
	}

	// Create link
	if from <= 0 || to <= 0 {
		return mcp.NewToolResultError("from and to are required for creating links"), nil
	}

	l := log.Event("mcp:link", "link").Author("mcp").Doc(from).Detail("to", to)
	defer func() { l.Write(err) }()

	var id int64
	id, err = h.svc.AddLink(ctx, from, to, description)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Detail("id", id)

	return jsonResult(map[string]any{
		"id":          id,
		"from":        from,
		"to":          to,
		"description": description,
	})
}

// unlinkDocuments handles docdex_unlink tool calls.
func (h *handlers) unlinkDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	id := getID(req, "id")
	if id <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}

	err := h.svc.RemoveLink(ctx, id)

	log.Event("mcp:unlink", "unlink").Author("mcp").Detail("id", id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"id":      id,
		"removed": true,
	})
}
