// tools_notes.go implements MCP tools for the user annotation layer: notes
// and named bookmarks. Both survive rescans; they disappear only when their
// document leaves the index.

package mcp

import (
	"context"

	"github.com/jpl-au/docdex/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// addNote handles docdex_note_add tool calls.
func (h *handlers) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	docID := getID(req, "id")
	if docID <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil //nolint:nilerr
	}

	var page *int
	if p := getInt(req, "page", -1); p >= 0 {
		page = &p
	}

	id, err := h.svc.AddNote(ctx, docID, page, text)

	log.Event("mcp:note", "note").Author("mcp").Doc(docID).Detail("id", id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"id":          id,
		"document_id": docID,
	})
}

// removeNote handles docdex_note_remove tool calls.
func (h *handlers) removeNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	id := getID(req, "id")
	if id <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}

	err := h.svc.DeleteNote(ctx, id)

	log.Event("mcp:note", "unnote").Author("mcp").Detail("id", id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"id":      id,
		"removed": true,
	})
}

// listNotes handles docdex_notes tool calls.
func (h *handlers) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	docID := getID(req, "id")
	if docID <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}

	notes, err := h.svc.Notes(ctx, docID)

	log.Event("mcp:note", "list").Author("mcp").Doc(docID).Detail("count", len(notes)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(notes)
}

// addFavorite handles docdex_fav_add tool calls.
func (h *handlers) addFavorite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	docID := getID(req, "id")
	if docID <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}
	page := getInt(req, "page", 0)

	id, err := h.svc.AddFavorite(ctx, name, docID, page)

	log.Event("mcp:fav", "favorite").Author("mcp").Doc(docID).Detail("name", name).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"id":   id,
		"name": name,
	})
}

// listFavorites handles docdex_favorites tool calls.
func (h *handlers) listFavorites(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	var err error
	name := getString(req, "name", "")

	if name != "" {
		var fav any
		fav, err = h.svc.Favorite(ctx, name)
		log.Event("mcp:fav", "read").Author("mcp").Detail("name", name).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(fav)
	}

	favs, err := h.svc.Favorites(ctx)

	log.Event("mcp:fav", "list").Author("mcp").Detail("count", len(favs)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(favs)
}
