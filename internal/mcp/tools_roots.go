// tools_roots.go implements MCP tools for scan root management and index
// statistics.

package mcp

import (
	"context"

	"github.com/jpl-au/docdex/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// addRoot handles docdex_root_add tool calls.
func (h *handlers) addRoot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	manufacturer := getString(req, "manufacturer", "")

	id, err := h.svc.AddRoot(ctx, path, manufacturer)

	log.Event("mcp:root", "root").Author("mcp").Path(path).Detail("manufacturer", manufacturer).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"id":   id,
		"path": path,
	})
}

// removeRoot handles docdex_root_remove tool calls.
func (h *handlers) removeRoot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	err = h.svc.RemoveRoot(ctx, path)

	log.Event("mcp:root", "unroot").Author("mcp").Path(path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"path":    path,
		"removed": true,
	})
}

// listRoots handles docdex_roots tool calls.
func (h *handlers) listRoots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // req carries no parameters
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	roots, err := h.svc.Roots(ctx)

	log.Event("mcp:root", "list").Author("mcp").Detail("count", len(roots)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(roots)
}

// getStats handles docdex_stats tool calls.
func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // req carries no parameters
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	stats, err := h.svc.Stats(ctx)

	log.Event("mcp:stats", "read").Author("mcp").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(stats)
}
