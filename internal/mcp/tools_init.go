// tools_init.go implements the MCP tools that create and populate an index.
//
// docdex_init works without an existing index, allowing LLMs to bootstrap
// a new repository. docdex_scan runs the incremental scan to completion and
// returns the summary, so the LLM sees one request/response rather than the
// polled progress stream the CLI consumes.

package mcp

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jpl-au/docdex/internal/document"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/repo"
	"github.com/jpl-au/docdex/internal/scan"
	"github.com/jpl-au/docdex/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// initIndex handles docdex_init tool calls.
func (h *handlers) initIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx unused, init is filesystem-only
	if h.svc != nil {
		return mcp.NewToolResultError("index already initialised"), nil
	}

	dir := getString(req, "dir", "")

	err := document.Init(false, dir)

	log.Event("mcp:init", "init").Author("mcp").Path(dir).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Open the newly created index
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	svc, err := document.Open(filepath.Join(abs, repo.Dir, repo.DBFile))
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open index: " + err.Error()), nil
	}
	h.svc = svc

	slog.Info("index initialised", "dir", abs)

	return mcp.NewToolResultText("index initialised - add directories with docdex_root_add, then run docdex_scan"), nil
}

// scanIndex handles docdex_scan tool calls. The scan runs on its background
// bridge as usual, but the handler polls it to completion before answering.
func (h *handlers) scanIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // req carries no parameters
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	var err error
	l := log.Event("mcp:scan", "scan").Author("mcp")
	defer func() { l.Write(err) }()

	if err = h.svc.StartScan(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return mcp.NewToolResultError(err.Error()), nil
		case <-ticker.C:
		}
		for _, m := range h.svc.PollScan() {
			switch m.Type {
			case task.Finished:
				if sum, ok := m.Payload.(scan.Summary); ok {
					l.Detail("added", sum.Added).
						Detail("updated", sum.Updated).
						Detail("removed", sum.Removed).
						Detail("errors", sum.Errors)
					return jsonResult(sum)
				}
				return mcp.NewToolResultText(m.Text), nil
			case task.Error:
				err = errors.New(m.Text)
				return mcp.NewToolResultError(m.Text), nil
			}
		}
	}
}
