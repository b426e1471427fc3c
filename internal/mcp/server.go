// Package mcp implements the Model Context Protocol server, exposing the
// docdex index to LLMs. This enables AI assistants to search, read and
// annotate indexed documents through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/docdex/internal/document"
	"github.com/jpl-au/docdex/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no index has been initialised.
// The LLM should call docdex_init to create an index before using other tools.
const ErrNotInitialised = "index not initialised - call docdex_init first"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Design: The server starts successfully even if no index exists. This allows
// LLMs to call docdex_init to create one, rather than failing with an opaque
// error. Tools that require an index return ErrNotInitialised with clear guidance.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{}

	// Try to open an existing index; nil service is OK (uninitialised mode)
	svc, err := document.New()
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		// Real error (not just uninitialised)
		slog.Error("failed to open index", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
		defer svc.Close()
	} else {
		slog.Info("docdex not initialised, starting in uninitialised mode - call docdex_init to create an index")
	}

	s := server.NewMCPServer(
		"docdex",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("docdex MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the index service.
// The svc field may be nil if no index has been initialised.
type handlers struct {
	svc *document.Service // nil if not initialised
}

// requireInit returns an error result if no index is open.
// Tools that require an index should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based resource access for direct document reading.
func registerResources(s *server.MCPServer, h *handlers) {
	// Document record by id
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"docdex://documents/{id}",
			"Document",
			mcp.WithTemplateDescription("Read an indexed document's metadata by id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readDocument,
	)

	// Extracted page text by id and page number
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"docdex://documents/{id}/pages/{page}",
			"Document Page",
			mcp.WithTemplateDescription("Read the extracted text of one page of an indexed document"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readDocumentPage,
	)
}

// registerTools exposes docdex operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without existing index
	s.AddTool(
		mcp.NewTool("docdex_init",
			mcp.WithDescription("Initialise a new docdex index. Call this first if other tools return 'index not initialised'."),
			mcp.WithString("dir", mcp.Description("Directory to create the index in (default: current directory)")),
		),
		h.initIndex,
	)

	// Scan
	s.AddTool(
		mcp.NewTool("docdex_scan",
			mcp.WithDescription("Scan the configured root directories and update the index. Runs incrementally: only new and modified files are re-read. Returns a summary of added/updated/removed documents."),
		),
		h.scanIndex,
	)

	// Search
	s.AddTool(
		mcp.NewTool("docdex_search",
			mcp.WithDescription("Search indexed documents. Blends full-text relevance with filename/metadata substring matches; an empty query lists the whole collection."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query (FTS5 syntax; plain words work)")),
		),
		h.searchDocuments,
	)

	// List
	s.AddTool(
		mcp.NewTool("docdex_list",
			mcp.WithDescription("List all indexed documents ordered by filename"),
		),
		h.listDocuments,
	)

	// Read document
	s.AddTool(
		mcp.NewTool("docdex_read",
			mcp.WithDescription("Read an indexed document's metadata, optionally with the extracted text of one page"),
			mcp.WithNumber("id", mcp.Description("Document id (preferred)")),
			mcp.WithString("path", mcp.Description("Document filesystem path (alternative to id)")),
			mcp.WithNumber("page", mcp.Description("Page number to include extracted text for (0-based)")),
		),
		h.readDocumentTool,
	)

	// Set metadata fields
	s.AddTool(
		mcp.NewTool("docdex_set",
			mcp.WithDescription("Set curated metadata fields on a document. Empty string clears a field; omitted fields are untouched."),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("manufacturer", mcp.Description("Manufacturer name")),
			mcp.WithString("device_model", mcp.Description("Device model")),
			mcp.WithString("document_type", mcp.Description("Document type (e.g. Service Manual, Datasheet)")),
			mcp.WithString("keywords", mcp.Description("Comma-separated keywords")),
			mcp.WithString("revision_number", mcp.Description("Document revision number")),
			mcp.WithString("revision_date", mcp.Description("Document revision date")),
			mcp.WithString("status", mcp.Description("Lifecycle status (e.g. Current, Superseded)")),
			mcp.WithString("applicable_models", mcp.Description("Other device models the document applies to")),
			mcp.WithString("associated_test_equipment", mcp.Description("Test equipment referenced by the document")),
		),
		h.setFields,
	)

	// Link
	s.AddTool(
		mcp.NewTool("docdex_link",
			mcp.WithDescription("Create a link between two documents, or list a document's links"),
			mcp.WithNumber("from", mcp.Description("Source document id (required for creating)")),
			mcp.WithNumber("to", mcp.Description("Target document id (required for creating)")),
			mcp.WithString("description", mcp.Description("Why the documents are related")),
			mcp.WithBoolean("list", mcp.Description("List links touching the 'from' document instead of creating")),
		),
		h.linkDocuments,
	)

	// Unlink
	s.AddTool(
		mcp.NewTool("docdex_unlink",
			mcp.WithDescription("Remove a link by id"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Link id to remove")),
		),
		h.unlinkDocuments,
	)

	// Note add
	s.AddTool(
		mcp.NewTool("docdex_note_add",
			mcp.WithDescription("Attach a note to a document, optionally anchored to a page"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Note text")),
			mcp.WithNumber("page", mcp.Description("Page number to anchor the note to (0-based)")),
		),
		h.addNote,
	)

	// Note remove
	s.AddTool(
		mcp.NewTool("docdex_note_remove",
			mcp.WithDescription("Delete a note by id"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id to delete")),
		),
		h.removeNote,
	)

	// Notes
	s.AddTool(
		mcp.NewTool("docdex_notes",
			mcp.WithDescription("List a document's notes, newest first"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
		),
		h.listNotes,
	)

	// Favorite add
	s.AddTool(
		mcp.NewTool("docdex_fav_add",
			mcp.WithDescription("Bookmark a document page under a unique name"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Bookmark name (unique)")),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithNumber("page", mcp.Description("Page number the bookmark points at (0-based)")),
		),
		h.addFavorite,
	)

	// Favorites
	s.AddTool(
		mcp.NewTool("docdex_favorites",
			mcp.WithDescription("List all bookmarks, or look one up by name"),
			mcp.WithString("name", mcp.Description("Bookmark name to look up (optional)")),
		),
		h.listFavorites,
	)

	// Root add
	s.AddTool(
		mcp.NewTool("docdex_root_add",
			mcp.WithDescription("Register a directory to be scanned for documents"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Absolute directory path")),
			mcp.WithString("manufacturer", mcp.Description("Default manufacturer applied to files under this root")),
		),
		h.addRoot,
	)

	// Root remove
	s.AddTool(
		mcp.NewTool("docdex_root_remove",
			mcp.WithDescription("Unregister a scan root. Already-indexed documents are kept until the next scan."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Root directory path")),
		),
		h.removeRoot,
	)

	// Roots
	s.AddTool(
		mcp.NewTool("docdex_roots",
			mcp.WithDescription("List the registered scan roots"),
		),
		h.listRoots,
	)

	// Stats
	s.AddTool(
		mcp.NewTool("docdex_stats",
			mcp.WithDescription("Get aggregate index statistics (documents, pages, links, notes, bookmarks)"),
		),
		h.getStats,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("docdex_guide",
			mcp.WithDescription("Get help/guide content for docdex commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'scan', 'search', 'link') or empty for index")),
		),
		h.getGuide,
	)
}

// readDocument handles docdex://documents/{id} resource requests.
func (h *handlers) readDocument(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readDocumentResource(ctx, req.Params.URI)
}

// readDocumentPage handles docdex://documents/{id}/pages/{page} resource requests.
func (h *handlers) readDocumentPage(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readDocumentResource(ctx, req.Params.URI)
}
