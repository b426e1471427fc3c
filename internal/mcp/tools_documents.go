// tools_documents.go implements MCP tools for single-document access and
// metadata editing.

package mcp

import (
	"context"

	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// readDocumentTool handles docdex_read tool calls. The document can be
// addressed by id or by filesystem path; when a page number is given the
// extracted text of that page is included alongside the metadata.
func (h *handlers) readDocumentTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	var err error
	id := getID(req, "id")
	path := getString(req, "path", "")
	page := getInt(req, "page", -1)

	l := log.Event("mcp:read", "read").Author("mcp")
	defer func() { l.Write(err) }()

	var doc *store.Document
	switch {
	case id > 0:
		doc, err = h.svc.Document(ctx, id)
	case path != "":
		l.Path(path)
		doc, err = h.svc.DocumentByPath(ctx, path)
	default:
		return mcp.NewToolResultError("id or path is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Doc(doc.ID)

	result := map[string]any{"document": doc.ToJSON()}
	if page >= 0 {
		var text string
		text, err = h.svc.PageText(ctx, doc.ID, page)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result["page"] = page
		result["page_text"] = text
	}

	return jsonResult(result)
}

// setFields handles docdex_set tool calls. Only parameters present in the
// request become edits: an explicit empty string clears the column, and an
// omitted parameter leaves it untouched.
func (h *handlers) setFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	id := getID(req, "id")
	if id <= 0 {
		return mcp.NewToolResultError("id is required"), nil
	}

	var edits store.FieldEdits
	set := func(name string, dst **string) {
		if hasString(req, name) {
			v := getString(req, name, "")
			*dst = &v
		}
	}
	set("manufacturer", &edits.Manufacturer)
	set("device_model", &edits.DeviceModel)
	set("document_type", &edits.DocumentType)
	set("keywords", &edits.Keywords)
	set("revision_number", &edits.RevisionNumber)
	set("revision_date", &edits.RevisionDate)
	set("status", &edits.Status)
	set("applicable_models", &edits.ApplicableModels)
	set("associated_test_equipment", &edits.AssociatedTestEquipment)

	if edits.Empty() {
		return mcp.NewToolResultError("no fields to set"), nil
	}

	n, err := h.svc.SetFields(ctx, []int64{id}, edits)

	log.Event("mcp:set", "edit").Author("mcp").Doc(id).Detail("updated", n).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"id":      id,
		"updated": n,
	})
}
