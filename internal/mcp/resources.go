// resources.go implements MCP resource handlers for document access.
//
// MCP resources provide read-only access to the index via URI schemes,
// enabling LLM clients to reference documents without using tools. This
// is useful for context loading where the LLM needs document content but
// isn't performing an action.
//
// Design: Resource URIs follow the pattern docdex://documents/{id}[/pages/{page}].
// The bare form returns the document record as JSON; the page form returns the
// extracted text of that page. This mirrors the CLI's "show" command behaviour.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/docdex/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a missing document id in a resource URI.
	ErrEmptyID = errors.New("empty document id")
)

// readDocumentResource reads a document record or page text as resource contents.
func (h *handlers) readDocumentResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, page, err := parseDocumentURI(uri)
	if err != nil {
		return nil, err
	}

	if page >= 0 {
		text, err := h.svc.PageText(ctx, id, page)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	}

	doc, err := h.svc.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(doc.ToJSON())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseDocumentURI extracts document id and page number from a resource URI.
// Supports: docdex://documents/{id} and docdex://documents/{id}/pages/{page}.
// The returned page is -1 when the URI addresses the whole document.
func parseDocumentURI(uri string) (id int64, page int, err error) {
	const prefix = "docdex://documents/"
	if !strings.HasPrefix(uri, prefix) {
		return 0, -1, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return 0, -1, ErrEmptyID
	}

	idStr := rest
	page = -1
	if idx := strings.Index(rest, "/pages/"); idx != -1 {
		idStr = rest[:idx]
		pStr := rest[idx+len("/pages/"):]
		page, err = strconv.Atoi(pStr)
		if err != nil || page < 0 {
			return 0, -1, fmt.Errorf("%w: invalid page %s", ErrInvalidURI, pStr)
		}
	}

	id, err = strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, -1, fmt.Errorf("%w: invalid document id %s", ErrInvalidURI, idStr)
	}
	return id, page, nil
}
