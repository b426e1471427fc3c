// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers provide safe defaults when
// optional parameters are missing.
//
// Design: We use permissive extraction (return default on error) rather than
// strict validation because MCP tools should be forgiving - an LLM omitting
// an optional parameter shouldn't cause cryptic errors. Returning sensible
// defaults keeps the tool usable rather than failing with type errors the
// LLM may struggle to interpret.

package mcp

import (
	"github.com/jpl-au/docdex/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter from the MCP request, returning the
// provided default if the parameter is missing or cannot be parsed as a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// hasString reports whether the parameter was provided at all, letting tools
// distinguish "omitted" from "explicitly empty" (docdex_set clears a field on
// an explicit empty string but leaves omitted fields untouched).
func hasString(req mcp.CallToolRequest, name string) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return false
	}
	_, ok = args[name].(string)
	return ok
}

// getBool extracts a boolean parameter from the MCP request arguments.
//
// JSON booleans decode as Go bool values, so a simple type assertion
// suffices. Returns the default if the parameter is missing or not a boolean.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter from the MCP request arguments.
//
// JSON numbers decode as float64 in Go's encoding/json, so we must type
// assert to float64 first and then convert. Returns the default if the
// parameter is missing or not a number.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// getID extracts an int64 document/row id parameter, returning 0 when absent.
func getID(req mcp.CallToolRequest, name string) int64 {
	return int64(getInt(req, name, 0))
}

// jsonResult serialises any value as pretty-printed JSON and wraps it in an
// MCP text result for return to the LLM client.
//
// We use store.MarshalJSON (which pretty-prints with indentation) rather than
// compact JSON because LLMs parse structured output more reliably when it's
// formatted for readability.
//
// Errors during marshalling are converted to MCP error results rather than
// propagating as Go errors, keeping the tool response pattern consistent:
// all failures are communicated via MCP's error result mechanism.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
