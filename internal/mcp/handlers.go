package mcp

import (
	"context"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/envmail/envmail/internal/query"
)

type handlers struct {
	engine query.Engine
}

// stringArg extracts an optional string argument.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// intArg extracts an optional integer argument. JSON numbers arrive as
// float64. Missing, non-numeric, or out-of-range values return 0, which
// the engine clamps to its default cap.
func intArg(args map[string]any, key string) int {
	v, ok := args[key].(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// result converts an engine outcome into a tool result. Diagnostics are
// deliberately soft: they become ordinary text results carrying the same
// human-readable message a successful report would, so a missing database
// or an empty lookup stage reads as information, not a protocol error.
func result(text string, err error) (*mcp.CallToolResult, error) {
	if err == nil {
		return mcp.NewToolResultText(text), nil
	}
	if diag, ok := query.AsDiagnostic(err); ok {
		return mcp.NewToolResultText(diag.Message), nil
	}
	return mcp.NewToolResultError(err.Error()), nil
}

func (h *handlers) mailSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	return result(h.engine.SearchMessages(ctx,
		stringArg(args, "query"),
		intArg(args, "limit")))
}

func (h *handlers) mailListAccounts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(h.engine.ListAccounts(ctx))
}

func (h *handlers) mailExamineDatabase(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(h.engine.ExamineDatabase(ctx))
}

func (h *handlers) mailSearchAllTables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	return result(h.engine.SearchAllTables(ctx,
		stringArg(args, "date_filter"),
		intArg(args, "limit")))
}

func (h *handlers) mailFindSentEmails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	return result(h.engine.FindSentEmails(ctx,
		stringArg(args, "date_filter"),
		stringArg(args, "email_address"),
		intArg(args, "limit")))
}

func (h *handlers) mailSearchBySubject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	return result(h.engine.SearchBySubject(ctx,
		stringArg(args, "subject_text"),
		stringArg(args, "date_filter"),
		intArg(args, "limit")))
}
