package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/envmail/envmail/internal/query"
	"github.com/envmail/envmail/internal/query/querytest"
)

// toolHandler is the function signature for MCP tool handler methods.
type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// callToolDirect invokes a handler directly with the given arguments and
// returns the raw result.
func callToolDirect(t *testing.T, name string, fn toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return result
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) == 0 {
		t.Fatal("empty content")
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", r.Content[0])
	}
	return tc.Text
}

func TestHandlersForwardArguments(t *testing.T) {
	cases := []struct {
		name     string
		tool     string
		handler  func(h *handlers) toolHandler
		args     map[string]any
		wantCall querytest.Call
	}{
		{
			name:    "search",
			tool:    ToolMailSearch,
			handler: func(h *handlers) toolHandler { return h.mailSearch },
			args:    map[string]any{"query": "invoice", "limit": float64(5)},
			wantCall: querytest.Call{
				Method: "SearchMessages", Args: []any{"invoice", 5},
			},
		},
		{
			name:     "list accounts",
			tool:     ToolMailListAccounts,
			handler:  func(h *handlers) toolHandler { return h.mailListAccounts },
			args:     nil,
			wantCall: querytest.Call{Method: "ListAccounts"},
		},
		{
			name:     "examine database",
			tool:     ToolMailExamineDatabase,
			handler:  func(h *handlers) toolHandler { return h.mailExamineDatabase },
			args:     nil,
			wantCall: querytest.Call{Method: "ExamineDatabase"},
		},
		{
			name:    "search all tables",
			tool:    ToolMailSearchAllTables,
			handler: func(h *handlers) toolHandler { return h.mailSearchAllTables },
			args:    map[string]any{"date_filter": "2024-03-01"},
			wantCall: querytest.Call{
				Method: "SearchAllTables", Args: []any{"2024-03-01", 0},
			},
		},
		{
			name:    "find sent emails",
			tool:    ToolMailFindSentEmails,
			handler: func(h *handlers) toolHandler { return h.mailFindSentEmails },
			args:    map[string]any{"date_filter": "2024-03-01", "email_address": "a@b.com"},
			wantCall: querytest.Call{
				Method: "FindSentEmails", Args: []any{"2024-03-01", "a@b.com", 0},
			},
		},
		{
			name:    "search by subject",
			tool:    ToolMailSearchBySubject,
			handler: func(h *handlers) toolHandler { return h.mailSearchBySubject },
			args:    map[string]any{"subject_text": "Invoice", "limit": float64(25)},
			wantCall: querytest.Call{
				Method: "SearchBySubject", Args: []any{"Invoice", "", 25},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng := &querytest.MockEngine{Text: "ok"}
			h := &handlers{engine: eng}

			r := callToolDirect(t, tc.tool, tc.handler(h), tc.args)
			if r.IsError {
				t.Fatalf("unexpected error result: %s", resultText(t, r))
			}
			if got := resultText(t, r); got != "ok" {
				t.Errorf("result text = %q", got)
			}
			if diff := cmp.Diff(tc.wantCall, eng.LastCall()); diff != "" {
				t.Errorf("call mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiagnosticsBecomeTextResults(t *testing.T) {
	eng := &querytest.MockEngine{
		Err: &query.Diagnostic{
			Kind:    query.DiagnosticNotFound,
			Message: "No subjects found containing 'zzz'",
		},
	}
	h := &handlers{engine: eng}

	r := callToolDirect(t, ToolMailSearchBySubject, h.mailSearchBySubject,
		map[string]any{"subject_text": "zzz"})
	if r.IsError {
		t.Fatal("diagnostics must not be protocol errors")
	}
	if got := resultText(t, r); got != "No subjects found containing 'zzz'" {
		t.Errorf("result text = %q", got)
	}
}

func TestHardErrorsBecomeErrorResults(t *testing.T) {
	eng := &querytest.MockEngine{Err: errors.New("boom")}
	h := &handlers{engine: eng}

	r := callToolDirect(t, ToolMailSearch, h.mailSearch, nil)
	if !r.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, r); got != "boom" {
		t.Errorf("error text = %q", got)
	}
}

func TestIntArg(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
		want int
	}{
		{"missing", map[string]any{}, 0},
		{"number", map[string]any{"limit": float64(7)}, 7},
		{"negative", map[string]any{"limit": float64(-1)}, 0},
		{"string", map[string]any{"limit": "7"}, 0},
		{"huge", map[string]any{"limit": float64(1e12)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := intArg(tc.args, "limit"); got != tc.want {
				t.Errorf("intArg = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestToolDefinitions(t *testing.T) {
	tools := []mcp.Tool{
		mailSearchTool(),
		mailListAccountsTool(),
		mailExamineDatabaseTool(),
		mailSearchAllTablesTool(),
		mailFindSentEmailsTool(),
		mailSearchBySubjectTool(),
	}

	wantNames := []string{
		ToolMailSearch,
		ToolMailListAccounts,
		ToolMailExamineDatabase,
		ToolMailSearchAllTables,
		ToolMailFindSentEmails,
		ToolMailSearchBySubject,
	}
	for i, tool := range tools {
		if tool.Name != wantNames[i] {
			t.Errorf("tool %d name = %q, want %q", i, tool.Name, wantNames[i])
		}
		if tool.Annotations.ReadOnlyHint == nil || !*tool.Annotations.ReadOnlyHint {
			t.Errorf("tool %q missing read-only hint", tool.Name)
		}
	}

	subject := mailSearchBySubjectTool()
	if diff := cmp.Diff([]string{"subject_text"}, subject.InputSchema.Required); diff != "" {
		t.Errorf("required args mismatch (-want +got):\n%s", diff)
	}
}
