// Package mcp exposes the envelope query engine as MCP tools over stdio.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/envmail/envmail/internal/query"
)

// Tool name constants.
const (
	ToolMailSearch          = "mail_search"
	ToolMailListAccounts    = "mail_list_accounts"
	ToolMailExamineDatabase = "mail_examine_database"
	ToolMailSearchAllTables = "mail_search_all_tables"
	ToolMailFindSentEmails  = "mail_find_sent_emails"
	ToolMailSearchBySubject = "mail_search_by_subject"
)

const serverVersion = "1.0.0"

// Common argument helpers for recurring tool option definitions.

func withLimit(desc string) mcp.ToolOption {
	return mcp.WithNumber("limit",
		mcp.Description(desc+" (default 10)"),
	)
}

func withDateFilter() mcp.ToolOption {
	return mcp.WithString("date_filter",
		mcp.Description("Date to search for (YYYY-MM-DD)"),
	)
}

// Serve creates an MCP server with the envelope search tools and serves
// over stdio. It blocks until stdin is closed or the context is
// cancelled. Requests are processed one at a time; each tool call opens
// and closes its own read-only database connection.
func Serve(ctx context.Context, engine query.Engine) error {
	s := server.NewMCPServer(
		"envmail",
		serverVersion,
		server.WithToolCapabilities(false),
	)

	h := &handlers{engine: engine}

	s.AddTool(mailSearchTool(), h.mailSearch)
	s.AddTool(mailListAccountsTool(), h.mailListAccounts)
	s.AddTool(mailExamineDatabaseTool(), h.mailExamineDatabase)
	s.AddTool(mailSearchAllTablesTool(), h.mailSearchAllTables)
	s.AddTool(mailFindSentEmailsTool(), h.mailFindSentEmails)
	s.AddTool(mailSearchBySubjectTool(), h.mailSearchBySubject)

	stdio := server.NewStdioServer(s)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func mailSearchTool() mcp.Tool {
	return mcp.NewTool(ToolMailSearch,
		mcp.WithDescription("Search emails in the local Apple Mail database"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Description("Search query"),
		),
		withLimit("Maximum results"),
	)
}

func mailListAccountsTool() mcp.Tool {
	return mcp.NewTool(ToolMailListAccounts,
		mcp.WithDescription("List all mail accounts"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func mailExamineDatabaseTool() mcp.Tool {
	return mcp.NewTool(ToolMailExamineDatabase,
		mcp.WithDescription("Examine the envelope database structure to find tables and schemas"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func mailSearchAllTablesTool() mcp.Tool {
	return mcp.NewTool(ToolMailSearchAllTables,
		mcp.WithDescription("Search for emails across all tables in the envelope database"),
		mcp.WithReadOnlyHintAnnotation(true),
		withDateFilter(),
		withLimit("Maximum results per table"),
	)
}

func mailFindSentEmailsTool() mcp.Tool {
	return mcp.NewTool(ToolMailFindSentEmails,
		mcp.WithDescription("Find emails sent by the user on a specific date"),
		mcp.WithReadOnlyHintAnnotation(true),
		withDateFilter(),
		mcp.WithString("email_address",
			mcp.Description("Email address to search for (default: the configured primary address)"),
		),
		withLimit("Maximum results"),
	)
}

func mailSearchBySubjectTool() mcp.Tool {
	return mcp.NewTool(ToolMailSearchBySubject,
		mcp.WithDescription("Search for emails by subject text on a specific date"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("subject_text",
			mcp.Required(),
			mcp.Description("Subject text to search for"),
		),
		withDateFilter(),
		withLimit("Maximum results"),
	)
}
