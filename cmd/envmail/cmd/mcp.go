package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/envmail/envmail/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server for Claude Desktop integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This allows Claude Desktop (or any MCP client) to search the local Apple
Mail database using tools like mail_search, mail_find_sent_emails,
mail_search_by_subject, and mail_examine_database.

Add to Claude Desktop config:
  {
    "mcpServers": {
      "envmail": {
        "command": "envmail",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("MCP server starting",
			"mail_directory", cfg.Mail.Directory,
			"primary_address", cfg.Mail.PrimaryAddress)
		return mcpserver.Serve(cmd.Context(), newEngine())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
