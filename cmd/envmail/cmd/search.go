package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search emails by subject or sender text",
	Long: `Search the envelope database for messages whose subject or sender
matches the given text. With no query, lists the most recently received
messages.

Examples:
  envmail search invoice
  envmail search "quarterly report" --limit 25
  envmail search`,
	RunE: func(cmd *cobra.Command, args []string) error {
		queryStr := strings.Join(args, " ")
		return printReport(newEngine().SearchMessages(cmd.Context(), queryStr, searchLimit))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default 10)")
}
