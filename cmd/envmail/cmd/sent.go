package cmd

import (
	"github.com/spf13/cobra"
)

var (
	sentDate    string
	sentAddress string
	sentLimit   int
)

var sentCmd = &cobra.Command{
	Use:   "sent",
	Short: "Find emails sent by an address",
	Long: `Find emails sent by an address, optionally on a specific date.
Without --address, the configured primary address is used.

Examples:
  envmail sent --date 2024-03-01
  envmail sent --address me@example.com --limit 25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printReport(newEngine().FindSentEmails(cmd.Context(), sentDate, sentAddress, sentLimit))
	},
}

func init() {
	rootCmd.AddCommand(sentCmd)
	sentCmd.Flags().StringVar(&sentDate, "date", "", "date to search for (YYYY-MM-DD)")
	sentCmd.Flags().StringVar(&sentAddress, "address", "", "sender address (default: configured primary address)")
	sentCmd.Flags().IntVar(&sentLimit, "limit", 0, "maximum results (default 10)")
}
