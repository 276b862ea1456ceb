package cmd

import (
	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List mail accounts found on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printReport(newEngine().ListAccounts(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}
