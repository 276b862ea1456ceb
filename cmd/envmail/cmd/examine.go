package cmd

import (
	"github.com/spf13/cobra"
)

var examineCmd = &cobra.Command{
	Use:   "examine",
	Short: "Examine the envelope database structure",
	Long: `Print every table in the envelope database with its live columns,
row counts, and sample rows for the core tables. Useful for diagnosing
layout differences between Mail versions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printReport(newEngine().ExamineDatabase(cmd.Context()))
	},
}

var allTablesLimit int
var allTablesDate string

var allTablesCmd = &cobra.Command{
	Use:   "search-all-tables",
	Short: "Search every plausible message table",
	Long: `Blind search: walk every table in the envelope database, decide from
its live columns whether it plausibly holds message data, and query the
ones that do. Tables with an unrecognized shape are shown as samples.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printReport(newEngine().SearchAllTables(cmd.Context(), allTablesDate, allTablesLimit))
	},
}

func init() {
	rootCmd.AddCommand(examineCmd)
	rootCmd.AddCommand(allTablesCmd)
	allTablesCmd.Flags().StringVar(&allTablesDate, "date", "", "date to search for (YYYY-MM-DD)")
	allTablesCmd.Flags().IntVar(&allTablesLimit, "limit", 0, "maximum results per table (default 10)")
}
