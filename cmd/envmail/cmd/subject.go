package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	subjectDate  string
	subjectLimit int
)

var subjectCmd = &cobra.Command{
	Use:   "subject <text>",
	Short: "Search emails by subject text",
	Long: `Search for emails whose subject contains the given text, optionally
restricted to a specific date.

Examples:
  envmail subject Invoice
  envmail subject "status update" --date 2024-03-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		return printReport(newEngine().SearchBySubject(cmd.Context(), text, subjectDate, subjectLimit))
	},
}

func init() {
	rootCmd.AddCommand(subjectCmd)
	subjectCmd.Flags().StringVar(&subjectDate, "date", "", "date to search for (YYYY-MM-DD)")
	subjectCmd.Flags().IntVar(&subjectLimit, "limit", 0, "maximum results (default 10)")
}
