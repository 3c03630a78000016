package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/store"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <db-path>",
	Short: "Show recent verifications from a history database",
	Long: `History lists the most recent verifications recorded with --save.

Example:
  truthlens history ~/.truthlens/history.db --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum records to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open(args[0])
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = db.Close() }()

	records, err := db.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No verifications recorded.")
		return nil
	}

	for _, r := range records {
		label := r.Subject
		if label == "" {
			label = truncate(r.Input, 60)
		}
		fmt.Printf("[%s] %s\n  %s (%d/100)\n",
			r.CreatedAt.Format("2006-01-02 15:04"), label, r.Verdict, r.Score)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
