package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/pipeline"
	"github.com/truthlens/truthlens/internal/worker"
)

var batchConcurrency int

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple passages from a file",
	Long: `Batch reads passages from a file (one per line, # starts a comment)
and verifies them concurrently.

Example:
  truthlens batch headlines.txt --concurrency 3`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addVerifyFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "number of passages verified in parallel")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, newLogger())
	processor := worker.NewBatchProcessor(p, batchConcurrency)

	results, err := processor.ProcessFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	failures := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Label, result.Error)
			continue
		}
		fmt.Printf("%s: %s (%d/100)\n",
			result.Label, result.Report.Score.Verdict, result.Report.Score.OverallScore)
	}

	fmt.Printf("\nVerified %d/%d passages\n", len(results)-failures, len(results))

	if failures == len(results) && len(results) > 0 {
		return fmt.Errorf("all %d verifications failed", failures)
	}

	return nil
}
