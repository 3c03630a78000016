package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/pipeline"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Fetch a web page and verify its content",
	Long: `Scan fetches a web page (respecting robots.txt), extracts its visible
text, and runs the verification pipeline over it.

Example:
  truthlens scan https://example.com/article --json report.json
  truthlens scan https://example.com/article --classifier openai`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addVerifyFlags(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", url)
	}

	fetcher := pipeline.NewFetcher(cfg.HTTP)
	page, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	p := pipeline.New(cfg, newLogger())

	report, err := p.Verify(ctx, page.Text)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	report.Subject = page.Title

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d claims, %d evidence items\n",
			len(report.Claims), len(report.Evidence))
	}

	return renderOutputs(report)
}
