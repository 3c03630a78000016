package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/feed"
	"github.com/truthlens/truthlens/internal/pipeline"
	"github.com/truthlens/truthlens/internal/store"
	"github.com/truthlens/truthlens/internal/worker"
)

var (
	feedLimit       int
	feedConcurrency int
)

// feedCmd represents the feed command
var feedCmd = &cobra.Command{
	Use:   "feed <rss-url>",
	Short: "Verify the items of an RSS/Atom feed",
	Long: `Feed pulls the latest entries from an RSS or Atom feed and verifies
each item's title and description.

Example:
  truthlens feed https://example.com/rss --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)

	addVerifyFlags(feedCmd)
	feedCmd.Flags().IntVar(&feedLimit, "limit", 10, "maximum feed items to verify")
	feedCmd.Flags().IntVar(&feedConcurrency, "concurrency", 2, "number of items verified in parallel")
}

func runFeed(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	fetcher := feed.NewFetcher(cfg.HTTP.UserAgent, feedLimit)
	items, err := fetcher.Fetch(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("feed has no items")
	}

	var history *store.Store
	if savePath != "" {
		history, err = store.Open(savePath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer func() { _ = history.Close() }()
	}

	p := pipeline.New(cfg, newLogger())

	pool := worker.NewPool(feedConcurrency)
	pool.Start()
	for _, item := range items {
		pool.Submit(&worker.VerifyJob{
			Label:    item.Title,
			Text:     item.Text,
			Verifier: p,
		})
	}

	failures := 0
	for _, result := range pool.Wait() {
		res := result.(*worker.VerifyResult)
		if res.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Label, res.Error)
			continue
		}

		res.Report.Subject = res.Label
		fmt.Printf("%s\n  %s (%d/100)\n", res.Label, res.Report.Score.Verdict, res.Report.Score.OverallScore)

		if history != nil {
			if _, err := history.Save(res.Report); err != nil {
				fmt.Fprintf(os.Stderr, "warning: save history: %v\n", err)
			}
		}
	}

	fmt.Printf("\nVerified %d/%d feed items\n", len(items)-failures, len(items))
	return nil
}
