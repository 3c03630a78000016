package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/model"
	"github.com/truthlens/truthlens/internal/pipeline"
	"github.com/truthlens/truthlens/internal/store"
)

// Flags shared by the verification commands
var (
	outJSON         string
	outMD           string
	requestTimeout  time.Duration
	classifierName  string
	classifierModel string
	classifierURL   string
	noCache         bool
	savePath        string
)

func addVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path")
	cmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path")
	cmd.Flags().DurationVar(&requestTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	cmd.Flags().StringVar(&classifierName, "classifier", "rules", "stance classifier (rules, openai, grok)")
	cmd.Flags().StringVar(&classifierModel, "model", "", "classifier model name")
	cmd.Flags().StringVar(&classifierURL, "base-url", "", "classifier API base URL (OpenAI-compatible)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable memoization caches")
	cmd.Flags().StringVar(&savePath, "save", "", "append the result to a SQLite history database at this path")
}

// buildConfig assembles runtime configuration from defaults, env, and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.RequestTimeout = requestTimeout
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Retrieval.FactCheckAPIKey = os.Getenv("GOOGLE_FACT_CHECK_API_KEY")

	cfg.Classifier.Provider = classifierName
	cfg.Classifier.Model = classifierModel
	cfg.Classifier.BaseURL = classifierURL

	switch classifierName {
	case "openai":
		cfg.Classifier.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Classifier.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "grok":
		cfg.Classifier.APIKey = os.Getenv("GROK_API_KEY")
		if cfg.Classifier.APIKey == "" {
			return nil, fmt.Errorf("GROK_API_KEY environment variable not set")
		}
		if cfg.Classifier.BaseURL == "" {
			cfg.Classifier.BaseURL = "https://api.x.ai/v1"
		}
	}

	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// renderOutputs writes the report to the requested destinations and
// optionally appends it to the history database
func renderOutputs(report *model.Report) error {
	renderer := pipeline.NewRenderer()

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	if savePath != "" {
		db, err := store.Open(savePath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer func() { _ = db.Close() }()

		if _, err := db.Save(report); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}

	renderer.RenderSummary(report)

	return nil
}
