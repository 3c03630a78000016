package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/pipeline"
)

var verifyFile string

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [text]",
	Short: "Verify a passage of text",
	Long: `Verify runs the full verification pipeline over a passage of text:
claim extraction, evidence retrieval, stance classification, and scoring.

The text is taken from the argument, from --file, or from stdin.

Example:
  truthlens verify "The WHO confirmed that vaccines are safe and effective."
  truthlens verify --file article.txt --json report.json
  truthlens verify --classifier openai "Studies show 95% efficacy."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	addVerifyFlags(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyFile, "file", "", "read the text from a file instead of the argument")
}

func runVerify(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, newLogger())

	report, err := p.Verify(context.Background(), text)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	return renderOutputs(report)
}

// readInput resolves the text from argument, file, or stdin
func readInput(args []string) (string, error) {
	if verifyFile != "" {
		data, err := os.ReadFile(verifyFile)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	}

	if len(args) == 1 {
		return args[0], nil
	}

	// Fall back to stdin so the command composes with pipes
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input: pass text as an argument, via --file, or on stdin")
	}
	return string(data), nil
}
