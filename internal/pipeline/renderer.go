package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/truthlens/truthlens/internal/model"
)

// Renderer writes verification reports to files and the terminal
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	title := report.Subject
	if title == "" {
		title = "Verification Report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Verdict:** %s  \n", report.Score.Verdict)
	fmt.Fprintf(&b, "**Score:** %d/100  \n", report.Score.OverallScore)
	fmt.Fprintf(&b, "**Verified:** %s\n\n", report.VerifiedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "%s\n\n", report.Score.Explanation)

	if len(report.Claims) > 0 {
		b.WriteString("## Claims Checked\n\n")
		for i, claim := range report.Claims {
			fmt.Fprintf(&b, "%d. %s\n", i+1, claim.Text)
		}
		b.WriteString("\n")
	}

	if len(report.Stances) > 0 {
		b.WriteString("## Evidence Stances\n\n")
		b.WriteString("| Stance | Confidence | Evidence |\n")
		b.WriteString("|--------|------------|----------|\n")
		for _, s := range report.Stances {
			url := s.EvidenceURL
			if url == "" {
				url = "(no qualifying evidence)"
			}
			fmt.Fprintf(&b, "| %s | %.2f | %s |\n", s.Stance, s.Confidence, url)
		}
		b.WriteString("\n")
	}

	if len(report.Score.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for _, src := range report.Score.Sources {
			fmt.Fprintf(&b, "- [%s](%s)\n", src.Title, src.URL)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints a short result summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Printf("Verdict: %s (%d/100)\n", report.Score.Verdict, report.Score.OverallScore)
	fmt.Printf("%s\n", report.Score.Explanation)
	if len(report.Score.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range report.Score.Sources {
			fmt.Printf("  - %s\n    %s\n", src.Title, src.URL)
		}
	}
	fmt.Println()
}
