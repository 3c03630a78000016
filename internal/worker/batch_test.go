package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/truthlens/truthlens/internal/model"
)

// stubVerifier returns a canned report, failing for marked inputs
type stubVerifier struct {
	failOn string
}

func (s *stubVerifier) Verify(ctx context.Context, text string) (*model.Report, error) {
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return nil, errors.New("verification failed")
	}
	return &model.Report{
		Input: text,
		Score: model.ScoreReport{OverallScore: 50, Verdict: model.VerdictNotEnoughInfo},
	}, nil
}

func TestProcessTexts(t *testing.T) {
	b := NewBatchProcessor(&stubVerifier{}, 3)

	texts := []string{
		"The first claim to check out.",
		"The second claim to check out.",
		"The third claim to check out.",
	}
	results := b.ProcessTexts(context.Background(), texts)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("unexpected error for %q: %v", r.Label, r.Error)
		}
		if r.Report == nil {
			t.Errorf("missing report for %q", r.Label)
			continue
		}
		seen[r.Report.Input] = true
	}
	for _, text := range texts {
		if !seen[text] {
			t.Errorf("no result for input %q", text)
		}
	}
}

func TestProcessTextsPartialFailure(t *testing.T) {
	b := NewBatchProcessor(&stubVerifier{failOn: "second"}, 2)

	results := b.ProcessTexts(context.Background(), []string{
		"The first claim to check out.",
		"The second claim to check out.",
	})

	var failures int
	for _, r := range results {
		if r.Error != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestProcessTextsEmpty(t *testing.T) {
	b := NewBatchProcessor(&stubVerifier{}, 2)

	results := b.ProcessTexts(context.Background(), nil)
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil results, got %v", results)
	}
}

func TestReadTextsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	content := `# comment line
The first claim to check out.

The second claim to check out.

# another comment
The third claim to check out.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	texts, err := ReadTextsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 3 {
		t.Fatalf("expected 3 texts, got %d: %v", len(texts), texts)
	}
	if texts[0] != "The first claim to check out." {
		t.Errorf("unexpected first text %q", texts[0])
	}
}

func TestReadTextsFromFileMissing(t *testing.T) {
	if _, err := ReadTextsFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	if err := os.WriteFile(path, []byte("The only claim to check out.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBatchProcessor(&stubVerifier{}, 1)
	results, err := b.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}
