package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/truthlens/truthlens/internal/model"
)

// TextVerifier verifies one passage of text end-to-end
type TextVerifier interface {
	Verify(ctx context.Context, text string) (*model.Report, error)
}

// VerifyJob verifies one labeled passage
type VerifyJob struct {
	Label    string
	Text     string
	Verifier TextVerifier
}

// Execute runs the verification job
func (j *VerifyJob) Execute(ctx context.Context) Result {
	report, err := j.Verifier.Verify(ctx, j.Text)
	return &VerifyResult{
		Label:  j.Label,
		Report: report,
		Error:  err,
	}
}

// VerifyResult is the outcome of one verification job
type VerifyResult struct {
	Label  string
	Report *model.Report
	Error  error
}

// GetError returns the error from the verification
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple passages concurrently
type BatchProcessor struct {
	verifier    TextVerifier
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(verifier TextVerifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessTexts verifies the given passages concurrently, labeling each
// result with its input line number.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string) []*VerifyResult {
	if len(texts) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, text := range texts {
		pool.Submit(&VerifyJob{
			Label:    fmt.Sprintf("line %d", i+1),
			Text:     text,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessFile reads passages from a file (one per line) and verifies them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	texts, err := ReadTextsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.ProcessTexts(ctx, texts), nil
}

// ReadTextsFromFile reads non-empty, non-comment lines from a file
func ReadTextsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return texts, nil
}
