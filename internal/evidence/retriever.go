package evidence

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/truthlens/truthlens/internal/model"
	"github.com/truthlens/truthlens/internal/worker"
)

// Retriever fans out evidence queries across all configured sources for
// every claim, then deduplicates and ranks the combined results.
type Retriever struct {
	sources  []Source
	limiter  *worker.Limiter
	maxItems int
	workers  int
	logger   *slog.Logger
}

// NewRetriever creates a retriever over the given sources. The limiter
// may be nil to disable per-domain pacing (tests).
func NewRetriever(sources []Source, limiter *worker.Limiter, cfg model.RetrievalConfig, logger *slog.Logger) *Retriever {
	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = 5
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 10
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{
		sources:  sources,
		limiter:  limiter,
		maxItems: maxItems,
		workers:  workers,
		logger:   logger,
	}
}

// Search queries every (claim, source) combination concurrently and waits
// for all of them before aggregating. Output order is deterministic:
// results are flattened claim-major with fact-check sources before
// encyclopedic ones, deduplicated by URL first-wins, and capped.
// Individual query failures degrade to empty results and are logged.
func (r *Retriever) Search(ctx context.Context, claims []model.Claim) ([]model.EvidenceItem, error) {
	if len(claims) == 0 || len(r.sources) == 0 {
		return []model.EvidenceItem{}, nil
	}

	// results[claimIdx][sourceIdx] keeps flattening independent of
	// completion order
	results := make([][][]model.EvidenceItem, len(claims))
	for i := range results {
		results[i] = make([][]model.EvidenceItem, len(r.sources))
	}

	semaphore := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

	for ci, claim := range claims {
		for si, src := range r.sources {
			wg.Add(1)
			go func(ci, si int, claim model.Claim, src Source) {
				defer wg.Done()

				select {
				case <-ctx.Done():
					return
				case semaphore <- struct{}{}:
				}
				defer func() { <-semaphore }()

				if r.limiter != nil {
					if err := r.limiter.Wait(ctx, src.BaseURL()); err != nil {
						return
					}
				}

				items, err := src.Search(ctx, claim)
				if err != nil {
					r.logger.Warn("evidence source failed",
						"source", src.Name(),
						"claim", claim.Text,
						"error", err)
					return
				}
				results[ci][si] = items
			}(ci, si, claim, src)
		}
	}

	wg.Wait()

	return r.aggregate(results), nil
}

// aggregate flattens, deduplicates, orders, and caps the raw results
func (r *Retriever) aggregate(results [][][]model.EvidenceItem) []model.EvidenceItem {
	var all []model.EvidenceItem
	for _, perClaim := range results {
		for _, perSource := range perClaim {
			all = append(all, perSource...)
		}
	}

	seen := make(map[string]bool)
	unique := make([]model.EvidenceItem, 0, len(all))
	for _, item := range all {
		if item.URL == "" || seen[item.URL] {
			continue
		}
		seen[item.URL] = true
		unique = append(unique, item)
	}

	// Fact-check results sort before encyclopedia results; the sort is
	// stable so first-occurrence order is preserved within a kind
	sort.SliceStable(unique, func(i, j int) bool {
		return kindPriority(unique[i].Kind) < kindPriority(unique[j].Kind)
	})

	if len(unique) > r.maxItems {
		unique = unique[:r.maxItems]
	}

	return unique
}

func kindPriority(kind model.SourceKind) int {
	if kind == model.SourceFactCheckDB {
		return 0
	}
	return 1
}
