// Package pipeline orchestrates the four verification stages:
// text -> claims -> evidence -> stance results -> score.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/truthlens/truthlens/internal/cache"
	"github.com/truthlens/truthlens/internal/evidence"
	"github.com/truthlens/truthlens/internal/extract"
	"github.com/truthlens/truthlens/internal/model"
	"github.com/truthlens/truthlens/internal/nlp"
	"github.com/truthlens/truthlens/internal/score"
	"github.com/truthlens/truthlens/internal/stance"
	"github.com/truthlens/truthlens/internal/worker"
)

// Pipeline runs one verification request end-to-end. Each stage
// parallelizes its own fan-out internally; stages compose strictly, each
// consuming only the previous stage's output.
type Pipeline struct {
	extractor *extract.Extractor
	retriever *evidence.Retriever
	verifier  *stance.Verifier
	scorer    *score.Scorer
	cfg       *model.Config
	logger    *slog.Logger
}

// New wires a pipeline from configuration. The classifier provider falls
// back to the rule-based variant when the configured one cannot be
// constructed, so the pipeline always comes up.
func New(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	var memo cache.Cache
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	classifier, err := stance.NewClassifier(cfg.Classifier)
	if err != nil {
		logger.Warn("classifier unavailable, falling back to rules", "error", err)
		classifier = stance.NewRuleClassifier()
	}

	limiter := worker.NewLimiter(cfg.Retrieval.RequestsPerSecond, cfg.Retrieval.Burst)
	sources := []evidence.Source{
		evidence.NewFactCheckSource(cfg.Retrieval, cfg.HTTP),
		evidence.NewWikipediaSource(cfg.Retrieval, cfg.HTTP),
	}
	reputation := evidence.NewReputation(cfg.Retrieval.TrustedDomains)

	return &Pipeline{
		extractor: extract.NewExtractor(nlp.NewLocalAnnotator(), memo, cfg.Cache.TTL, cfg.Extract),
		retriever: evidence.NewRetriever(sources, limiter, cfg.Retrieval, logger),
		verifier:  stance.NewVerifier(classifier, memo, cfg.Cache.TTL, cfg.Verifier, logger),
		scorer:    score.NewScorer(cfg.Scoring, reputation),
		cfg:       cfg,
		logger:    logger,
	}
}

// NewWithStages wires a pipeline from pre-built stages (tests and
// embedders that substitute collaborators).
func NewWithStages(extractor *extract.Extractor, retriever *evidence.Retriever, verifier *stance.Verifier, scorer *score.Scorer, cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor: extractor,
		retriever: retriever,
		verifier:  verifier,
		scorer:    scorer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Verify runs the full pipeline over one passage of text. It rejects
// too-short input with an InputError; every other reachable failure
// degrades into a lower-confidence report rather than an error.
func (p *Pipeline) Verify(ctx context.Context, text string) (*model.Report, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < p.cfg.Extract.MinInputChars {
		return nil, &InputError{
			Reason: "text too short to verify",
		}
	}

	// One deadline covers the whole request; cancelling it aborts every
	// in-flight sub-call
	if p.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RequestTimeout)
		defer cancel()
	}

	// 1. Extract claims. Annotator failure degrades to zero claims; the
	// downstream stages then produce a NotEnoughInfo report.
	claims, err := p.extractor.Extract(ctx, trimmed)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Warn("claim extraction degraded", "error", err)
		claims = []model.Claim{}
	}

	// 2. Retrieve evidence across all sources concurrently
	items, err := p.retriever.Search(ctx, claims)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Warn("evidence retrieval degraded", "error", err)
		items = []model.EvidenceItem{}
	}

	// 3. Classify stance per (claim, evidence) pair in paced batches
	results, err := p.verifier.Verify(ctx, claims, items)
	if err != nil {
		return nil, err
	}

	// 4. Aggregate into the final score report
	report := p.scorer.Compute(results, items)

	return &model.Report{
		Input:      trimmed,
		VerifiedAt: time.Now().UTC(),
		Claims:     claims,
		Evidence:   items,
		Stances:    results,
		Score:      report,
	}, nil
}
