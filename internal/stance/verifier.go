package stance

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/truthlens/truthlens/internal/cache"
	"github.com/truthlens/truthlens/internal/model"
)

// Verifier classifies every viable (claim, evidence) pair, in bounded
// concurrent batches with a pause between batches to respect external
// rate limits. Any individual classification failure degrades to a
// NEUTRAL result; the verifier itself never fails a request.
type Verifier struct {
	classifier Classifier
	memo       cache.Cache
	memoTTL    time.Duration
	cfg        model.VerifierConfig
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewVerifier creates a stance verifier. The memo cache may be nil.
func NewVerifier(classifier Classifier, memo cache.Cache, memoTTL time.Duration, cfg model.VerifierConfig, logger *slog.Logger) *Verifier {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.MinEvidenceChars <= 0 {
		cfg.MinEvidenceChars = 20
	}
	if cfg.MaxEvidenceChars <= 0 {
		cfg.MaxEvidenceChars = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Verifier{
		classifier: classifier,
		memo:       memo,
		memoTTL:    memoTTL,
		cfg:        cfg,
		logger:     logger,
		sleep:      sleepCtx,
	}
}

type pair struct {
	claim        string
	evidenceURL  string
	evidenceText string
}

// Verify classifies all viable pairs and returns one StanceResult per
// pair, in (claim, evidence) order. When no pair qualifies it returns a
// NEUTRAL placeholder per claim so aggregation never sees an empty set.
func (v *Verifier) Verify(ctx context.Context, claims []model.Claim, items []model.EvidenceItem) ([]model.StanceResult, error) {
	pairs := v.buildPairs(claims, items)

	if len(pairs) == 0 {
		results := make([]model.StanceResult, 0, len(claims))
		for _, claim := range claims {
			results = append(results, model.StanceResult{
				Claim:      claim.Text,
				Stance:     model.StanceNeutral,
				Confidence: FallbackConfidence,
			})
		}
		return results, nil
	}

	results := make([]model.StanceResult, len(pairs))

	for start := 0; start < len(pairs); start += v.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + v.cfg.BatchSize
		if end > len(pairs) {
			end = len(pairs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = v.classifyPair(ctx, pairs[i])
			}(i)
		}
		wg.Wait()

		// Pause between batches, not after the last one
		if end < len(pairs) && v.cfg.BatchDelay > 0 {
			if err := v.sleep(ctx, v.cfg.BatchDelay); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}

// buildPairs filters (claim x evidence) combinations by usable text
// length and truncates evidence text for the classifier
func (v *Verifier) buildPairs(claims []model.Claim, items []model.EvidenceItem) []pair {
	var pairs []pair
	for _, claim := range claims {
		for _, item := range items {
			text := item.UsableText()
			if len(text) <= v.cfg.MinEvidenceChars {
				continue
			}
			if len(text) > v.cfg.MaxEvidenceChars {
				text = text[:v.cfg.MaxEvidenceChars]
			}
			pairs = append(pairs, pair{
				claim:        claim.Text,
				evidenceURL:  item.URL,
				evidenceText: text,
			})
		}
	}
	return pairs
}

// classifyPair classifies one pair, consulting the memo cache first.
// Classifier failure yields a NEUTRAL result at reduced confidence.
func (v *Verifier) classifyPair(ctx context.Context, p pair) model.StanceResult {
	key := cache.PairKey(p.claim, p.evidenceText)

	if v.memo != nil {
		if raw, ok := v.memo.Get(key); ok {
			var j Judgment
			if err := json.Unmarshal(raw, &j); err == nil {
				return v.toResult(p, &j)
			}
		}
	}

	judgment, err := v.classifier.Classify(ctx, p.claim, p.evidenceText)
	if err != nil {
		v.logger.Warn("stance classification failed",
			"classifier", v.classifier.Name(),
			"claim", p.claim,
			"error", err)
		return model.StanceResult{
			Claim:       p.claim,
			EvidenceURL: p.evidenceURL,
			Stance:      model.StanceNeutral,
			Confidence:  FallbackConfidence,
		}
	}

	if v.memo != nil {
		if raw, err := json.Marshal(judgment); err == nil {
			_ = v.memo.Set(key, raw, v.memoTTL)
		}
	}

	return v.toResult(p, judgment)
}

// toResult validates the judgment at the verifier boundary: unrecognized
// stances coerce to NEUTRAL and confidence is clamped to [0,1].
func (v *Verifier) toResult(p pair, j *Judgment) model.StanceResult {
	stance := j.Stance
	if !stance.Valid() {
		stance = model.StanceNeutral
	}

	confidence := j.Confidence
	if confidence == 0 {
		confidence = DefaultConfidence
	}

	return model.StanceResult{
		Claim:       p.claim,
		EvidenceURL: p.evidenceURL,
		Stance:      stance,
		Confidence:  ClampConfidence(confidence),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
