// Package extract turns raw text into a short ranked list of verifiable
// claim sentences.
package extract

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"time"

	"github.com/truthlens/truthlens/internal/cache"
	"github.com/truthlens/truthlens/internal/model"
	"github.com/truthlens/truthlens/internal/nlp"
)

// factualPatterns signal assertion, attribution, or statistical reporting
var factualPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(is|are|was|were|has|have|had)\b`),
	regexp.MustCompile(`(?i)\b(according to|reported|stated|confirmed|announced)\b`),
	regexp.MustCompile(`(?i)\b(study|research|report|survey|data)\b`),
	regexp.MustCompile(`(?i)\b(shows|reveals|indicates|suggests|demonstrates)\b`),
}

var digitPattern = regexp.MustCompile(`\d`)

// factualEntityLabels are the entity types that mark a sentence as checkable
var factualEntityLabels = map[string]bool{
	nlp.LabelPerson:       true,
	nlp.LabelOrganization: true,
	nlp.LabelLocation:     true,
	nlp.LabelDate:         true,
	nlp.LabelCardinal:     true,
}

// Extractor extracts claims from text using an external annotator.
// Extraction is pure given the annotator output, so results are memoized
// by exact input text.
type Extractor struct {
	annotator nlp.Annotator
	cache     cache.Cache
	cacheTTL  time.Duration
	cfg       model.ExtractConfig
}

// NewExtractor creates a claim extractor. The cache may be nil to disable
// memoization.
func NewExtractor(annotator nlp.Annotator, memo cache.Cache, cacheTTL time.Duration, cfg model.ExtractConfig) *Extractor {
	return &Extractor{
		annotator: annotator,
		cache:     memo,
		cacheTTL:  cacheTTL,
		cfg:       cfg,
	}
}

// Extract returns at most MaxClaims claim sentences, ordered by descending
// character length. Identical input always yields the identical list.
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.Claim, error) {
	key := cache.TextKey(text)
	if e.cache != nil {
		if raw, ok := e.cache.Get(key); ok {
			var claims []model.Claim
			if err := json.Unmarshal(raw, &claims); err == nil {
				return claims, nil
			}
		}
	}

	ann, err := e.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}

	claims := e.selectClaims(ann)

	if e.cache != nil {
		if raw, err := json.Marshal(claims); err == nil {
			_ = e.cache.Set(key, raw, e.cacheTTL)
		}
	}

	return claims, nil
}

// selectClaims applies the keep/discard rules and ranks the survivors
func (e *Extractor) selectClaims(ann *nlp.Annotation) []model.Claim {
	claims := []model.Claim{}

	for _, sent := range ann.Sentences {
		claim := model.NewClaim(sent.Text)

		tokens := claim.TokenCount()
		if tokens < e.cfg.MinTokens {
			continue
		}

		hasEntities := hasFactualEntity(sent.Entities)
		hasNumbers := digitPattern.MatchString(claim.Text)
		hasFactualLanguage := matchesFactualLanguage(claim.Text)

		switch {
		case (hasEntities || hasNumbers) && hasFactualLanguage:
			claims = append(claims, claim)
		case hasEntities && tokens >= e.cfg.LongSentence:
			// Long entity-bearing sentences qualify even without factual phrasing
			claims = append(claims, claim)
		}
	}

	// Longest first; stable so equal-length claims keep document order
	sort.SliceStable(claims, func(i, j int) bool {
		return len(claims[i].Text) > len(claims[j].Text)
	})

	if len(claims) > e.cfg.MaxClaims {
		claims = claims[:e.cfg.MaxClaims]
	}

	return claims
}

func hasFactualEntity(entities []nlp.Entity) bool {
	for _, ent := range entities {
		if factualEntityLabels[ent.Label] {
			return true
		}
	}
	return false
}

func matchesFactualLanguage(text string) bool {
	for _, pattern := range factualPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
