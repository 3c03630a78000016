package stance

import (
	"context"
	"regexp"
	"strings"

	"github.com/truthlens/truthlens/internal/model"
)

// RuleClassifier is a deterministic local classifier built on lexical
// overlap and polarity keywords. It needs no credentials or network and
// is the default provider: useful offline, and the substitution point
// for tests.
type RuleClassifier struct{}

// NewRuleClassifier creates a rule-based classifier
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Name returns the classifier name
func (c *RuleClassifier) Name() string { return "rules" }

var (
	refutePattern  = regexp.MustCompile(`(?i)\b(false|hoax|debunked|myth|misleading|incorrect|untrue|denies|denied|contradicts?|disproved?|no evidence)\b`)
	supportPattern = regexp.MustCompile(`(?i)\b(confirms?|confirmed|supports?|verified|true|accurate|corroborates?|consistent with|shows?|demonstrates?)\b`)
	wordPattern    = regexp.MustCompile(`[a-z0-9]+`)
)

// stop words excluded from overlap scoring
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "to": true, "in": true, "on": true, "for": true,
	"is": true, "are": true, "was": true, "were": true, "that": true,
	"this": true, "with": true, "by": true, "it": true, "as": true,
	"has": true, "have": true, "had": true, "be": true, "been": true,
}

// Classify scores the pair deterministically: polarity keywords in the
// evidence decide the direction, content-word overlap with the claim
// decides whether the evidence is about the claim at all.
func (c *RuleClassifier) Classify(ctx context.Context, claim, evidenceText string) (*Judgment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	overlap := contentOverlap(claim, evidenceText)
	if overlap < 0.2 {
		// Evidence barely mentions the claim's subject matter
		return &Judgment{
			Stance:     model.StanceNeutral,
			Confidence: 0.6,
			Reasoning:  "evidence shares little content with the claim",
		}, nil
	}

	refutes := refutePattern.MatchString(evidenceText)
	supports := supportPattern.MatchString(evidenceText)

	switch {
	case refutes && !supports:
		return &Judgment{
			Stance:     model.StanceRefute,
			Confidence: 0.7,
			Reasoning:  "refuting language found in related evidence",
		}, nil
	case supports && !refutes:
		return &Judgment{
			Stance:     model.StanceSupport,
			Confidence: 0.7,
			Reasoning:  "supporting language found in related evidence",
		}, nil
	default:
		return &Judgment{
			Stance:     model.StanceNeutral,
			Confidence: 0.6,
			Reasoning:  "related evidence without clear polarity",
		}, nil
	}
}

// contentOverlap is the fraction of the claim's content words that also
// appear in the evidence
func contentOverlap(claim, evidence string) float64 {
	claimWords := contentWords(claim)
	if len(claimWords) == 0 {
		return 0
	}

	evidenceWords := make(map[string]bool)
	for _, w := range contentWords(evidence) {
		evidenceWords[w] = true
	}

	matched := 0
	for _, w := range claimWords {
		if evidenceWords[w] {
			matched++
		}
	}

	return float64(matched) / float64(len(claimWords))
}

func contentWords(text string) []string {
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 2 && !stopWords[w] {
			words = append(words, w)
		}
	}
	return words
}
