// Package stance classifies the relationship between claims and evidence.
package stance

import (
	"context"
	"strings"

	"github.com/truthlens/truthlens/internal/model"
)

// Default confidences used when the classifier's own number is missing or
// the call failed outright.
const (
	DefaultConfidence  = 0.7 // Judgment arrived but carried no usable confidence
	FallbackConfidence = 0.5 // Classification was impossible; neutral placeholder
)

// Judgment is one classification of a (claim, evidence) pair as returned
// by a classifier, before validation.
type Judgment struct {
	Stance     model.Stance `json:"stance"`
	Confidence float64      `json:"confidence"`
	Reasoning  string       `json:"reasoning,omitempty"`
}

// Classifier determines the stance of evidence text toward a claim.
// Implementations may be rule-based, local models, or remote services;
// the verifier treats any returned error as a recoverable degradation.
type Classifier interface {
	// Name identifies the classifier in logs and reports
	Name() string

	// Classify returns the stance of the evidence toward the claim
	Classify(ctx context.Context, claim, evidenceText string) (*Judgment, error)
}

// NormalizeStance coerces an arbitrary label to one of the three defined
// stances; anything unrecognized becomes NEUTRAL.
func NormalizeStance(raw string) model.Stance {
	s := model.Stance(strings.ToUpper(strings.TrimSpace(raw)))
	if s.Valid() {
		return s
	}
	return model.StanceNeutral
}

// ClampConfidence bounds a confidence to [0,1]
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
