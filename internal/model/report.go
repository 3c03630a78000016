package model

import "time"

// Stance is the classified relationship between a claim and one evidence item
type Stance string

const (
	StanceSupport Stance = "SUPPORT"
	StanceRefute  Stance = "REFUTE"
	StanceNeutral Stance = "NEUTRAL"
)

// Valid reports whether s is one of the three defined labels
func (s Stance) Valid() bool {
	switch s {
	case StanceSupport, StanceRefute, StanceNeutral:
		return true
	}
	return false
}

// StanceResult is one classification of a (claim, evidence) pair.
// EvidenceURL is empty for synthesized placeholders produced when no
// evidence pair qualified for classification.
type StanceResult struct {
	Claim       string  `json:"claim"`
	EvidenceURL string  `json:"evidence_url,omitempty"`
	Stance      Stance  `json:"stance"`
	Confidence  float64 `json:"confidence"` // Always within [0,1]
}

// Verdict is the final three-way human-facing label
type Verdict string

const (
	VerdictLikelyTrue    Verdict = "Likely True"
	VerdictLikelyFalse   Verdict = "Likely False"
	VerdictNotEnoughInfo Verdict = "Not Enough Information"
)

// ScoreReport is the terminal artifact of the verification pipeline
type ScoreReport struct {
	OverallScore int         `json:"overall_score"` // 0-100
	Verdict      Verdict     `json:"verdict"`
	Explanation  string      `json:"explanation"`
	Sources      []SourceRef `json:"sources"` // Unique by URL, at most 5
}

// Report wraps the score report with the intermediate pipeline artifacts
// for rendering and history. The score report alone is the caller contract;
// everything else is transparency.
type Report struct {
	Input      string         `json:"input,omitempty"`   // Original text (may be elided for large inputs)
	Subject    string         `json:"subject,omitempty"` // Page title or label when verifying a URL/feed item
	VerifiedAt time.Time      `json:"verified_at"`
	Claims     []Claim        `json:"claims"`
	Evidence   []EvidenceItem `json:"evidence"`
	Stances    []StanceResult `json:"stances"`
	Score      ScoreReport    `json:"score"`
}
