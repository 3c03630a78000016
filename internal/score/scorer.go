// Package score aggregates stance results into a calibrated score,
// verdict, and explanation. Everything here is a pure function of its
// inputs: no I/O, no randomness.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/truthlens/truthlens/internal/evidence"
	"github.com/truthlens/truthlens/internal/model"
)

const insufficientEvidenceMessage = "Unable to verify claims due to insufficient evidence."

// Scorer computes the final score report from stance results and the
// evidence set
type Scorer struct {
	cfg        model.ScoringConfig
	reputation *evidence.Reputation
}

// NewScorer creates a scorer
func NewScorer(cfg model.ScoringConfig, reputation *evidence.Reputation) *Scorer {
	if cfg.MaxReportSources <= 0 {
		cfg.MaxReportSources = 5
	}
	return &Scorer{cfg: cfg, reputation: reputation}
}

// Compute aggregates stance results into a ScoreReport. Identical inputs
// always produce an identical report.
func (s *Scorer) Compute(results []model.StanceResult, items []model.EvidenceItem) model.ScoreReport {
	if len(results) == 0 {
		return model.ScoreReport{
			OverallScore: 50,
			Verdict:      model.VerdictNotEnoughInfo,
			Explanation:  insufficientEvidenceMessage,
			Sources:      []model.SourceRef{},
		}
	}

	// Confidence-weighted stance contributions
	var total float64
	for _, r := range results {
		var base float64
		switch r.Stance {
		case model.StanceSupport:
			base = s.cfg.StanceMagnitude
		case model.StanceRefute:
			base = -s.cfg.StanceMagnitude
		}
		total += base * r.Confidence
	}
	meanScore := total / float64(len(results))

	// Reputation bonus, capped
	var bonus float64
	var trusted []string
	for _, item := range items {
		if name, ok := s.reputation.Lookup(item.URL); ok {
			bonus += s.cfg.ReputationBonus
			trusted = append(trusted, name)
		}
	}
	if bonus > s.cfg.ReputationCap {
		bonus = s.cfg.ReputationCap
	}

	finalScore := clamp(int(math.Round(50+meanScore+bonus)), 0, 100)

	var verdict model.Verdict
	switch {
	case finalScore >= s.cfg.TrueThreshold:
		verdict = model.VerdictLikelyTrue
	case finalScore >= s.cfg.UnknownThreshold:
		verdict = model.VerdictNotEnoughInfo
	default:
		verdict = model.VerdictLikelyFalse
	}

	var supportCount, refuteCount, neutralCount int
	for _, r := range results {
		switch r.Stance {
		case model.StanceSupport:
			supportCount++
		case model.StanceRefute:
			refuteCount++
		default:
			neutralCount++
		}
	}

	return model.ScoreReport{
		OverallScore: finalScore,
		Verdict:      verdict,
		Explanation:  explain(verdict, supportCount, refuteCount, neutralCount, trusted, len(items)),
		Sources:      s.sources(items),
	}
}

// sources projects the first MaxReportSources unique-by-URL items
func (s *Scorer) sources(items []model.EvidenceItem) []model.SourceRef {
	refs := []model.SourceRef{}
	seen := make(map[string]bool)
	for _, item := range items {
		if len(refs) >= s.cfg.MaxReportSources {
			break
		}
		if item.URL == "" || seen[item.URL] {
			continue
		}
		seen[item.URL] = true

		title := item.Title
		if title == "" {
			title = "Source"
		}
		refs = append(refs, model.SourceRef{Title: title, URL: item.URL})
	}
	return refs
}

// explain selects a deterministic explanation template from the verdict
// and the stance counts, naming up to three distinct trusted publishers
func explain(verdict model.Verdict, supportCount, refuteCount, neutralCount int, trusted []string, totalSources int) string {
	sourceMention := ""
	if names := distinct(trusted, 3); len(names) > 0 {
		sourceMention = " including " + strings.Join(names, ", ")
	}

	switch verdict {
	case model.VerdictLikelyTrue:
		if supportCount > refuteCount {
			return fmt.Sprintf(
				"Claim is supported by %d independent source%s%s. Evidence strongly corroborates the main assertions.",
				supportCount, plural(supportCount), sourceMention)
		}
		return fmt.Sprintf(
			"Analysis of %d sources%s indicates the claim is likely accurate based on available evidence.",
			totalSources, sourceMention)

	case model.VerdictLikelyFalse:
		if refuteCount > supportCount {
			return fmt.Sprintf(
				"Claim is contradicted by %d authoritative source%s%s. Evidence indicates potential misinformation.",
				refuteCount, plural(refuteCount), sourceMention)
		}
		return fmt.Sprintf(
			"Analysis of %d sources%s suggests the claim is likely inaccurate or misleading.",
			totalSources, sourceMention)

	default:
		if neutralCount > supportCount+refuteCount {
			return fmt.Sprintf(
				"Insufficient evidence to verify claim. Reviewed %d sources%s but found no clear consensus.",
				totalSources, sourceMention)
		}
		if supportCount == refuteCount {
			return fmt.Sprintf(
				"Mixed evidence found with %d supporting and %d contradicting sources%s. Additional verification recommended.",
				supportCount, refuteCount, sourceMention)
		}
		return fmt.Sprintf(
			"Available evidence from %d sources%s is inconclusive. Further investigation needed for confident assessment.",
			totalSources, sourceMention)
	}
}

// distinct returns the first n unique names in encounter order
func distinct(names []string, n int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
		if len(out) == n {
			break
		}
	}
	return out
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
