package model

import "strings"

// Claim represents a single verifiable factual sentence extracted from input text
type Claim struct {
	Text string `json:"text"` // The claim sentence itself, trimmed
}

// NewClaim creates a claim from raw sentence text, trimming surrounding whitespace
func NewClaim(text string) Claim {
	return Claim{Text: strings.TrimSpace(text)}
}

// TokenCount returns the number of whitespace-separated tokens in the claim
func (c Claim) TokenCount() int {
	return len(strings.Fields(c.Text))
}
