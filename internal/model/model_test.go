package model

import "testing"

func TestNewClaim(t *testing.T) {
	c := NewClaim("  The sky is blue.  ")
	if c.Text != "The sky is blue." {
		t.Errorf("expected trimmed text, got %q", c.Text)
	}
}

func TestTokenCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"a few  spaced   words", 4},
		{"The sky is blue.", 4},
	}

	for _, tt := range tests {
		if got := NewClaim(tt.text).TokenCount(); got != tt.want {
			t.Errorf("TokenCount(%q) = %d, expected %d", tt.text, got, tt.want)
		}
	}
}

func TestStanceValid(t *testing.T) {
	for _, s := range []Stance{StanceSupport, StanceRefute, StanceNeutral} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []Stance{"", "support", "MAYBE"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestUsableText(t *testing.T) {
	withBody := EvidenceItem{Title: "title", BodyText: "body"}
	if got := withBody.UsableText(); got != "body" {
		t.Errorf("expected body text, got %q", got)
	}

	titleOnly := EvidenceItem{Title: "title"}
	if got := titleOnly.UsableText(); got != "title" {
		t.Errorf("expected title fallback, got %q", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extract.MaxClaims != 5 {
		t.Errorf("unexpected claim cap %d", cfg.Extract.MaxClaims)
	}
	if cfg.Extract.MinInputChars != 10 {
		t.Errorf("unexpected input minimum %d", cfg.Extract.MinInputChars)
	}
	if cfg.Scoring.TrueThreshold <= cfg.Scoring.UnknownThreshold {
		t.Error("verdict thresholds out of order")
	}
	if len(cfg.Retrieval.TrustedDomains) == 0 {
		t.Error("expected a built-in trusted domain table")
	}
}
