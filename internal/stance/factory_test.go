package stance

import (
	"testing"

	"github.com/truthlens/truthlens/internal/model"
)

func TestNewClassifierProviders(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{"", "", "rules", false},
		{"rules", "", "rules", false},
		{"RULES", "", "rules", false},
		{"openai", "key", "remote", false},
		{"grok", "key", "remote", false},
		{"openai", "", "", true}, // remote providers need a key
		{"magic8ball", "", "", true},
	}

	for _, tt := range tests {
		cfg := model.DefaultConfig().Classifier
		cfg.Provider = tt.provider
		cfg.APIKey = tt.apiKey

		c, err := NewClassifier(cfg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("provider %q: expected an error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("provider %q: unexpected error: %v", tt.provider, err)
			continue
		}
		if c.Name() != tt.wantName {
			t.Errorf("provider %q: expected classifier %q, got %q", tt.provider, tt.wantName, c.Name())
		}
	}
}
