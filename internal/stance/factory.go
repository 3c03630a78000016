package stance

import (
	"fmt"
	"strings"

	"github.com/truthlens/truthlens/internal/model"
)

// NewClassifier creates a classifier for the configured provider
func NewClassifier(cfg model.ClassifierConfig) (Classifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "rules":
		return NewRuleClassifier(), nil

	case "openai", "grok", "remote":
		return NewRemoteClassifier(cfg)

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: rules, openai, grok)", cfg.Provider)
	}
}
