package stance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/truthlens/truthlens/internal/model"
)

// classifyPromptTemplate is the fixed instruction contract sent to the
// remote model. The response must be a single JSON object.
const classifyPromptTemplate = `You are a fact-checking AI assistant. Your task is to determine if the evidence SUPPORTS, REFUTES, or is NEUTRAL towards the given claim.

Claim: %s

Evidence: %s

Analyze the relationship between the claim and evidence. Respond with ONLY ONE of these labels:
- SUPPORT: If the evidence clearly supports or confirms the claim
- REFUTE: If the evidence contradicts or disproves the claim
- NEUTRAL: If the evidence is unrelated or doesn't clearly support/refute the claim

Response format (JSON):
{"stance": "SUPPORT|REFUTE|NEUTRAL", "confidence": 0.0-1.0, "reasoning": "brief explanation"}

Respond only with valid JSON, no additional text.`

// RemoteClassifier calls an OpenAI-compatible chat completion endpoint.
// A custom BaseURL reaches any compatible backend (xAI, Ollama's
// OpenAI-compatible route, a proxy).
type RemoteClassifier struct {
	client *openai.Client
	cfg    model.ClassifierConfig
}

// NewRemoteClassifier creates a remote classifier
func NewRemoteClassifier(cfg model.ClassifierConfig) (*RemoteClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("classifier API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &RemoteClassifier{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the classifier name
func (c *RemoteClassifier) Name() string { return "remote" }

// Classify sends one (claim, evidence) pair to the remote model and
// parses its structured verdict
func (c *RemoteClassifier) Classify(ctx context.Context, claim, evidenceText string) (*Judgment, error) {
	chatModel := c.cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := c.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 150
	}

	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := fmt.Sprintf(classifyPromptTemplate, claim, evidenceText)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a precise fact-checking assistant that outputs only valid JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3, // Low temperature for consistent verdicts
	})
	if err != nil {
		return nil, fmt.Errorf("classifier API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from classifier")
	}

	return parseJudgment(resp.Choices[0].Message.Content), nil
}

// rawJudgment tolerates loosely-typed fields in model output
type rawJudgment struct {
	Stance     string   `json:"stance"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// parseJudgment extracts a judgment from model output. Malformed output
// never fails: it degrades to a text scan for the stance label with the
// default confidence.
func parseJudgment(content string) *Judgment {
	content = stripCodeFence(strings.TrimSpace(content))

	var raw rawJudgment
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		confidence := DefaultConfidence
		if raw.Confidence != nil {
			confidence = ClampConfidence(*raw.Confidence)
		}
		reasoning := raw.Reasoning
		if reasoning == "" {
			reasoning = "Analysis completed"
		}
		return &Judgment{
			Stance:     NormalizeStance(raw.Stance),
			Confidence: confidence,
			Reasoning:  reasoning,
		}
	}

	// Not JSON; scan the text for a label
	upper := strings.ToUpper(content)
	stance := model.StanceNeutral
	switch {
	case strings.Contains(upper, "SUPPORT") && !strings.Contains(upper, "NOT"):
		stance = model.StanceSupport
	case strings.Contains(upper, "REFUTE") || strings.Contains(upper, "CONTRADICT"):
		stance = model.StanceRefute
	}

	return &Judgment{
		Stance:     stance,
		Confidence: DefaultConfidence,
		Reasoning:  "Extracted from text analysis",
	}
}

// stripCodeFence removes a surrounding markdown code block, if any
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	parts := strings.SplitN(content, "```", 3)
	if len(parts) < 2 {
		return content
	}

	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}
