package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/truthlens/truthlens/internal/model"
)

// FactCheckSource queries the Google Fact Check Tools ClaimReview search.
// Without an API key it returns empty results rather than failing.
type FactCheckSource struct {
	apiKey     string
	baseURL    string
	limit      int
	httpClient *http.Client
	userAgent  string
}

// NewFactCheckSource creates a fact-check source adapter
func NewFactCheckSource(cfg model.RetrievalConfig, httpCfg model.HTTPConfig) *FactCheckSource {
	limit := cfg.PerClaimFactChecks
	if limit <= 0 {
		limit = 3
	}

	return &FactCheckSource{
		apiKey:     cfg.FactCheckAPIKey,
		baseURL:    cfg.FactCheckBaseURL,
		limit:      limit,
		httpClient: &http.Client{Timeout: httpCfg.Timeout},
		userAgent:  httpCfg.UserAgent,
	}
}

// Name returns the source name
func (s *FactCheckSource) Name() string { return "fact_check" }

// Kind returns the source kind
func (s *FactCheckSource) Kind() model.SourceKind { return model.SourceFactCheckDB }

// BaseURL returns the configured API endpoint
func (s *FactCheckSource) BaseURL() string { return s.baseURL }

// API response shapes (only the fields we read)
type factCheckResponse struct {
	Claims []factCheckClaim `json:"claims"`
}

type factCheckClaim struct {
	Text        string            `json:"text"`
	ClaimReview []factCheckReview `json:"claimReview"`
}

type factCheckReview struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	TextualRating string `json:"textualRating"`
	Publisher     struct {
		Name string `json:"name"`
	} `json:"publisher"`
}

// Search queries the ClaimReview index for one claim and maps the top
// matches to evidence items. The reviewed claim text becomes the body
// text, since that is what a stance classifier should read.
func (s *FactCheckSource) Search(ctx context.Context, claim model.Claim) ([]model.EvidenceItem, error) {
	if s.apiKey == "" {
		// No credentials configured; the adapter contributes nothing
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", claim.Text)
	params.Set("key", s.apiKey)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fact check search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact check search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed factCheckResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var items []model.EvidenceItem
	for i, fc := range parsed.Claims {
		if i >= s.limit {
			break
		}
		if len(fc.ClaimReview) == 0 {
			continue
		}
		review := fc.ClaimReview[0]

		title := review.Title
		if title == "" {
			title = "Fact Check"
		}
		publisher := review.Publisher.Name
		if publisher == "" {
			publisher = "Unknown"
		}

		items = append(items, model.EvidenceItem{
			Title:     title,
			URL:       review.URL,
			Publisher: publisher,
			BodyText:  fc.Text,
			Rating:    review.TextualRating,
			Kind:      model.SourceFactCheckDB,
		})
	}

	return items, nil
}
