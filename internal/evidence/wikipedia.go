package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/truthlens/truthlens/internal/model"
)

// WikipediaSource searches the MediaWiki API for pages relevant to a
// claim and fetches an introductory extract for each match.
type WikipediaSource struct {
	baseURL      string
	limit        int
	extractChars int
	httpClient   *http.Client
	userAgent    string
}

// NewWikipediaSource creates an encyclopedia source adapter
func NewWikipediaSource(cfg model.RetrievalConfig, httpCfg model.HTTPConfig) *WikipediaSource {
	limit := cfg.PerClaimPages
	if limit <= 0 {
		limit = 2
	}
	extractChars := cfg.MaxExtractChars
	if extractChars <= 0 {
		extractChars = 500
	}

	return &WikipediaSource{
		baseURL:      cfg.WikipediaBaseURL,
		limit:        limit,
		extractChars: extractChars,
		httpClient:   &http.Client{Timeout: httpCfg.Timeout},
		userAgent:    httpCfg.UserAgent,
	}
}

// Name returns the source name
func (s *WikipediaSource) Name() string { return "wikipedia" }

// Kind returns the source kind
func (s *WikipediaSource) Kind() model.SourceKind { return model.SourceEncyclopedia }

// BaseURL returns the configured API endpoint
func (s *WikipediaSource) BaseURL() string { return s.baseURL }

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			PageID int    `json:"pageid"`
			Title  string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
		} `json:"pages"`
	} `json:"query"`
}

// Search finds the top pages for a claim, then fetches each page's intro
// extract, truncated to the configured length.
func (s *WikipediaSource) Search(ctx context.Context, claim model.Claim) ([]model.EvidenceItem, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", claim.Text)
	params.Set("format", "json")
	params.Set("srlimit", "3")

	var search wikiSearchResponse
	if err := s.get(ctx, params, &search); err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}

	var items []model.EvidenceItem
	for i, hit := range search.Query.Search {
		if i >= s.limit {
			break
		}

		item, err := s.fetchExtract(ctx, hit.PageID, hit.Title)
		if err != nil {
			return nil, fmt.Errorf("wikipedia extract %q: %w", hit.Title, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// fetchExtract retrieves the plain-text intro of a page
func (s *WikipediaSource) fetchExtract(ctx context.Context, pageID int, title string) (model.EvidenceItem, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|info")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("inprop", "url")
	params.Set("pageids", strconv.Itoa(pageID))
	params.Set("format", "json")

	var extract wikiExtractResponse
	if err := s.get(ctx, params, &extract); err != nil {
		return model.EvidenceItem{}, err
	}

	page := extract.Query.Pages[strconv.Itoa(pageID)]

	pageURL := page.FullURL
	if pageURL == "" {
		pageURL = "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_")
	}

	body := page.Extract
	if len(body) > s.extractChars {
		body = body[:s.extractChars]
	}

	return model.EvidenceItem{
		Title:     "Wikipedia: " + title,
		URL:       pageURL,
		Publisher: "Wikipedia",
		BodyText:  body,
		Kind:      model.SourceEncyclopedia,
	}, nil
}

func (s *WikipediaSource) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
