package evidence

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/truthlens/truthlens/internal/model"
)

func factCheckConfig(apiKey, baseURL string) model.RetrievalConfig {
	cfg := model.DefaultConfig().Retrieval
	cfg.FactCheckAPIKey = apiKey
	cfg.FactCheckBaseURL = baseURL
	return cfg
}

func TestFactCheckSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected api key %q, got %q", "test-key", got)
		}
		if got := r.URL.Query().Get("query"); got == "" {
			t.Error("expected a query parameter")
		}
		fmt.Fprint(w, `{
			"claims": [
				{
					"text": "Vaccines cause autism",
					"claimReview": [
						{
							"title": "No link found",
							"url": "https://factcheck.org/review/1",
							"textualRating": "False",
							"publisher": {"name": "FactCheck.org"}
						}
					]
				},
				{
					"text": "Orphan claim with no review",
					"claimReview": []
				},
				{
					"text": "Second reviewed claim",
					"claimReview": [
						{"url": "https://snopes.com/review/2"}
					]
				}
			]
		}`)
	}))
	defer server.Close()

	src := NewFactCheckSource(factCheckConfig("test-key", server.URL), model.DefaultConfig().HTTP)

	items, err := src.Search(context.Background(), model.NewClaim("vaccines cause autism"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "No link found" {
		t.Errorf("expected title %q, got %q", "No link found", first.Title)
	}
	if first.URL != "https://factcheck.org/review/1" {
		t.Errorf("unexpected URL %q", first.URL)
	}
	if first.Publisher != "FactCheck.org" {
		t.Errorf("unexpected publisher %q", first.Publisher)
	}
	if first.BodyText != "Vaccines cause autism" {
		t.Errorf("expected reviewed claim text as body, got %q", first.BodyText)
	}
	if first.Rating != "False" {
		t.Errorf("unexpected rating %q", first.Rating)
	}
	if first.Kind != model.SourceFactCheckDB {
		t.Errorf("unexpected kind %q", first.Kind)
	}

	// Missing title and publisher fall back to placeholders
	second := items[1]
	if second.Title != "Fact Check" {
		t.Errorf("expected fallback title, got %q", second.Title)
	}
	if second.Publisher != "Unknown" {
		t.Errorf("expected fallback publisher, got %q", second.Publisher)
	}
}

func TestFactCheckSearchLimitsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"claims": [`+
			`{"text": "a", "claimReview": [{"url": "https://x.test/1"}]},`+
			`{"text": "b", "claimReview": [{"url": "https://x.test/2"}]},`+
			`{"text": "c", "claimReview": [{"url": "https://x.test/3"}]},`+
			`{"text": "d", "claimReview": [{"url": "https://x.test/4"}]}`+
			`]}`)
	}))
	defer server.Close()

	src := NewFactCheckSource(factCheckConfig("k", server.URL), model.DefaultConfig().HTTP)

	items, err := src.Search(context.Background(), model.NewClaim("anything"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
}

func TestFactCheckSearchWithoutAPIKey(t *testing.T) {
	src := NewFactCheckSource(factCheckConfig("", "https://unused.test"), model.DefaultConfig().HTTP)

	items, err := src.Search(context.Background(), model.NewClaim("anything"))
	if err != nil {
		t.Fatalf("expected no error without credentials, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %v", items)
	}
}

func TestFactCheckSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := NewFactCheckSource(factCheckConfig("k", server.URL), model.DefaultConfig().HTTP)

	if _, err := src.Search(context.Background(), model.NewClaim("anything")); err == nil {
		t.Error("expected an error on server failure")
	}
}
