package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/truthlens/truthlens/internal/model"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
	<title>Outbreak declared over</title>
	<style>body { color: red; }</style>
	<script>console.log("tracking");</script>
</head>
<body>
	<nav>Home | About | Contact</nav>
	<h1>Outbreak declared over</h1>
	<p>The organization confirmed the outbreak ended in 2023.</p>
	<noscript>Enable JavaScript</noscript>
	<footer>Copyright 2023</footer>
</body>
</html>`

func newPageServer(handler http.HandlerFunc) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/", handler)
	return httptest.NewServer(mux)
}

func TestFetchExtractsVisibleText(t *testing.T) {
	server := newPageServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPage)
	})
	defer server.Close()

	f := NewFetcher(model.DefaultConfig().HTTP)

	page, err := f.Fetch(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Title != "Outbreak declared over" {
		t.Errorf("unexpected title %q", page.Title)
	}
	if !strings.Contains(page.Text, "confirmed the outbreak ended in 2023") {
		t.Errorf("expected body text, got %q", page.Text)
	}
	for _, hidden := range []string{"tracking", "color: red", "Enable JavaScript", "Home | About", "Copyright"} {
		if strings.Contains(page.Text, hidden) {
			t.Errorf("expected %q to be excluded, got %q", hidden, page.Text)
		}
	}
}

func TestFetchRespectsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPage)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewFetcher(model.DefaultConfig().HTTP)

	if _, err := f.Fetch(context.Background(), server.URL+"/private/page"); err == nil {
		t.Error("expected an error for a robots-disallowed path")
	}
	if _, err := f.Fetch(context.Background(), server.URL+"/public/page"); err != nil {
		t.Errorf("unexpected error for an allowed path: %v", err)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	server := newPageServer(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	defer server.Close()

	f := NewFetcher(model.DefaultConfig().HTTP)

	if _, err := f.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Error("expected an error for a 404 response")
	}
}

func TestFetchLimitsBody(t *testing.T) {
	server := newPageServer(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>")
		fmt.Fprint(w, strings.Repeat("word ", 100_000))
		fmt.Fprint(w, "</p></body></html>")
	})
	defer server.Close()

	cfg := model.DefaultConfig().HTTP
	cfg.MaxBodyBytes = 1024
	f := NewFetcher(cfg)

	page, err := f.Fetch(context.Background(), server.URL+"/big")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Text) > 2048 {
		t.Errorf("expected text bounded by the byte limit, got %d bytes", len(page.Text))
	}
}
