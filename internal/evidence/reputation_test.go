package evidence

import (
	"testing"

	"github.com/truthlens/truthlens/internal/model"
)

func TestReputationLookup(t *testing.T) {
	rep := NewReputation(model.DefaultTrustedDomains())

	tests := []struct {
		url      string
		wantName string
		wantOK   bool
	}{
		{"https://www.who.int/news/item/some-guidance", "WHO", true},
		{"https://www.cdc.gov/flu/index.htm", "CDC", true},
		{"HTTPS://WWW.REUTERS.COM/article", "Reuters", true},
		{"https://en.wikipedia.org/wiki/Influenza", "", false},
		{"https://example.com/who-knows", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		name, ok := rep.Lookup(tt.url)
		if ok != tt.wantOK || name != tt.wantName {
			t.Errorf("Lookup(%q) = (%q, %v), expected (%q, %v)",
				tt.url, name, ok, tt.wantName, tt.wantOK)
		}
	}
}

func TestReputationLookupDeterministic(t *testing.T) {
	// Two overlapping substrings; the sorted table means the same one
	// always wins
	rep := NewReputation(map[string]string{
		"news.example.com": "Example News",
		"example.com":      "Example",
	})

	for i := 0; i < 10; i++ {
		name, ok := rep.Lookup("https://news.example.com/story")
		if !ok || name != "Example" {
			t.Fatalf("Lookup returned (%q, %v), expected stable (%q, true)", name, ok, "Example")
		}
	}
}

func TestReputationEmptyTable(t *testing.T) {
	rep := NewReputation(nil)
	if name, ok := rep.Lookup("https://who.int/x"); ok {
		t.Errorf("expected no match from empty table, got %q", name)
	}
}
