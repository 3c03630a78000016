// Package feed pulls items from RSS/Atom feeds so whole feeds can be
// batch-verified.
package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Item is one feed entry reduced to verifiable text
type Item struct {
	Title string
	Link  string
	Text  string // Title plus description, the text the pipeline verifies
}

// Fetcher parses remote feeds
type Fetcher struct {
	parser *gofeed.Parser
	limit  int
}

// NewFetcher creates a feed fetcher capped at limit items per feed
func NewFetcher(userAgent string, limit int) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	if limit <= 0 {
		limit = 20
	}
	return &Fetcher{parser: parser, limit: limit}
}

// Fetch parses the feed at url and returns its items
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Item, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []Item
	for i, entry := range parsed.Items {
		if i >= f.limit {
			break
		}

		text := strings.TrimSpace(entry.Title)
		if desc := strings.TrimSpace(entry.Description); desc != "" {
			text = strings.TrimSpace(text + ". " + desc)
		}

		items = append(items, Item{
			Title: entry.Title,
			Link:  entry.Link,
			Text:  text,
		})
	}

	return items, nil
}
