package source

import (
	"context"
	"fmt"
	"log"

	"github.com/mmcdole/gofeed"

	"earnings-transcripts/pkg/domain"
	"earnings-transcripts/pkg/extract"
)

// FoolFeed lists transcript candidates from a Motley Fool RSS/Atom feed
// instead of the HTML listing page. It is an alternate discovery mechanism
// for the same source; fetching the transcript pages themselves still goes
// through FoolSource.
type FoolFeed struct {
	feedParser *gofeed.Parser
	feedURL    string
	limit      int
}

// NewFoolFeed creates a feed-backed candidate lister.
func NewFoolFeed(feedURL string, limit int) *FoolFeed {
	return &FoolFeed{
		feedParser: gofeed.NewParser(),
		feedURL:    feedURL,
		limit:      limit,
	}
}

// ListCandidates parses the feed and returns up to the configured limit of
// transcript candidates in feed order. Items whose titles do not parse as
// transcript titles are discarded.
func (f *FoolFeed) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	feed, err := f.feedParser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	candidates := make([]domain.Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if f.limit > 0 && len(candidates) >= f.limit {
			break
		}
		if item.Link == "" || item.Title == "" {
			continue
		}

		info, err := extract.ParseTitle(item.Title)
		if err != nil {
			log.Printf("FoolFeed: skipping %q: %v", item.Title, err)
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Ticker:  info.Ticker,
			Company: info.Company,
			Year:    info.Year,
			Quarter: info.Quarter,
			URL:     item.Link,
			Title:   item.Title,
		})
	}

	log.Printf("FoolFeed: %d candidates from %s", len(candidates), f.feedURL)
	return candidates, nil
}
