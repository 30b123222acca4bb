package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"earnings-transcripts/pkg/domain"
	"earnings-transcripts/pkg/extract"
	"earnings-transcripts/pkg/httpclient"
)

// DefaultFoolListingURL is the Motley Fool earnings-call transcript listing.
const DefaultFoolListingURL = "https://www.fool.com/earnings-call-transcripts/"

// transcriptPathMarker identifies transcript links on the listing page.
const transcriptPathMarker = "/earnings/call-transcripts/"

// FoolSource lists transcript candidates from the Motley Fool listing page
// and fetches individual transcript pages. All outbound calls go through one
// shared client so the pacing rule spans the whole run.
type FoolSource struct {
	client     *httpclient.HTTPClient
	listingURL string
	limit      int
}

// NewFoolSource creates a source reading from the given listing URL and
// returning at most limit candidates per run.
func NewFoolSource(client *httpclient.HTTPClient, listingURL string, limit int) *FoolSource {
	if listingURL == "" {
		listingURL = DefaultFoolListingURL
	}
	return &FoolSource{
		client:     client,
		listingURL: listingURL,
		limit:      limit,
	}
}

// ListCandidates fetches the listing page once and returns up to the
// configured limit of transcript candidates in page order. Links whose
// titles do not parse as "Company (TICKER) Q<d> <year>" are discarded here;
// they can never resolve an identity and would only waste a page fetch.
func (f *FoolSource) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	html, err := fetchPage(ctx, f.client, f.listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}

	links, err := extractTranscriptLinks(html, f.listingURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(links))
	for _, link := range links {
		if f.limit > 0 && len(candidates) >= f.limit {
			break
		}

		info, err := extract.ParseTitle(link.title)
		if err != nil {
			log.Printf("FoolSource: skipping %q: %v", link.title, err)
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Ticker:  info.Ticker,
			Company: info.Company,
			Year:    info.Year,
			Quarter: info.Quarter,
			URL:     link.href,
			Title:   link.title,
		})
	}

	log.Printf("FoolSource: %d candidates from %s", len(candidates), f.listingURL)
	return candidates, nil
}

// FetchContent retrieves one transcript page as raw HTML.
func (f *FoolSource) FetchContent(ctx context.Context, c domain.Candidate) (string, error) {
	if c.URL == "" {
		return "", fmt.Errorf("candidate %s has no URL", c.ID())
	}
	return fetchPage(ctx, f.client, c.URL)
}

type listingLink struct {
	href  string
	title string
}

// extractTranscriptLinks pulls transcript links out of the listing HTML,
// resolving relative hrefs against the listing URL and de-duplicating
// repeated links while preserving page order.
func extractTranscriptLinks(html, baseURL string) ([]listingLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	seen := make(map[string]bool)
	var links []listingLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || !strings.Contains(href, transcriptPathMarker) {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		abs := resolved.String()
		if seen[abs] {
			return
		}

		title := strings.TrimSpace(sel.Text())
		if title == "" {
			title, _ = sel.Attr("title")
			title = strings.TrimSpace(title)
		}
		if title == "" {
			return
		}

		seen[abs] = true
		links = append(links, listingLink{href: abs, title: title})
	})

	return links, nil
}

// fetchPage performs one paced GET and returns the response body as a string.
func fetchPage(ctx context.Context, client *httpclient.HTTPClient, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
