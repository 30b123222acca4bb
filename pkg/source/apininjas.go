package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"earnings-transcripts/pkg/domain"
	"earnings-transcripts/pkg/httpclient"
	"earnings-transcripts/pkg/store"
)

// DefaultAPIBaseURL is the API Ninjas v1 endpoint root.
const DefaultAPIBaseURL = "https://api.api-ninjas.com/v1"

// APINinjas lists and fetches transcripts through the API Ninjas
// earnings-transcript endpoints. Authentication is a per-request X-Api-Key
// header; requests share the paced client with everything else in the run.
type APINinjas struct {
	client     *httpclient.HTTPClient
	apiKey     string
	baseURL    string
	tickers    []string
	latestOnly bool
}

// NewAPINinjas creates an API client for the given tickers against the
// public endpoint. In latest-only mode one candidate per ticker is produced
// and its year/quarter resolve from the fetched payload; otherwise the
// search endpoint enumerates every available quarter up front.
func NewAPINinjas(client *httpclient.HTTPClient, apiKey string, tickers []string, latestOnly bool) *APINinjas {
	return NewAPINinjasWithBaseURL(client, apiKey, DefaultAPIBaseURL, tickers, latestOnly)
}

// NewAPINinjasWithBaseURL creates an API client against a specific base URL.
// Tests point this at a local server.
func NewAPINinjasWithBaseURL(client *httpclient.HTTPClient, apiKey, baseURL string, tickers []string, latestOnly bool) *APINinjas {
	return &APINinjas{
		client:     client,
		apiKey:     apiKey,
		baseURL:    baseURL,
		tickers:    tickers,
		latestOnly: latestOnly,
	}
}

// searchEntry is one year/quarter combination reported by the search endpoint.
type searchEntry struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// ListCandidates produces the run's candidate set. A ticker whose search
// call fails is logged and skipped rather than failing the whole listing;
// the next scheduled run picks it up again.
func (a *APINinjas) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	var candidates []domain.Candidate

	for _, ticker := range a.tickers {
		ticker = store.NormalizeTicker(ticker)
		if ticker == "" {
			continue
		}

		if a.latestOnly {
			candidates = append(candidates, domain.Candidate{Ticker: ticker})
			continue
		}

		entries, err := a.searchTranscripts(ctx, ticker)
		if err != nil {
			log.Printf("APINinjas: error fetching transcript list for %s: %v", ticker, err)
			continue
		}
		for _, entry := range entries {
			if entry.Year == 0 || entry.Quarter == 0 {
				continue
			}
			candidates = append(candidates, domain.Candidate{
				Ticker:  ticker,
				Year:    entry.Year,
				Quarter: entry.Quarter,
			})
		}
	}

	log.Printf("APINinjas: %d candidates across %d tickers", len(candidates), len(a.tickers))
	return candidates, nil
}

// FetchContent retrieves one transcript payload as raw JSON. For a
// latest-only candidate the year/quarter parameters are omitted and the API
// returns the most recent transcript.
func (a *APINinjas) FetchContent(ctx context.Context, c domain.Candidate) (string, error) {
	params := url.Values{}
	params.Set("ticker", c.Ticker)
	if c.HasKey() {
		params.Set("year", strconv.Itoa(c.Year))
		params.Set("quarter", strconv.Itoa(c.Quarter))
	}

	body, err := a.get(ctx, "/earningstranscript", params)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// searchTranscripts asks the search endpoint which year/quarter
// combinations exist for a ticker.
func (a *APINinjas) searchTranscripts(ctx context.Context, ticker string) ([]searchEntry, error) {
	params := url.Values{}
	params.Set("ticker", ticker)

	body, err := a.get(ctx, "/earningstranscriptsearch", params)
	if err != nil {
		return nil, err
	}

	var entries []searchEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return entries, nil
}

// get performs one authenticated, paced GET against the API.
func (a *APINinjas) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := a.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", a.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
