package extract

import (
	"errors"
	"testing"

	"earnings-transcripts/pkg/domain"
)

func TestAPINinjasExtractor_MapsPayloadFields(t *testing.T) {
	raw := `{"ticker":"MSFT","year":2024,"quarter":3,"transcript":"Good afternoon...","date":"2024-07-30","participants":["Satya Nadella","Amy Hood"]}`

	rec, err := NewAPINinjasExtractor().Extract(domain.Candidate{Ticker: "MSFT"}, raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rec.Ticker != "MSFT" || rec.Year != 2024 || rec.Quarter != 3 {
		t.Errorf("Identity fields wrong: %s %d Q%d", rec.Ticker, rec.Year, rec.Quarter)
	}
	if rec.Date != "2024-07-30" {
		t.Errorf("Expected date 2024-07-30, got %q", rec.Date)
	}
	if rec.Transcript != "Good afternoon..." {
		t.Errorf("Transcript not mapped: %q", rec.Transcript)
	}
	if len(rec.Participants) != 2 || rec.Participants[0] != "Satya Nadella" {
		t.Errorf("Participants not mapped: %v", rec.Participants)
	}
	if rec.Source != domain.SourceAPINinjas {
		t.Errorf("Expected source %q, got %q", domain.SourceAPINinjas, rec.Source)
	}
	if rec.FetchedAt == "" {
		t.Error("Expected fetched_at to be set")
	}
}

func TestAPINinjasExtractor_FallsBackToCandidateIdentity(t *testing.T) {
	// The transcript endpoint omits ticker/year/quarter when they were part
	// of the query; the candidate from the search endpoint fills them in.
	raw := `{"transcript":"...","date":"2024-04-25"}`

	c := domain.Candidate{Ticker: "aapl", Year: 2024, Quarter: 2}
	rec, err := NewAPINinjasExtractor().Extract(c, raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if rec.Ticker != "AAPL" || rec.Year != 2024 || rec.Quarter != 2 {
		t.Errorf("Candidate fallback wrong: %s %d Q%d", rec.Ticker, rec.Year, rec.Quarter)
	}
}

func TestAPINinjasExtractor_ErrorBody(t *testing.T) {
	raw := `{"error":"No transcript found for this ticker."}`

	_, err := NewAPINinjasExtractor().Extract(domain.Candidate{Ticker: "XYZ"}, raw)
	if !errors.Is(err, ErrAPIError) {
		t.Fatalf("Expected ErrAPIError, got %v", err)
	}
}

func TestAPINinjasExtractor_MissingIdentity(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		c    domain.Candidate
	}{
		{"no ticker anywhere", `{"year":2024,"quarter":3,"transcript":"..."}`, domain.Candidate{}},
		{"no year", `{"ticker":"MSFT","quarter":3,"transcript":"..."}`, domain.Candidate{Ticker: "MSFT"}},
		{"quarter out of range", `{"ticker":"MSFT","year":2024,"quarter":5,"transcript":"..."}`, domain.Candidate{}},
		{"year not 4 digits", `{"ticker":"MSFT","year":24,"quarter":3,"transcript":"..."}`, domain.Candidate{}},
	}

	for _, tc := range cases {
		if _, err := NewAPINinjasExtractor().Extract(tc.c, tc.raw); !errors.Is(err, ErrMissingIdentity) {
			t.Errorf("%s: expected ErrMissingIdentity, got %v", tc.name, err)
		}
	}
}

func TestAPINinjasExtractor_MalformedJSON(t *testing.T) {
	if _, err := NewAPINinjasExtractor().Extract(domain.Candidate{Ticker: "MSFT"}, "<html>rate limited</html>"); err == nil {
		t.Fatal("Expected error for malformed JSON, got nil")
	}
}
