package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"earnings-transcripts/pkg/domain"
)

var (
	// ErrAPIError is returned when the API answers with an error body
	// instead of a transcript, e.g. no transcript exists for the quarter.
	ErrAPIError = errors.New("api returned error")

	// ErrMissingIdentity is returned when neither the payload nor the
	// candidate resolves ticker, year and quarter.
	ErrMissingIdentity = errors.New("payload missing ticker, year or quarter")
)

// apiPayload mirrors the API Ninjas earnings-transcript response. The API
// reports failures as a 200 with an "error" field, so that is mapped too.
type apiPayload struct {
	Ticker       string   `json:"ticker"`
	Year         int      `json:"year"`
	Quarter      int      `json:"quarter"`
	Date         string   `json:"date"`
	Transcript   string   `json:"transcript"`
	Participants []string `json:"participants"`
	Error        string   `json:"error"`
}

// APINinjasExtractor maps an API Ninjas JSON payload onto a
// TranscriptRecord. No text-splitting heuristics are needed here; the
// upstream already returns structured fields.
type APINinjasExtractor struct {
	now func() time.Time
}

// NewAPINinjasExtractor creates an extractor for API Ninjas payloads.
func NewAPINinjasExtractor() *APINinjasExtractor {
	return &APINinjasExtractor{now: time.Now}
}

// Extract maps one raw JSON payload into a TranscriptRecord. Identity
// fields missing from the payload fall back to the candidate, which covers
// the search-endpoint flow where ticker/year/quarter were already known.
func (e *APINinjasExtractor) Extract(c domain.Candidate, raw string) (*domain.TranscriptRecord, error) {
	var payload apiPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("extract %s: parse payload: %w", c.ID(), err)
	}

	if payload.Error != "" {
		return nil, fmt.Errorf("extract %s: %w: %s", c.ID(), ErrAPIError, payload.Error)
	}

	ticker := strings.ToUpper(strings.TrimSpace(payload.Ticker))
	if ticker == "" {
		ticker = strings.ToUpper(strings.TrimSpace(c.Ticker))
	}
	year := payload.Year
	if year == 0 {
		year = c.Year
	}
	quarter := payload.Quarter
	if quarter == 0 {
		quarter = c.Quarter
	}

	if ticker == "" || year < 1000 || year > 9999 || quarter < 1 || quarter > 4 {
		return nil, fmt.Errorf("extract %s: %w", c.ID(), ErrMissingIdentity)
	}

	return &domain.TranscriptRecord{
		Ticker:       ticker,
		Year:         year,
		Quarter:      quarter,
		Date:         payload.Date,
		Transcript:   payload.Transcript,
		Participants: payload.Participants,
		FetchedAt:    e.now().Format(time.RFC3339),
		Source:       domain.SourceAPINinjas,
	}, nil
}
