package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"earnings-transcripts/pkg/domain"
	"earnings-transcripts/pkg/store"
)

// Lister produces the run's transcript candidates (a listing-page scrape or
// a per-ticker API enumeration).
type Lister interface {
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
}

// ContentFetcher retrieves one candidate's full content (raw HTML or raw
// JSON, depending on the source).
type ContentFetcher interface {
	FetchContent(ctx context.Context, c domain.Candidate) (string, error)
}

// Extractor normalizes one raw response into a TranscriptRecord.
type Extractor interface {
	Extract(c domain.Candidate, raw string) (*domain.TranscriptRecord, error)
}

// RecordStore is the persistence layer and dedup index.
type RecordStore interface {
	Init() error
	Exists(key string) bool
	Persist(rec *domain.TranscriptRecord) (string, error)
}

// Summary reports per-run counts.
type Summary struct {
	Fetched int
	Skipped int
	Failed  int
}

// Driver runs one fetch pass: build the existing-record index, list
// candidates, then fetch, extract and store each candidate sequentially.
// Per-candidate failures are logged and counted, never fatal; only a
// listing-phase failure aborts the run.
type Driver struct {
	lister    Lister
	fetcher   ContentFetcher
	extractor Extractor
	store     RecordStore
}

// NewDriver wires a driver from its four collaborators.
func NewDriver(lister Lister, fetcher ContentFetcher, extractor Extractor, recordStore RecordStore) *Driver {
	return &Driver{
		lister:    lister,
		fetcher:   fetcher,
		extractor: extractor,
		store:     recordStore,
	}
}

// Run executes one pass and returns the run summary. A second Run against
// the same store is idempotent: everything persisted by the first pass is
// skipped by the second.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := d.store.Init(); err != nil {
		return summary, fmt.Errorf("init record store: %w", err)
	}

	candidates, err := d.lister.ListCandidates(ctx)
	if err != nil {
		return summary, fmt.Errorf("list candidates: %w", err)
	}

	log.Printf("Driver: processing %d candidates", len(candidates))

	for i, c := range candidates {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		log.Printf("Driver: [%d/%d] %s", i+1, len(candidates), c.ID())

		// Candidates that resolved their identity at listing time are
		// checked against the index before spending a fetch on them.
		if c.HasKey() && d.store.Exists(store.KeyFor(c.Ticker, c.Year, c.Quarter, c.URL)) {
			log.Printf("Driver: skipping (already exists): %s", c.ID())
			summary.Skipped++
			continue
		}

		if err := d.processCandidate(ctx, c, &summary); err != nil {
			log.Printf("Driver: %v", err)
			summary.Failed++
		}
	}

	log.Printf("Driver: done. fetched=%d skipped=%d failed=%d", summary.Fetched, summary.Skipped, summary.Failed)
	return summary, nil
}

// processCandidate runs FETCH → EXTRACT → STORE for one candidate. The
// returned error, if any, is one of the three per-candidate kinds.
func (d *Driver) processCandidate(ctx context.Context, c domain.Candidate, summary *Summary) error {
	raw, err := d.fetcher.FetchContent(ctx, c)
	if err != nil {
		return &FetchError{Candidate: c.ID(), Err: err}
	}

	rec, err := d.extractor.Extract(c, raw)
	if err != nil {
		return &ExtractionError{Candidate: c.ID(), Err: err}
	}

	// Latest-only candidates resolve their key from the payload, and a
	// duplicate earlier in the same run may have stored this key already,
	// so the index is consulted again post-extraction. The store also
	// refuses to overwrite on its own.
	path, err := d.store.Persist(rec)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyStored) {
			log.Printf("Driver: skipping (already exists): %s %d Q%d", rec.Ticker, rec.Year, rec.Quarter)
			summary.Skipped++
			return nil
		}
		return &FileWriteError{Candidate: c.ID(), Err: err}
	}

	log.Printf("Driver: saved %s", path)
	summary.Fetched++
	return nil
}
