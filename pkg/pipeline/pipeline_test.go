package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"earnings-transcripts/pkg/domain"
	"earnings-transcripts/pkg/store"
)

// fakeSource serves canned candidates and payloads and records fetch calls.
type fakeSource struct {
	candidates []domain.Candidate
	listErr    error
	fetchErr   map[string]error
	fetches    int
}

func (f *fakeSource) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.candidates, nil
}

func (f *fakeSource) FetchContent(ctx context.Context, c domain.Candidate) (string, error) {
	f.fetches++
	if err := f.fetchErr[c.Ticker]; err != nil {
		return "", err
	}
	return c.Ticker, nil
}

// fakeExtractor builds a record straight from the candidate; the payload is
// ignored except as a per-ticker failure switch.
type fakeExtractor struct {
	extractErr map[string]error
}

func (f *fakeExtractor) Extract(c domain.Candidate, raw string) (*domain.TranscriptRecord, error) {
	if err := f.extractErr[c.Ticker]; err != nil {
		return nil, err
	}
	return &domain.TranscriptRecord{
		Ticker:     c.Ticker,
		Year:       c.Year,
		Quarter:    c.Quarter,
		Transcript: "text",
		Source:     domain.SourceAPINinjas,
	}, nil
}

func newTestDriver(t *testing.T, src *fakeSource, ext *fakeExtractor, dir string) *Driver {
	t.Helper()
	if ext == nil {
		ext = &fakeExtractor{}
	}
	return NewDriver(src, src, ext, store.New(dir))
}

func TestDriver_FetchesNewCandidates(t *testing.T) {
	src := &fakeSource{candidates: []domain.Candidate{
		{Ticker: "AAPL", Year: 2024, Quarter: 4},
		{Ticker: "MSFT", Year: 2024, Quarter: 3},
	}}

	summary, err := newTestDriver(t, src, nil, t.TempDir()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Fetched != 2 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}

func TestDriver_SecondRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{candidates: []domain.Candidate{
		{Ticker: "AAPL", Year: 2024, Quarter: 4},
		{Ticker: "MSFT", Year: 2024, Quarter: 3},
	}}

	first, err := newTestDriver(t, src, nil, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first.Fetched != 2 {
		t.Fatalf("First run fetched %d, want 2", first.Fetched)
	}

	fetchesAfterFirst := src.fetches

	second, err := newTestDriver(t, src, nil, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if second.Fetched != 0 || second.Skipped != 2 {
		t.Errorf("Second run not idempotent: %+v", second)
	}
	if src.fetches != fetchesAfterFirst {
		t.Errorf("Second run performed %d extra fetches for known keys", src.fetches-fetchesAfterFirst)
	}
}

func TestDriver_SkipsKeylessDuplicateAfterExtraction(t *testing.T) {
	// Latest-only candidates carry no key at listing time; the same logical
	// transcript appearing twice must still be stored once.
	src := &fakeSource{candidates: []domain.Candidate{
		{Ticker: "AAPL"},
		{Ticker: "AAPL"},
	}}
	ext := &fakeExtractor{}
	drv := NewDriver(src, src, &latestExtractor{ext}, store.New(t.TempDir()))

	summary, err := drv.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Fetched != 1 || summary.Skipped != 1 {
		t.Errorf("Expected 1 fetched / 1 skipped, got %+v", summary)
	}
}

// latestExtractor simulates an API payload resolving year/quarter for a
// keyless candidate.
type latestExtractor struct {
	inner *fakeExtractor
}

func (l *latestExtractor) Extract(c domain.Candidate, raw string) (*domain.TranscriptRecord, error) {
	c.Year = 2024
	c.Quarter = 4
	return l.inner.Extract(c, raw)
}

func TestDriver_PerCandidateFailuresDoNotAbort(t *testing.T) {
	src := &fakeSource{
		candidates: []domain.Candidate{
			{Ticker: "FAIL1", Year: 2024, Quarter: 1},
			{Ticker: "AAPL", Year: 2024, Quarter: 4},
			{Ticker: "FAIL2", Year: 2024, Quarter: 2},
		},
		fetchErr: map[string]error{"FAIL1": errors.New("connection reset")},
	}
	ext := &fakeExtractor{extractErr: map[string]error{"FAIL2": errors.New("bad body")}}

	summary, err := newTestDriver(t, src, ext, t.TempDir()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Fetched != 1 || summary.Failed != 2 {
		t.Errorf("Expected 1 fetched / 2 failed, got %+v", summary)
	}
}

func TestDriver_ListingFailureAbortsRun(t *testing.T) {
	src := &fakeSource{listErr: errors.New("listing endpoint unreachable")}

	if _, err := newTestDriver(t, src, nil, t.TempDir()).Run(context.Background()); err == nil {
		t.Fatal("Expected run-level error for listing failure, got nil")
	}
}

func TestDriver_PreexistingFileSkippedWithoutFetch(t *testing.T) {
	dir := t.TempDir()

	// First run stores AAPL Q4 2024.
	seed := &fakeSource{candidates: []domain.Candidate{{Ticker: "AAPL", Year: 2024, Quarter: 4}}}
	if _, err := newTestDriver(t, seed, nil, dir).Run(context.Background()); err != nil {
		t.Fatalf("Seed run failed: %v", err)
	}

	// Re-running with AAPL as the only candidate yields 0 fetched, 1 skipped.
	src := &fakeSource{candidates: []domain.Candidate{{Ticker: "AAPL", Year: 2024, Quarter: 4}}}
	summary, err := newTestDriver(t, src, nil, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Fetched != 0 || summary.Skipped != 1 {
		t.Errorf("Expected 0 fetched / 1 skipped, got %+v", summary)
	}
	if src.fetches != 0 {
		t.Errorf("Expected no fetches for a known key, got %d", src.fetches)
	}
}

func TestErrorKinds_CarryCandidateContext(t *testing.T) {
	inner := errors.New("boom")
	cases := []error{
		&FetchError{Candidate: "AAPL 2024 Q4", Err: inner},
		&ExtractionError{Candidate: "AAPL 2024 Q4", Err: inner},
		&FileWriteError{Candidate: "AAPL 2024 Q4", Err: inner},
	}

	for _, err := range cases {
		if !errors.Is(err, inner) {
			t.Errorf("%T does not unwrap to inner error", err)
		}
		msg := fmt.Sprint(err)
		if msg == "" || !errors.Is(err, inner) {
			t.Errorf("%T has empty message", err)
		}
	}
}
