package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"earnings-transcripts/pkg/domain"
)

var (
	// ErrAlreadyStored is returned by Persist when a record's file already
	// exists. The store never overwrites; callers treat this as a skip.
	ErrAlreadyStored = errors.New("transcript already stored")

	// ErrIncompleteRecord is returned by Persist when a record is missing
	// ticker, year or quarter and therefore has no stable identity.
	ErrIncompleteRecord = errors.New("record missing ticker, year or quarter")
)

// Store persists transcript records as JSON files in a single directory and
// doubles as the deduplication index: the set of existing filenames, scanned
// once at Init, decides what is already fetched.
//
// The store is append-only. There are no update or delete operations.
type Store struct {
	dir   string
	index map[string]bool
}

// Stored pairs a loaded record with the filename it was persisted under.
type Stored struct {
	Filename string
	Record   domain.TranscriptRecord
}

// New creates a store rooted at dir. Call Init before use.
func New(dir string) *Store {
	return &Store{
		dir:   dir,
		index: make(map[string]bool),
	}
}

// Init creates the output directory if needed and builds the dedup index by
// scanning the directory's current file set. It is called once per run;
// Exists never touches the filesystem afterward.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create transcripts dir: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("scan transcripts dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		s.index[strings.TrimSuffix(name, ".json")] = true
	}

	log.Printf("Store: indexed %d existing transcripts in %s", len(s.index), s.dir)
	return nil
}

// Exists reports whether a record with the given dedup key is already
// persisted. Safe to call many times per run.
func (s *Store) Exists(key string) bool {
	return s.index[key]
}

// Persist writes the record to a new JSON file and returns its path.
// The filename embeds ticker, year, quarter and, for records that carry a
// source URL, a short stable hash of that URL. Re-persisting the same
// logical transcript returns ErrAlreadyStored.
func (s *Store) Persist(rec *domain.TranscriptRecord) (string, error) {
	rec.Ticker = NormalizeTicker(rec.Ticker)
	if rec.Ticker == "" || rec.Year == 0 || rec.Quarter == 0 {
		return "", ErrIncompleteRecord
	}

	key := KeyFor(rec.Ticker, rec.Year, rec.Quarter, rec.URL)
	filename := key + ".json"
	path := filepath.Join(s.dir, filename)

	if s.index[key] {
		return path, ErrAlreadyStored
	}
	if _, err := os.Stat(path); err == nil {
		s.index[key] = true
		return path, ErrAlreadyStored
	}

	rec.Filename = filename

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	s.index[key] = true
	return path, nil
}

// Records loads every persisted record from the directory. Files that fail
// to parse are logged and skipped rather than failing the whole read.
func (s *Store) Records(ctx context.Context) ([]Stored, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scan transcripts dir: %w", err)
	}

	var records []Stored
	for _, entry := range entries {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			log.Printf("Store: skipping unreadable file %s: %v", entry.Name(), err)
			continue
		}

		var rec domain.TranscriptRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Printf("Store: skipping unparseable file %s: %v", entry.Name(), err)
			continue
		}

		records = append(records, Stored{Filename: entry.Name(), Record: rec})
	}

	return records, nil
}

// KeyFor derives the dedup key for a transcript. The URL participates only
// when present (scrape source); API records key on ticker/year/quarter alone.
func KeyFor(ticker string, year, quarter int, url string) string {
	key := fmt.Sprintf("%s_%d_Q%d", NormalizeTicker(ticker), year, quarter)
	if url != "" {
		key += "_" + shortHash(url)
	}
	return key
}

// NormalizeTicker upper-cases a ticker and strips surrounding whitespace.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// shortHash returns the first 8 hex characters of the SHA-1 of s. Stable
// across runs, short enough to keep filenames readable.
func shortHash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}
