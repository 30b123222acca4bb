package replication

import (
	"context"
	"fmt"
	"log"

	"earnings-transcripts/pkg/db"
	"earnings-transcripts/pkg/store"
)

// Config wires the replication dependencies.
type Config struct {
	Store    *store.Store
	Postgres db.DBProvider
}

// Replicator mirrors the transcript file store into a Postgres table.
//
// This is a one-shot, "copy everything" flow: the file store stays the
// system of record, the table is a queryable mirror. Re-running is safe;
// already-mirrored files are skipped on their filename.
type Replicator struct {
	store *store.Store
	pg    db.DBProvider
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	return &Replicator{
		store: cfg.Store,
		pg:    cfg.Postgres,
	}, nil
}

// Replicate reads every persisted transcript file and inserts the ones not
// yet present in the transcript table. Returns the number of new rows.
func (r *Replicator) Replicate(ctx context.Context) (int, error) {
	if r.pg.DB() == nil {
		return 0, fmt.Errorf("postgres DB not connected")
	}

	if err := r.ensureTranscriptSchema(ctx); err != nil {
		return 0, err
	}

	records, err := r.store.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("read transcript files: %w", err)
	}

	log.Printf("Replicator: loaded %d transcript files", len(records))

	const insert = `
INSERT INTO transcript
  (filename, ticker, year, quarter, source, company, call_date, transcript,
   prepared_remarks, qa_section, url, fetched_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (filename) DO NOTHING;`

	inserted := 0
	for _, rec := range records {
		if ctx.Err() != nil {
			return inserted, ctx.Err()
		}

		res, err := r.pg.DB().ExecContext(ctx, insert,
			rec.Filename,
			rec.Record.Ticker,
			rec.Record.Year,
			rec.Record.Quarter,
			rec.Record.Source,
			rec.Record.Company,
			rec.Record.Date,
			rec.Record.Transcript,
			rec.Record.PreparedRemarks,
			rec.Record.QASection,
			rec.Record.URL,
			rec.Record.FetchedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", rec.Filename, err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	log.Printf("Replicator: done, inserted %d new rows out of %d files", inserted, len(records))
	return inserted, nil
}

func (r *Replicator) ensureTranscriptSchema(ctx context.Context) error {
	// Filename is the dedup key, same as in the file store.
	const ddl = `
CREATE TABLE IF NOT EXISTS transcript (
  filename TEXT PRIMARY KEY,
  ticker TEXT NOT NULL,
  year INT NOT NULL,
  quarter INT NOT NULL,
  source TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  call_date TEXT NOT NULL DEFAULT '',
  transcript TEXT NOT NULL DEFAULT '',
  prepared_remarks TEXT NOT NULL DEFAULT '',
  qa_section TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  fetched_at TEXT NOT NULL DEFAULT ''
);`

	if _, err := r.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create transcript table: %w", err)
	}
	return nil
}
