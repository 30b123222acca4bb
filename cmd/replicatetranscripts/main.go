package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"earnings-transcripts/pkg/db"
	"earnings-transcripts/pkg/replication"
	"earnings-transcripts/pkg/store"
)

// Mirrors the transcript file store into Postgres so the transcripts can be
// queried. The files stay the system of record; re-running only inserts
// files that are not in the table yet.
//
// Credentials come from the environment: DATABASE_URL for plain Postgres,
// or SUPABASE_URL + SUPABASE_KEY (+ SUPABASE_DB_PASSWORD) for Supabase.
func main() {
	var (
		dir = flag.String("dir", "transcripts", "Directory holding transcript JSON files")
	)
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()

	provider, closeFn, err := connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeFn()

	fileStore := store.New(*dir)
	if err := fileStore.Init(); err != nil {
		log.Fatalf("Failed to open transcript store: %v", err)
	}

	replicator, err := replication.NewReplicator(replication.Config{
		Store:    fileStore,
		Postgres: provider,
	})
	if err != nil {
		log.Fatalf("Failed to create replicator: %v", err)
	}

	start := time.Now()
	inserted, err := replicator.Replicate(ctx)
	if err != nil {
		log.Fatalf("Replication failed: %v", err)
	}
	log.Printf("Done. inserted=%d duration=%s", inserted, time.Since(start))
}

// connect picks the database backend from the environment.
func connect(ctx context.Context) (db.DBProvider, func(), error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		client := db.NewPostgresClient(db.PostgresConfig{DSN: dsn})
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}

	client := db.NewSupabaseClient(db.SupabaseConfig{
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: os.Getenv("SUPABASE_KEY"),
		Password:    os.Getenv("SUPABASE_DB_PASSWORD"),
	})
	if err := client.Connect(ctx); err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}
