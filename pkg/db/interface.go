package db

import "database/sql"

// DBProvider is an interface for database clients that provide access to a
// sql.DB handle. Both PostgresClient and SupabaseClient satisfy it, so the
// replicator does not care which backend mirrors the transcripts.
type DBProvider interface {
	DB() *sql.DB
}
