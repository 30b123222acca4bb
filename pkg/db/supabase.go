package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds configuration required to connect to Supabase.
type SupabaseConfig struct {
	// SupabaseURL is the project URL, e.g. "https://[project-ref].supabase.co".
	SupabaseURL string

	// SupabaseKey is the API key. Use the service_role key for server-side jobs.
	SupabaseKey string

	// Password is the database password, used to build the Postgres
	// connection string. Without it the client runs in REST-API mode only
	// and DB() returns nil.
	Password string
}

// SupabaseClient provides access to a Supabase project's Postgres database
// and SDK, used as a replication target for the transcript file store.
type SupabaseClient struct {
	db          *sql.DB
	supabaseSDK *supabase.Client
	cfg         SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client. Call Connect before use.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initializes the SDK client and, when a database password is
// available, a direct Postgres connection.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.SupabaseURL == "" || c.cfg.SupabaseKey == "" {
		return fmt.Errorf("supabase URL and key are required")
	}

	sdkClient, err := supabase.NewClient(c.cfg.SupabaseURL, c.cfg.SupabaseKey, nil)
	if err != nil {
		return fmt.Errorf("initialize supabase SDK: %w", err)
	}
	c.supabaseSDK = sdkClient

	if c.cfg.Password == "" {
		return nil // REST API mode only
	}

	connStr, err := c.buildConnectionString()
	if err != nil {
		return fmt.Errorf("build connection string: %w", err)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("open supabase postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping supabase postgres: %w", err)
	}

	c.db = db
	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying sql.DB handle. Returns nil in REST-API mode.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// SDK returns the Supabase SDK client.
func (c *SupabaseClient) SDK() *supabase.Client {
	return c.supabaseSDK
}

// buildConnectionString constructs the Postgres connection string from the
// project URL and database password.
func (c *SupabaseClient) buildConnectionString() (string, error) {
	// URL format: https://[project-ref].supabase.co
	parsedURL, err := url.Parse(c.cfg.SupabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}
	projectRef := parts[0]

	encodedPassword := url.QueryEscape(c.cfg.Password)
	return fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require", encodedPassword, projectRef), nil
}
