package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"earnings-transcripts/pkg/extract"
	"earnings-transcripts/pkg/httpclient"
	"earnings-transcripts/pkg/pipeline"
	"earnings-transcripts/pkg/source"
	"earnings-transcripts/pkg/store"
)

// rateLimit is the fixed delay between API requests, per the upstream
// acceptable-use expectations.
const rateLimit = time.Second

// Fetches earnings-call transcripts from API Ninjas and stores them as JSON
// files. Designed to run on a schedule (e.g. GitHub Actions); configuration
// comes from the environment:
//
//	API_NINJAS_KEY   required API key (https://api-ninjas.com/register)
//	TICKERS          optional comma-separated allow-list (default: S&P 100)
//	LATEST_ONLY      "true" to fetch only the newest transcript per ticker (default)
//	TRANSCRIPTS_DIR  output directory (default: transcripts)
func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("API_NINJAS_KEY")
	if apiKey == "" {
		log.Println("ERROR: API_NINJAS_KEY environment variable not set")
		log.Println("Sign up for a free API key at: https://api-ninjas.com/register")
		os.Exit(1)
	}

	latestOnly := strings.ToLower(os.Getenv("LATEST_ONLY")) != "false"

	tickers := source.SP100Tickers
	if env := os.Getenv("TICKERS"); env != "" {
		tickers = strings.Split(env, ",")
	}

	dir := os.Getenv("TRANSCRIPTS_DIR")
	if dir == "" {
		dir = "transcripts"
	}

	log.Printf("Starting transcript fetcher, processing %d tickers (latest_only=%t)", len(tickers), latestOnly)

	client := httpclient.NewPacedClient(httpclient.DefaultClient, rateLimit)
	api := source.NewAPINinjas(client, apiKey, tickers, latestOnly)
	driver := pipeline.NewDriver(api, api, extract.NewAPINinjasExtractor(), store.New(dir))

	summary, err := driver.Run(context.Background())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	// Output for GitHub Actions.
	if summary.Fetched > 0 {
		fmt.Printf("::notice::Fetched %d new transcripts\n", summary.Fetched)
	} else {
		fmt.Println("::notice::No new transcripts found")
	}
}
