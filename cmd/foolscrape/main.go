package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"earnings-transcripts/pkg/extract"
	"earnings-transcripts/pkg/httpclient"
	"earnings-transcripts/pkg/pipeline"
	"earnings-transcripts/pkg/source"
	"earnings-transcripts/pkg/store"
)

// Scrapes recent earnings-call transcripts from the Motley Fool listing
// page (or, with -feed, from an RSS feed of the same site) and stores them
// as JSON files alongside the API-fetched ones.
func main() {
	var (
		listingURL = flag.String("listing", source.DefaultFoolListingURL, "Transcript listing page URL")
		feedURL    = flag.String("feed", "", "Optional RSS feed URL to list candidates from instead of the listing page")
		limit      = flag.Int("limit", 10, "Max transcript candidates per run")
		dir        = flag.String("dir", "transcripts", "Output directory for transcript JSON files")
		delay      = flag.Duration("delay", time.Second, "Minimum delay between outbound requests")
	)
	flag.Parse()

	_ = godotenv.Load()

	client := httpclient.NewPacedClient(httpclient.BrowserClient, *delay)
	pages := source.NewFoolSource(client, *listingURL, *limit)

	var lister pipeline.Lister = pages
	if *feedURL != "" {
		lister = source.NewFoolFeed(*feedURL, *limit)
	}

	driver := pipeline.NewDriver(lister, pages, extract.NewFoolExtractor(), store.New(*dir))

	start := time.Now()
	summary, err := driver.Run(context.Background())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Done. fetched=%d skipped=%d failed=%d duration=%s",
		summary.Fetched, summary.Skipped, summary.Failed, time.Since(start))
}
