package domain

import "fmt"

// Source tags identify which fetch path produced a record.
const (
	SourceMotleyFool = "motley-fool"
	SourceAPINinjas  = "api-ninjas"
)

// TranscriptRecord represents one persisted earnings-call transcript.
//
// Two shapes share this struct: the Motley Fool scrape fills company, the
// prepared-remarks/Q&A split and the source URL; the API Ninjas path fills
// date, participants and fetched_at. Optional fields are omitted from the
// JSON file when empty.
type TranscriptRecord struct {
	// Ticker is the upper-cased stock symbol, e.g. "AAPL".
	Ticker string `json:"ticker"`

	// Company is the display name recovered from the page title, when available.
	Company string `json:"company,omitempty"`

	// Year is the 4-digit earnings year.
	Year int `json:"year"`

	// Quarter is the earnings quarter, 1-4.
	Quarter int `json:"quarter"`

	// Date is the call date reported by the API, as an ISO-8601 string.
	Date string `json:"date,omitempty"`

	// Transcript is the full transcript text. It may be empty if extraction
	// partially failed but the record still resolved its identity.
	Transcript string `json:"transcript"`

	// PreparedRemarks and QASection are the two halves of a scraped
	// transcript, split at the questions-and-answers marker. Both are empty
	// when no marker was found in the body.
	PreparedRemarks string `json:"prepared_remarks,omitempty"`
	QASection       string `json:"qa_section,omitempty"`

	// Participants lists call participants as reported by the API.
	Participants []string `json:"participants,omitempty"`

	// URL is the transcript page URL (scrape source only).
	URL string `json:"url,omitempty"`

	// FetchedAt is when this system fetched the record, ISO-8601.
	FetchedAt string `json:"fetched_at,omitempty"`

	// Filename is the name of the file the record was persisted under.
	// Set by the store at persist time.
	Filename string `json:"filename,omitempty"`

	// Source is one of SourceMotleyFool or SourceAPINinjas.
	Source string `json:"source"`
}

// Candidate is one logical transcript discovered during the listing phase,
// before its full content has been fetched.
//
// Scrape candidates carry URL and Title and resolve ticker/year/quarter from
// the listing title. API candidates carry Ticker, plus Year/Quarter when the
// search endpoint enumerated them; a latest-only candidate has only Ticker
// and resolves the rest from the fetched payload.
type Candidate struct {
	Ticker  string
	Company string
	Year    int
	Quarter int
	URL     string
	Title   string
}

// HasKey reports whether the candidate's dedup key is already resolvable,
// i.e. ticker, year and quarter are all known before fetching.
func (c Candidate) HasKey() bool {
	return c.Ticker != "" && c.Year != 0 && c.Quarter != 0
}

// ID returns a human-readable identifier for logs.
func (c Candidate) ID() string {
	if c.URL != "" {
		return c.URL
	}
	if c.HasKey() {
		return fmt.Sprintf("%s %d Q%d", c.Ticker, c.Year, c.Quarter)
	}
	return c.Ticker + " (latest)"
}
