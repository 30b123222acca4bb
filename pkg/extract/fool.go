package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"earnings-transcripts/pkg/domain"
)

var (
	errEmptyHTML = errors.New("empty HTML content")
	errEmptyBody = errors.New("no body text extracted from HTML")
)

// qaMarker locates the heading that separates prepared remarks from the
// question-and-answer session in a scraped transcript body.
var qaMarker = regexp.MustCompile(`(?i)questions\s*(?:and|&(?:amp;)?)\s*answers`)

// FoolExtractor turns a fetched Motley Fool transcript page into a
// TranscriptRecord. The candidate's listing title supplies ticker, quarter,
// year and company; the page body supplies the transcript text.
type FoolExtractor struct{}

// NewFoolExtractor creates an extractor for Motley Fool transcript pages.
func NewFoolExtractor() *FoolExtractor {
	return &FoolExtractor{}
}

// Extract maps one raw HTML page into a TranscriptRecord.
//
// The body is split at the first questions-and-answers marker: everything
// before the marker becomes prepared_remarks, everything after qa_section.
// If no marker is found, transcript still holds the full body text and the
// two sub-sections stay empty.
func (e *FoolExtractor) Extract(c domain.Candidate, raw string) (*domain.TranscriptRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("extract %s: %w", c.ID(), errEmptyHTML)
	}

	info := TitleInfo{
		Company: c.Company,
		Ticker:  c.Ticker,
		Quarter: c.Quarter,
		Year:    c.Year,
	}

	// Candidates listed from a page or feed already carry their identity.
	// For a candidate built from a bare URL, fall back to the page title.
	if !c.HasKey() {
		title, err := pageTitle(raw)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", c.ID(), err)
		}
		info, err = ParseTitle(title)
		if err != nil {
			return nil, fmt.Errorf("extract %s: title %q: %w", c.ID(), title, err)
		}
	}

	body, err := bodyText(raw)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", c.ID(), err)
	}

	prepared, qa := splitAtQAMarker(body)

	return &domain.TranscriptRecord{
		Ticker:          info.Ticker,
		Company:         info.Company,
		Year:            info.Year,
		Quarter:         info.Quarter,
		Transcript:      body,
		PreparedRemarks: prepared,
		QASection:       qa,
		URL:             c.URL,
		Source:          domain.SourceMotleyFool,
	}, nil
}

// bodyText extracts the main article text from a transcript page.
// Readability handles the boilerplate stripping; if it fails or comes back
// empty, fall back to the raw body text via goquery.
func bodyText(htmlContent string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	text := strings.TrimSpace(doc.Find("body").Text())
	if text == "" {
		return "", errEmptyBody
	}
	return text, nil
}

// pageTitle extracts the page title, preferring the <title> tag and falling
// back to the first <h1>.
func pageTitle(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	return "", fmt.Errorf("title not found in HTML")
}

// splitAtQAMarker splits the body at the first Q&A heading. Returns empty
// strings for both halves when no marker is present.
func splitAtQAMarker(body string) (prepared, qa string) {
	loc := qaMarker.FindStringIndex(body)
	if loc == nil {
		return "", ""
	}
	return strings.TrimSpace(body[:loc[0]]), strings.TrimSpace(body[loc[1]:])
}
