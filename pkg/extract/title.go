package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrTitleMismatch is returned when a listing title does not follow the
// "Company (TICKER) Q<digit> <year>" pattern. Candidates whose titles fail
// to parse are discarded, never persisted.
var ErrTitleMismatch = errors.New("title does not match transcript pattern")

// titlePattern matches listing titles like
// "Apple (AAPL) Q4 2024 Earnings Call Transcript".
var titlePattern = regexp.MustCompile(`^\s*(.*?)\s*\(([A-Za-z][A-Za-z0-9.\-]*)\)\s+Q([1-4])\s+(\d{4})\b`)

// TitleInfo holds the identity fields recovered from a listing title.
type TitleInfo struct {
	Company string
	Ticker  string
	Quarter int
	Year    int
}

// ParseTitle recovers company, ticker, quarter and year from a transcript
// listing title. The ticker is upper-cased and whitespace-stripped; the year
// must be a 4-digit integer and the quarter in 1-4 (both enforced by the
// pattern itself).
func ParseTitle(title string) (TitleInfo, error) {
	m := titlePattern.FindStringSubmatch(title)
	if m == nil {
		return TitleInfo{}, ErrTitleMismatch
	}

	quarter, err := strconv.Atoi(m[3])
	if err != nil {
		return TitleInfo{}, ErrTitleMismatch
	}
	year, err := strconv.Atoi(m[4])
	if err != nil {
		return TitleInfo{}, ErrTitleMismatch
	}

	return TitleInfo{
		Company: strings.TrimSpace(m[1]),
		Ticker:  strings.ToUpper(strings.TrimSpace(m[2])),
		Quarter: quarter,
		Year:    year,
	}, nil
}
