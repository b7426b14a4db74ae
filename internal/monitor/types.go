// Package monitor implements the announcement monitoring cycle: fetch the
// target page, extract candidate announcements, fuzzy-match them against the
// configured keywords, compare with the persisted state and notify exactly
// once per new announcement.
package monitor

// Page is the raw result of fetching the target URL.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// ContentLength reports the size of the fetched body.
func (p Page) ContentLength() int {
	return len(p.Body)
}

// Candidate is one announcement-shaped block extracted from the page.
// Candidates live for a single cycle and are never persisted directly.
type Candidate struct {
	Text   string
	PDFURL string
}

// Match is the best-scoring candidate selected by the Matcher.
// Score is always at or above the configured threshold.
type Match struct {
	Candidate Candidate
	Score     float64
}
