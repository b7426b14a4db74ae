package monitor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// HTMLExtractor scans a fetched page for announcement-shaped blocks.
//
// The target site renders announcements in an OwlCarousel ticker, so the
// primary selectors target that structure. Each fallback is broader than the
// last so a page redesign degrades to generic scanning instead of an error.
// Carousel libraries duplicate items with a "cloned" class; those are skipped
// everywhere.
type HTMLExtractor struct {
	logger *zap.Logger
}

// NewHTMLExtractor returns an extractor logging trace output to logger.
func NewHTMLExtractor(logger *zap.Logger) *HTMLExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLExtractor{logger: logger}
}

// Extract returns candidates in document order. An empty result means no
// plausible blocks were found and is not an error.
func (e *HTMLExtractor) Extract(body []byte) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, NewCycleError(CategoryExtract, fmt.Errorf("parse html: %w", err))
	}

	var out []Candidate
	add := func(text, pdfURL string) {
		cleaned := strings.Join(strings.Fields(text), " ")
		if cleaned == "" {
			return
		}
		out = append(out, Candidate{Text: cleaned, PDFURL: pdfURL})
	}
	addBlock := func(s *goquery.Selection) {
		if s.HasClass("cloned") {
			return
		}
		add(s.Text(), firstPDFLink(s))
	}

	ticker := doc.Find("div.tg-ticker.owl-carousel").First()
	if ticker.Length() > 0 {
		e.logger.Debug("Found ticker container", zap.String("selector", "div.tg-ticker.owl-carousel"))

		// Notifications are usually direct children of the ticker. Children
		// that hold carousel wrapper markup are skipped here so a
		// stage-wrapped carousel doesn't collapse into one giant candidate;
		// the later passes pick its items apart instead.
		ticker.Children().Each(func(_ int, s *goquery.Selection) {
			if s.Find(".owl-stage, .owl-item").Length() > 0 {
				return
			}
			addBlock(s)
		})

		if len(out) == 0 {
			ticker.Find("a.active").Each(func(_ int, a *goquery.Selection) {
				if a.ParentsFiltered(".cloned").Length() > 0 {
					return
				}
				add(a.Text(), pdfHref(a))
			})
		}

		if len(out) == 0 {
			ticker.Find(".owl-item, .item").Each(func(_ int, s *goquery.Selection) {
				addBlock(s)
			})
		}
	}

	if len(out) == 0 {
		e.logger.Debug("No ticker candidates, scanning other carousels")
		doc.Find("div.owl-carousel").Find("div.owl-item, div.item").Each(func(_ int, s *goquery.Selection) {
			addBlock(s)
		})
	}

	if len(out) == 0 {
		e.logger.Debug("No carousel candidates, falling back to generic scanning")
		doc.Find("li").Each(func(_ int, li *goquery.Selection) {
			add(li.Text(), firstPDFLink(li))
		})
	}

	if len(out) == 0 {
		doc.Find("a").Each(func(_ int, a *goquery.Selection) {
			add(a.Text(), pdfHref(a))
		})
	}

	deduped := dedupeCandidates(out)
	e.logger.Debug("Extraction finished", zap.Int("candidates", len(deduped)))
	return deduped, nil
}

// firstPDFLink returns the href of the first .pdf anchor inside s.
func firstPDFLink(s *goquery.Selection) string {
	found := ""
	s.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if href := pdfHref(a); href != "" {
			found = href
			return false
		}
		return true
	})
	return found
}

func pdfHref(a *goquery.Selection) string {
	href := strings.TrimSpace(a.AttrOr("href", ""))
	if strings.HasSuffix(strings.ToLower(href), ".pdf") {
		return href
	}
	return ""
}

// dedupeCandidates drops repeated (text, pdf) pairs while preserving order.
func dedupeCandidates(in []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(in))
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		key := strings.ToLower(c.Text) + "|" + c.PDFURL
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
