package monitor

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Matcher scores candidates against a configured set of keyword phrases and
// selects the best one at or above the similarity threshold. Scoring is a
// pure function of the inputs.
type Matcher struct {
	keywords  []string
	threshold float64
}

// NewMatcher builds a Matcher. Keywords are lowercased and
// whitespace-normalized once up front; empty phrases are dropped.
func NewMatcher(keywords []string, threshold float64) *Matcher {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = normalizeText(kw)
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &Matcher{keywords: normalized, threshold: threshold}
}

// Threshold returns the configured similarity threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Score returns the candidate text's similarity to the keyword set: the
// maximum over all keyword phrases, in [0, 1]. A keyword appearing verbatim
// as a substring scores 1.
func (m *Matcher) Score(text string) float64 {
	norm := normalizeText(text)
	if norm == "" {
		return 0
	}
	best := 0.0
	for _, kw := range m.keywords {
		if strings.Contains(norm, kw) {
			return 1
		}
		if s := jaroWinkler(norm, kw); s > best {
			best = s
		}
	}
	return best
}

// Best selects the highest-scoring candidate at or above the threshold.
// The first candidate in document order wins ties. The boolean is false when
// no candidate qualifies, even if one scored highest among a below-threshold
// set.
func (m *Matcher) Best(candidates []Candidate) (Match, bool) {
	var (
		found bool
		match Match
	)
	for _, cand := range candidates {
		score := m.Score(cand.Text)
		if score < m.threshold {
			continue
		}
		if !found || score > match.Score {
			match = Match{Candidate: cand, Score: score}
			found = true
		}
	}
	return match, found
}

// Similarity reports how alike two texts are in [0, 1], case-insensitive and
// whitespace-normalized. Used to decide whether a matched announcement is the
// same one already stored.
func Similarity(a, b string) float64 {
	na, nb := normalizeText(a), normalizeText(b)
	if na == nb {
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}
	return jaroWinkler(na, nb)
}

func jaroWinkler(a, b string) float64 {
	s := matchr.JaroWinkler(a, b, false)
	// Guard the [0, 1] contract against rounding at the edges.
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
