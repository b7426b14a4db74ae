package monitor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatcherScoreBounds(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{"arrear exam", "reappearance"}, 0.6)
	inputs := []string{
		"",
		"Arrear exam registration opens Monday",
		"completely unrelated text about sports day",
		"REAPPEARANCE   registration\n\topen",
		"zzzz qqqq xxxx",
	}
	for _, in := range inputs {
		score := m.Score(in)
		require.GreaterOrEqual(t, score, 0.0, "input %q", in)
		require.LessOrEqual(t, score, 1.0, "input %q", in)
	}
}

func TestMatcherScoreDeterministic(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{"time limit exceeded"}, 0.6)
	text := "Time Limit Exceeded candidates may register for reappearance"
	first := m.Score(text)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, m.Score(text))
	}
}

func TestMatcherSubstringScoresOne(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{"arrear exam"}, 0.6)
	require.Equal(t, 1.0, m.Score("Notification: ARREAR   EXAM schedule released"))
}

func TestMatcherBestSelectsAboveThreshold(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{"arrear exam"}, 0.6)
	candidates := []Candidate{
		{Text: "sports day postponed"},
		{Text: "arrear exam registration opens", PDFURL: "https://example.com/a.pdf"},
	}

	match, ok := m.Best(candidates)
	require.True(t, ok)
	require.Equal(t, "arrear exam registration opens", match.Candidate.Text)
	require.Equal(t, "https://example.com/a.pdf", match.Candidate.PDFURL)
	require.GreaterOrEqual(t, match.Score, 0.6)
}

func TestMatcherBestRejectsBelowThreshold(t *testing.T) {
	t.Parallel()

	// Disjoint alphabets keep the fuzzy score at zero, so even the
	// highest-scoring candidate stays below the threshold.
	m := NewMatcher([]string{"zzzz zzzz"}, 0.6)
	candidates := []Candidate{
		{Text: "aaaa bbbb"},
		{Text: "cccc dddd"},
	}

	_, ok := m.Best(candidates)
	require.False(t, ok)
}

func TestMatcherBestTieBreaksOnDocumentOrder(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{"reappearance"}, 0.6)
	candidates := []Candidate{
		{Text: "reappearance exam batch one"},
		{Text: "reappearance exam batch two"},
	}

	match, ok := m.Best(candidates)
	require.True(t, ok)
	require.Equal(t, "reappearance exam batch one", match.Candidate.Text)
	require.Equal(t, 1.0, match.Score)
}

func TestMatcherBestEmptyCandidates(t *testing.T) {
	t.Parallel()

	m := NewMatcher([]string{"reappearance"}, 0.6)
	_, ok := m.Best(nil)
	require.False(t, ok)
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1.0, Similarity("Arrear  Exam", "arrear exam"))
	require.Equal(t, 0.0, Similarity("", "arrear exam"))
	require.Equal(t, 1.0, Similarity("", ""))

	sim := Similarity("arrear exam registration opens", "arrear exam registration open")
	require.Greater(t, sim, 0.9)
	require.LessOrEqual(t, sim, 1.0)

	require.Equal(t, 0.0, Similarity("aaaa", "zzzz"))
}
