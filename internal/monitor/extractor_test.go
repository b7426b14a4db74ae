package monitor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTickerDirectChildren(t *testing.T) {
	t.Parallel()

	html := `
<html><body>
<div class="tg-ticker owl-carousel">
  <section><a href="/docs/exam.pdf">Arrear exam schedule   released</a></section>
  <section class="cloned"><a href="/docs/exam.pdf">Arrear exam schedule released</a></section>
  <section>Sports day postponed</section>
</div>
</body></html>`

	candidates, err := NewHTMLExtractor(nil).Extract([]byte(html))
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "Arrear exam schedule released", candidates[0].Text)
	require.Equal(t, "/docs/exam.pdf", candidates[0].PDFURL)
	require.Equal(t, "Sports day postponed", candidates[1].Text)
	require.Empty(t, candidates[1].PDFURL)
}

func TestExtractTickerActiveAnchors(t *testing.T) {
	t.Parallel()

	// No direct children produce text, so the active-anchor rule applies;
	// anchors under a cloned wrapper are skipped.
	html := `
<html><body>
<div class="tg-ticker owl-carousel">
  <div class="owl-stage">
    <div class="owl-item"><a class="active" href="/a.pdf">Reappearance registration</a></div>
    <div class="owl-item cloned"><a class="active" href="/a.pdf">Reappearance registration</a></div>
  </div>
</div>
</body></html>`

	candidates, err := NewHTMLExtractor(nil).Extract([]byte(html))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "Reappearance registration", candidates[0].Text)
	require.Equal(t, "/a.pdf", candidates[0].PDFURL)
}

func TestExtractFallsBackToOtherCarousels(t *testing.T) {
	t.Parallel()

	html := `
<html><body>
<div class="owl-carousel">
  <div class="owl-item">Holiday notice for all departments</div>
  <div class="owl-item cloned">Holiday notice for all departments</div>
</div>
</body></html>`

	candidates, err := NewHTMLExtractor(nil).Extract([]byte(html))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "Holiday notice for all departments", candidates[0].Text)
}

func TestExtractFallsBackToListItems(t *testing.T) {
	t.Parallel()

	html := `
<html><body>
<ul>
  <li><a href="/notices/one.pdf">Notice one</a></li>
  <li>Notice two</li>
</ul>
</body></html>`

	candidates, err := NewHTMLExtractor(nil).Extract([]byte(html))
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "Notice one", candidates[0].Text)
	require.Equal(t, "/notices/one.pdf", candidates[0].PDFURL)
}

func TestExtractFallsBackToAnchors(t *testing.T) {
	t.Parallel()

	html := `<html><body><p><a href="/x.pdf">Only anchor text</a></p></body></html>`

	candidates, err := NewHTMLExtractor(nil).Extract([]byte(html))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "Only anchor text", candidates[0].Text)
	require.Equal(t, "/x.pdf", candidates[0].PDFURL)
}

func TestExtractEmptyPageYieldsNoCandidates(t *testing.T) {
	t.Parallel()

	candidates, err := NewHTMLExtractor(nil).Extract([]byte("<html><body></body></html>"))
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestExtractDeduplicatesPreservingOrder(t *testing.T) {
	t.Parallel()

	html := `
<html><body>
<ul>
  <li>Exam notice</li>
  <li>EXAM   NOTICE</li>
  <li>Second notice</li>
</ul>
</body></html>`

	candidates, err := NewHTMLExtractor(nil).Extract([]byte(html))
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "Exam notice", candidates[0].Text)
	require.Equal(t, "Second notice", candidates[1].Text)
}
