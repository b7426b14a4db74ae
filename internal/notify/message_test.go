package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnnouncementMessage(t *testing.T) {
	t.Parallel()

	msg := AnnouncementMessage(
		"Arrear exam <registration> opens",
		"https://example.edu/a.pdf",
		"https://example.edu/",
	)
	require.Contains(t, msg, "New Announcement Detected")
	require.Contains(t, msg, "Arrear exam &lt;registration&gt; opens")
	require.Contains(t, msg, `<a href="https://example.edu/">Source page</a>`)
	require.Contains(t, msg, `<a href="https://example.edu/a.pdf">PDF link</a>`)
}

func TestAnnouncementMessageWithoutPDF(t *testing.T) {
	t.Parallel()

	msg := AnnouncementMessage("Notice", "", "https://example.edu/")
	require.NotContains(t, msg, "PDF link")
}

func TestErrorAlertMessage(t *testing.T) {
	t.Parallel()

	msg := ErrorAlertMessage("FetchError: http status 503 <gateway>")
	require.Contains(t, msg, "Monitoring error")
	require.Contains(t, msg, "<code>FetchError: http status 503 &lt;gateway&gt;</code>")
}
