package notify

import (
	"fmt"
	"html"
	"strings"
)

// AnnouncementMessage renders the public channel message for a newly
// detected announcement, with links back to the source page and the
// attached PDF when present.
func AnnouncementMessage(text, pdfURL, sourceURL string) string {
	lines := []string{
		"📢 <b>New Announcement Detected</b>",
		"",
		html.EscapeString(text),
		"",
		fmt.Sprintf(`🔗 <a href="%s">Source page</a>`, html.EscapeString(sourceURL)),
	}
	if pdfURL != "" {
		lines = append(lines, fmt.Sprintf(`📄 <a href="%s">PDF link</a>`, html.EscapeString(pdfURL)))
	}
	return strings.Join(lines, "\n")
}

// ErrorAlertMessage renders the private owner alert for a cycle failure.
func ErrorAlertMessage(message string) string {
	return fmt.Sprintf("⚠️ <b>Monitoring error</b>\n\n<code>%s</code>", html.EscapeString(message))
}
