package monitor

import (
	"context"
	"time"

	"annwatch/internal/state"
)

// Fetcher retrieves the target page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Extractor parses fetched content into candidates in document order.
// An empty slice is a valid result, not an error.
type Extractor interface {
	Extract(body []byte) ([]Candidate, error)
}

// StateStore loads and persists the monitor state document.
type StateStore interface {
	Load() (state.MonitorState, error)
	Save(st state.MonitorState) error
}

// Notifier delivers a message to a chat destination.
type Notifier interface {
	Send(ctx context.Context, chatID string, text string) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
