// Package system provides a real clock implementation.
package system

import "time"

// Clock implements monitor.Clock using the wall clock in UTC, so timestamps
// in the state document compare consistently across hosts.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current UTC time.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
