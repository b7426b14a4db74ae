package monitor

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies a cycle failure for signatures and owner alerts.
type Category string

// Failure categories recorded in the state document.
const (
	CategoryFetch   Category = "FetchError"
	CategoryExtract Category = "ExtractionError"
	CategoryState   Category = "StateCorruptionError"
	CategoryNotify  Category = "NotificationError"
)

// CycleError is a categorized failure caught at the cycle boundary.
type CycleError struct {
	Category Category
	Err      error
}

// NewCycleError wraps err with a failure category.
func NewCycleError(category Category, err error) *CycleError {
	return &CycleError{Category: category, Err: err}
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}

const maxSignatureLen = 120

// Signature returns a stable identifier for throttling repeated identical
// alerts: the category plus the first line of the message, truncated.
func (e *CycleError) Signature() string {
	msg := e.Err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	sig := string(e.Category) + ": " + msg
	if len(sig) > maxSignatureLen {
		sig = sig[:maxSignatureLen]
	}
	return sig
}

// asCycleError returns err as a *CycleError, wrapping it with the fallback
// category when it is not one already.
func asCycleError(err error, fallback Category) *CycleError {
	var ce *CycleError
	if errors.As(err, &ce) {
		return ce
	}
	return NewCycleError(fallback, err)
}
