// Package state defines the persisted monitor state document and its file store.
//
// The JSON shape written here is a public contract: a static status page reads
// the document directly, so field names and types must remain stable.
package state

import "time"

// RunStatus is the recorded outcome of a monitoring cycle.
type RunStatus string

// Run status values persisted in the state document.
const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailure RunStatus = "failure"
)

// Announcement is the last announcement judged new, as persisted for the
// status page. ID is the text plus the PDF URL when one is attached.
type Announcement struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	PDFURL        string    `json:"pdf_url,omitempty"`
	FirstDetected time.Time `json:"first_detected"`
}

// MonitorState is the singleton document rewritten at the end of every cycle.
type MonitorState struct {
	MonitoringEnabled  bool          `json:"monitoring_enabled"`
	LastRunTime        *time.Time    `json:"last_run_time,omitempty"`
	LastRunStatus      RunStatus     `json:"last_run_status,omitempty"`
	LastErrorMessage   string        `json:"last_error_message,omitempty"`
	LastErrorSignature string        `json:"last_error_signature,omitempty"`
	LastErrorTime      *time.Time    `json:"last_error_time,omitempty"`
	LastAnnouncement   *Announcement `json:"last_announcement,omitempty"`
}

// Default returns the state used on a first run or after a corrupt document.
func Default() MonitorState {
	return MonitorState{MonitoringEnabled: true}
}

// ClearError resets the error fields after a successful cycle.
func (s *MonitorState) ClearError() {
	s.LastErrorMessage = ""
	s.LastErrorSignature = ""
	s.LastErrorTime = nil
}

// RecordError stores the failure outcome of a cycle.
func (s *MonitorState) RecordError(message string) {
	s.LastRunStatus = RunStatusFailure
	s.LastErrorMessage = message
}
