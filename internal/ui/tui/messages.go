// Package tui provides a Bubble Tea-based terminal UI for warehouse provisioning.
package tui

import "time"

// PhaseMsg reports progress of a provisioning phase.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// StatusMsg carries the latest observed status of a cloud resource.
type StatusMsg struct {
	Phase    string
	Resource string
	Status   string
	Elapsed  time.Duration
}

// RecordedMsg reports an attribute written back to the configuration file.
type RecordedMsg struct {
	Key   string
	Value string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
