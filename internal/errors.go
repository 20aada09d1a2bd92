package internal

import (
	"errors"
	"fmt"
)

// ErrNoActiveSession is returned when no session state has been saved
var ErrNoActiveSession = errors.New("no active session (run 'clicker-session start' first)")

// MalformedRosterError represents a roster row that cannot be mapped
type MalformedRosterError struct {
	Path   string
	Line   int
	Fields int
	Err    error
}

func (e *MalformedRosterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed roster %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed roster %s line %d: expected 2 fields (participant,device), got %d", e.Path, e.Line, e.Fields)
}

func (e *MalformedRosterError) Unwrap() error {
	return e.Err
}

// DuplicateDeviceError is returned in strict mode when a device appears on two roster rows
type DuplicateDeviceError struct {
	Device      string
	Line        int
	Participant string
	Previous    string
}

func (e *DuplicateDeviceError) Error() string {
	return fmt.Sprintf("duplicate device %s on roster line %d: already assigned to %q, now %q",
		e.Device, e.Line, e.Previous, e.Participant)
}

// UnrecognizedLogFormatError means the file does not look like a session log
type UnrecognizedLogFormatError struct {
	Path   string
	Reason string
}

func (e *UnrecognizedLogFormatError) Error() string {
	return fmt.Sprintf("unrecognized session log %s: %s", e.Path, e.Reason)
}

// LogParseError represents errors parsing the session log markup
type LogParseError struct {
	Path      string
	Block     int // -1 when the failure is not tied to a block
	Record    int
	Attribute string
	Err       error
}

func (e *LogParseError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("parse error [%s] block %d record %d: missing attribute %q", e.Path, e.Block, e.Record, e.Attribute)
	}
	return fmt.Sprintf("parse error [%s]: %v", e.Path, e.Err)
}

func (e *LogParseError) Unwrap() error {
	return e.Err
}

// UnknownDeviceError means a submission came from a device missing from the roster
type UnknownDeviceError struct {
	Device string
	Choice string
}

func (e *UnknownDeviceError) Error() string {
	if e.Choice == "" {
		return fmt.Sprintf("unknown device %s is not in the roster", e.Device)
	}
	return fmt.Sprintf("unknown device %s (answered %q) is not in the roster", e.Device, e.Choice)
}

// InconsistentHistoryError means participant histories are no longer in lockstep
type InconsistentHistoryError struct {
	Participant string
	Got         int
	Want        int
}

func (e *InconsistentHistoryError) Error() string {
	return fmt.Sprintf("inconsistent history: %q has %d answers, want %d", e.Participant, e.Got, e.Want)
}

// StorageError represents errors accessing session state files
type StorageError struct {
	Path string
	Op   string // "open", "read", "parse", "write"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
