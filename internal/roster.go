package internal

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// RosterOptions controls how a roster file is interpreted
type RosterOptions struct {
	// RejectDuplicateDevices fails the load when a device ID appears twice.
	// Otherwise the last row for a device wins.
	RejectDuplicateDevices bool
}

// Roster maps response devices to participants and remembers file order
type Roster struct {
	Participants []string          `yaml:"participants"`
	Devices      map[string]string `yaml:"devices"` // device -> participant
}

// Lookup resolves a device ID to its participant
func (r *Roster) Lookup(device string) (string, bool) {
	p, ok := r.Devices[device]
	return p, ok
}

// Len returns the number of participants
func (r *Roster) Len() int {
	return len(r.Participants)
}

// Has reports whether participant is on the roster
func (r *Roster) Has(participant string) bool {
	for _, p := range r.Participants {
		if p == participant {
			return true
		}
	}
	return false
}

// Add registers device for participant, appending the participant if new.
// An empty device lists the participant without mapping anything.
func (r *Roster) Add(participant, device string, opts RosterOptions) error {
	_, err := r.add(participant, device, opts)
	return err
}

// add returns the previous owner when device changes hands
func (r *Roster) add(participant, device string, opts RosterOptions) (string, error) {
	var reassigned string
	if device != "" {
		if prev, ok := r.Devices[device]; ok && prev != participant {
			if opts.RejectDuplicateDevices {
				return "", &DuplicateDeviceError{Device: device, Participant: participant, Previous: prev}
			}
			reassigned = prev
		}
		if r.Devices == nil {
			r.Devices = make(map[string]string)
		}
		r.Devices[device] = participant
	}
	if !r.Has(participant) {
		r.Participants = append(r.Participants, participant)
	}
	return reassigned, nil
}

// LoadRoster reads a participant,device CSV file
func LoadRoster(path string, opts RosterOptions) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	roster, err := parseRoster(f, path, opts)
	if err != nil {
		return nil, err
	}
	LogDebug("Loaded roster %s: %d participant(s), %d device(s)", path, roster.Len(), len(roster.Devices))
	return roster, nil
}

// ParseRoster parses roster rows from r
func ParseRoster(r io.Reader, opts RosterOptions) (*Roster, error) {
	return parseRoster(r, "<input>", opts)
}

func parseRoster(r io.Reader, name string, opts RosterOptions) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	roster := &Roster{
		Participants: make([]string, 0),
		Devices:      make(map[string]string),
	}
	deviceLine := make(map[string]int)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.StartLine
			}
			return nil, &MalformedRosterError{Path: name, Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, &MalformedRosterError{Path: name, Line: line, Fields: len(record)}
		}

		participant := strings.TrimSpace(record[0])
		device := strings.TrimSpace(record[1])
		if device == "" {
			LogDebug("Roster line %d: %q has no clicker", line, participant)
		}

		prev, err := roster.add(participant, device, opts)
		if err != nil {
			var dup *DuplicateDeviceError
			if errors.As(err, &dup) {
				dup.Line = line
			}
			return nil, err
		}
		if prev != "" {
			LogWarn("Device %s on line %d reassigned from %q to %q (first seen on line %d)",
				device, line, prev, participant, deviceLine[device])
		}
		if device != "" {
			deviceLine[device] = line
		}
	}

	return roster, nil
}

// AppendRosterEntry adds a participant,device row to the roster file at path
// and returns the updated roster. The file is validated first and rewritten
// atomically, so a rejected entry leaves it untouched.
func AppendRosterEntry(path, participant, device string, opts RosterOptions) (*Roster, error) {
	participant = strings.TrimSpace(participant)
	device = strings.TrimSpace(device)
	if participant == "" || device == "" {
		return nil, errors.New("participant and device are both required")
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	roster, err := parseRoster(bytes.NewReader(data), path, opts)
	if err != nil {
		return nil, err
	}
	if owner, ok := roster.Lookup(device); ok && owner == participant {
		LogInfo("Device %s already belongs to %q", device, participant)
		return roster, nil
	}
	prev, err := roster.add(participant, device, opts)
	if err != nil {
		return nil, err
	}
	if prev != "" {
		LogWarn("Device %s reassigned from %q to %q", device, prev, participant)
	}

	var buf bytes.Buffer
	buf.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteByte('\n')
	}
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{participant, device}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	if err := WriteFileAtomic(path, ".roster-*.csv.tmp", buf.Bytes()); err != nil {
		return nil, &StorageError{Path: path, Op: "write", Err: err}
	}
	return roster, nil
}
