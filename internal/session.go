package internal

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Session is the state carried from one poll cycle to the next
type Session struct {
	ID         string          `yaml:"id"`
	RosterPath string          `yaml:"roster_path"`
	LogPath    string          `yaml:"log_path"`
	LogModTime time.Time       `yaml:"log_mod_time"`
	StartedAt  time.Time       `yaml:"started_at"`
	UpdatedAt  time.Time       `yaml:"updated_at"`
	Roster     *Roster         `yaml:"roster"`
	History    *History        `yaml:"history"`
	Last       *Classification `yaml:"last,omitempty"`
}

// CycleResult describes one completed poll cycle
type CycleResult struct {
	Question       int
	Classification *Classification
	Responses      int
	Stale          bool // log modification time unchanged since the previous cycle
	LogModTime     time.Time
}

// NewSession starts an empty session over a loaded roster
func NewSession(roster *Roster, rosterPath, logPath string) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.NewString(),
		RosterPath: rosterPath,
		LogPath:    logPath,
		StartedAt:  now,
		UpdatedAt:  now,
		Roster:     roster,
		History:    NewHistory(),
	}
}

// LogChanged reports whether the session log was modified since the last
// accepted cycle, along with its current modification time.
func (s *Session) LogChanged() (bool, time.Time, error) {
	info, err := os.Stat(s.LogPath)
	if err != nil {
		return false, time.Time{}, &StorageError{Path: s.LogPath, Op: "stat", Err: err}
	}
	modTime := info.ModTime()
	return !modTime.Equal(s.LogModTime), modTime, nil
}

// RunCycle parses the latest question block, classifies it and appends it
// to the history. On error the session is left unchanged.
func (s *Session) RunCycle(opts ClassifyOptions) (*CycleResult, error) {
	changed, modTime, err := s.LogChanged()
	if err != nil {
		return nil, err
	}
	stale := !changed && s.History.Len() > 0

	poll, err := LoadPollLog(s.LogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read poll results: %w", err)
	}
	result, err := Classify(s.Roster, poll, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to classify poll results: %w", err)
	}
	if err := s.History.Append(s.Roster, result); err != nil {
		return nil, fmt.Errorf("failed to record poll results: %w", err)
	}

	s.Last = result
	s.LogModTime = modTime
	s.UpdatedAt = time.Now()

	LogInfo("Recorded question %d: %d response(s)", s.History.Len(), len(poll.Responses))
	return &CycleResult{
		Question:       s.History.Len(),
		Classification: result,
		Responses:      len(poll.Responses),
		Stale:          stale,
		LogModTime:     modTime,
	}, nil
}

// AddParticipant maps device to participant in the session roster. A new
// participant gets blank answers for the questions already recorded.
func (s *Session) AddParticipant(participant, device string, opts RosterOptions) error {
	if err := s.Roster.Add(participant, device, opts); err != nil {
		return err
	}
	if s.History.Len() > 0 {
		s.History.AddParticipant(participant)
	}
	s.UpdatedAt = time.Now()
	return nil
}

// Table builds the export table for the session so far
func (s *Session) Table() (*Table, error) {
	return BuildTable(s.History, s.Roster.Participants)
}
