package internal

import (
	"fmt"
	"strconv"
)

// ParticipantHeader is the first export column header
const ParticipantHeader = "Student/Team"

// History accumulates each participant's answers, one entry per poll cycle
type History struct {
	Questions int                 `yaml:"questions"`
	Answers   map[string][]string `yaml:"answers"`
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{Answers: make(map[string][]string)}
}

// Append records one poll cycle for every roster participant. Append must be
// called exactly once per cycle. The result is validated before anything is
// written, so a failed call leaves the history untouched.
func (h *History) Append(roster *Roster, result *Classification) error {
	if result == nil {
		return fmt.Errorf("append question %d: nil classification", h.Questions+1)
	}
	for _, participant := range roster.Participants {
		if _, ok := result.Choices[participant]; !ok {
			return fmt.Errorf("append question %d: classification has no entry for %q", h.Questions+1, participant)
		}
		if got := len(h.Answers[participant]); got != h.Questions {
			return &InconsistentHistoryError{Participant: participant, Got: got, Want: h.Questions}
		}
	}

	if h.Answers == nil {
		h.Answers = make(map[string][]string, roster.Len())
	}
	for _, participant := range roster.Participants {
		h.Answers[participant] = append(h.Answers[participant], result.Choices[participant])
	}
	h.Questions++
	return nil
}

// AddParticipant starts a history for a participant who joined mid-session,
// with a blank answer for every question already recorded.
func (h *History) AddParticipant(participant string) {
	if h.Answers == nil {
		h.Answers = make(map[string][]string)
	}
	if _, ok := h.Answers[participant]; ok {
		return
	}
	h.Answers[participant] = make([]string, h.Questions)
}

// Len returns the number of accumulated questions
func (h *History) Len() int {
	return h.Questions
}

// Clone returns a deep copy of the history
func (h *History) Clone() *History {
	c := &History{Questions: h.Questions, Answers: make(map[string][]string, len(h.Answers))}
	for p, answers := range h.Answers {
		c.Answers[p] = append([]string(nil), answers...)
	}
	return c
}

// Table is the flat export layout: header row plus one row per participant
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable lays the history out in roster order. Every participant must
// have the same number of answers.
func BuildTable(h *History, participants []string) (*Table, error) {
	width := 0
	for _, participant := range participants {
		if n := len(h.Answers[participant]); n > width {
			width = n
		}
	}
	for _, participant := range participants {
		if n := len(h.Answers[participant]); n != width {
			return nil, &InconsistentHistoryError{Participant: participant, Got: n, Want: width}
		}
	}

	table := &Table{
		Header: make([]string, 0, width+1),
		Rows:   make([][]string, 0, len(participants)),
	}
	table.Header = append(table.Header, ParticipantHeader)
	for i := 1; i <= width; i++ {
		table.Header = append(table.Header, "Question "+strconv.Itoa(i))
	}
	for _, participant := range participants {
		row := make([]string, 0, width+1)
		row = append(row, participant)
		row = append(row, h.Answers[participant]...)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Questions returns the question column headers
func (t *Table) Questions() []string {
	if len(t.Header) <= 1 {
		return nil
	}
	return t.Header[1:]
}
