package export

import (
	"strings"
	"testing"

	"github.com/iksnae/clicker-session/internal"
)

// twoPollTable is the Alice/Bob session after one answered poll and one empty poll
func twoPollTable(t *testing.T) *internal.Table {
	t.Helper()
	roster, err := internal.ParseRoster(strings.NewReader("Alice,100\nBob,101\n"), internal.RosterOptions{})
	if err != nil {
		t.Fatalf("ParseRoster() error = %v", err)
	}

	history := internal.NewHistory()
	polls := []*internal.PollResponses{
		{Responses: []internal.Response{{Device: "100", Choice: "A"}, {Device: "101", Choice: "C"}}},
		{},
	}
	for _, poll := range polls {
		result, err := internal.Classify(roster, poll, internal.ClassifyOptions{})
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if err := history.Append(roster, result); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	table, err := internal.BuildTable(history, roster.Participants)
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}
	return table
}
