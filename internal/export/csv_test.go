package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iksnae/clicker-session/internal"
)

func TestCSVExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(twoPollTable(t), &buf); err != nil {
		t.Fatalf("CSVExporter.Export() error = %v", err)
	}

	want := "Student/Team,Question 1,Question 2\nAlice,A,\nBob,C,\n"
	if got := buf.String(); got != want {
		t.Errorf("CSVExporter.Export() = %q, want %q", got, want)
	}
}

func TestCSVExporter_MinimalQuoting(t *testing.T) {
	table := &internal.Table{
		Header: []string{"Student/Team", "Question 1"},
		Rows: [][]string{
			{"Doe, Jane", "A"},
			{"Team 2", ""},
		},
	}

	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(table, &buf); err != nil {
		t.Fatalf("CSVExporter.Export() error = %v", err)
	}

	want := "Student/Team,Question 1\n\"Doe, Jane\",A\nTeam 2,\n"
	if got := buf.String(); got != want {
		t.Errorf("CSVExporter.Export() = %q, want %q", got, want)
	}
}

func TestCSVExporter_RoundTrip(t *testing.T) {
	table := twoPollTable(t)

	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(table, &buf); err != nil {
		t.Fatalf("CSVExporter.Export() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	want := append([][]string{table.Header}, table.Rows...)
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVExporter_Extension(t *testing.T) {
	if got := (&CSVExporter{}).Extension(); got != "csv" {
		t.Errorf("CSVExporter.Extension() = %v, want csv", got)
	}
}
