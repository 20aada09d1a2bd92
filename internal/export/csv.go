package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iksnae/clicker-session/internal"
)

// CSVExporter writes the session table as comma-delimited text
type CSVExporter struct{}

// Export writes the header row followed by one row per participant
func (e *CSVExporter) Export(table *internal.Table, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %q: %w", row[0], err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
