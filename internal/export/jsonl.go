package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/clicker-session/internal"
)

// JSONLExporter exports one participant per line
type JSONLExporter struct{}

// Export exports a session table to JSONL format
func (e *JSONLExporter) Export(table *internal.Table, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, row := range table.Rows {
		if err := enc.Encode(toRecord(row)); err != nil {
			return fmt.Errorf("failed to encode participant: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
