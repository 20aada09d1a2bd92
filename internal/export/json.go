package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/clicker-session/internal"
)

// JSONExporter exports the session table in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a session table to JSON format
func (e *JSONExporter) Export(table *internal.Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(toDocument(table))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
