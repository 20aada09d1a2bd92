package export

import (
	"io"

	"github.com/iksnae/clicker-session/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the session table in YAML format
type YAMLExporter struct{}

// Export exports a session table to YAML format
func (e *YAMLExporter) Export(table *internal.Table, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(toDocument(table)); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
