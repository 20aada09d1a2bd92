package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/clicker-session/internal"
)

// MarkdownExporter exports the session table as a Markdown table
type MarkdownExporter struct{}

// Export exports a session table to Markdown format
func (e *MarkdownExporter) Export(table *internal.Table, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Polling Session\n\n")
	_, _ = fmt.Fprintf(w, "**Participants:** %d  \n", len(table.Rows))
	_, _ = fmt.Fprintf(w, "**Questions:** %d\n\n", len(table.Questions()))

	writeRow(w, table.Header)
	sep := make([]string, len(table.Header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(w, sep)

	for _, row := range table.Rows {
		writeRow(w, row)
	}

	return nil
}

func writeRow(w io.Writer, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCell(c)
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | "))
}

// escapeCell escapes characters that would break a table cell
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "\n", " ")
	return text
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
