package export

import (
	"fmt"
	"io"

	"github.com/iksnae/clicker-session/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(table *internal.Table, w io.Writer) error
	Extension() string
}

// FileExporter is implemented by formats that must own the output file
type FileExporter interface {
	Exporter
	ExportFile(table *internal.Table, path string) error
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "csv":
		return &CSVExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "sqlite", "db":
		return &SQLiteExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: csv, jsonl, md, yaml, json, sqlite)", format)
	}
}

// Formats lists the accepted format names
func Formats() []string {
	return []string{"csv", "jsonl", "md", "yaml", "json", "sqlite"}
}

// participantRecord is one roster row in structured formats
type participantRecord struct {
	Participant string   `json:"participant" yaml:"participant"`
	Answers     []string `json:"answers" yaml:"answers"`
}

// document is the structured (json/yaml) export layout
type document struct {
	Questions    []string            `json:"questions" yaml:"questions"`
	Participants []participantRecord `json:"participants" yaml:"participants"`
}

func toRecord(row []string) participantRecord {
	rec := participantRecord{Answers: []string{}}
	if len(row) > 0 {
		rec.Participant = row[0]
		rec.Answers = append(rec.Answers, row[1:]...)
	}
	return rec
}

func toDocument(table *internal.Table) document {
	doc := document{
		Questions:    append([]string{}, table.Questions()...),
		Participants: make([]participantRecord, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		doc.Participants = append(doc.Participants, toRecord(row))
	}
	return doc
}
