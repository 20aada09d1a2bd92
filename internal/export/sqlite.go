package export

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/iksnae/clicker-session/internal"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE participants (
	position    INTEGER PRIMARY KEY,
	participant TEXT NOT NULL UNIQUE
);
CREATE TABLE responses (
	participant TEXT NOT NULL REFERENCES participants(participant),
	question    INTEGER NOT NULL,
	choice      TEXT NOT NULL,
	PRIMARY KEY (participant, question)
);`

// SQLiteExporter writes the session table into a SQLite database file
type SQLiteExporter struct{}

// Export is not supported for SQLite; the database must be written to a path
func (e *SQLiteExporter) Export(table *internal.Table, w io.Writer) error {
	return errors.New("sqlite export requires a file path")
}

// ExportFile creates the participants and responses tables in a new database at path
func (e *SQLiteExporter) ExportFile(table *internal.Table, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, row := range table.Rows {
		rec := toRecord(row)
		if _, err := tx.Exec("INSERT INTO participants (position, participant) VALUES (?, ?)", i+1, rec.Participant); err != nil {
			return fmt.Errorf("insert participant %q: %w", rec.Participant, err)
		}
		for q, choice := range rec.Answers {
			if _, err := tx.Exec("INSERT INTO responses (participant, question, choice) VALUES (?, ?, ?)", rec.Participant, q+1, choice); err != nil {
				return fmt.Errorf("insert response %q question %d: %w", rec.Participant, q+1, err)
			}
		}
	}

	return tx.Commit()
}

// Extension returns the file extension for this format
func (e *SQLiteExporter) Extension() string {
	return "db"
}
