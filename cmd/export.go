package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/clicker-session/internal"
	"github.com/iksnae/clicker-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	format     string
	outputFile string
	keep       bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the answer history to file",
	Long: `Write every participant's answers, one column per question, in roster order.

The default format is CSV with the header "Student/Team,Question 1,...".
Other formats: ` + strings.Join(export.Formats(), ", ") + `.

Exporting ends the session unless --keep is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("format") {
			format = settings.Export.Format
		}
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		store := sessionStore()
		session, err := store.Load()
		if err != nil {
			return err
		}

		table, err := session.Table()
		if err != nil {
			return fmt.Errorf("failed to build export table: %w", err)
		}

		path := outputFile
		if path == "" {
			path = fmt.Sprintf("session_%s.%s", session.StartedAt.Format("20060102_1504"), exporter.Extension())
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		if err := export.WriteFile(path, exporter, table); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Exported %d question(s) for %d participant(s) to %s", len(table.Questions()), len(table.Rows), path))

		if !keep {
			if err := store.Clear(); err != nil {
				internal.LogWarn("Failed to clear session state: %v", err)
			} else {
				internal.LogInfo("Session ended")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output file (default session_<start time>.<ext>)")
	exportCmd.Flags().BoolVar(&keep, "keep", false, "Keep the session active after exporting")
}
