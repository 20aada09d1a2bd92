package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/clicker-session/internal"
	"github.com/spf13/cobra"
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	statusCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	statusStaleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionStore().Load()
		if errors.Is(err, internal.ErrNoActiveSession) {
			fmt.Fprintln(cmd.OutOrStdout(), "No active session.")
			return nil
		}
		if err != nil {
			return err
		}
		return writeStatus(cmd.OutOrStdout(), session)
	},
}

func writeStatus(out io.Writer, session *internal.Session) error {
	fmt.Fprintln(out, statusTitleStyle.Render("Polling session "+session.ID))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Roster:\t%s\n", session.RosterPath)
	fmt.Fprintf(w, "Participants:\t%s\n", statusCountStyle.Render(fmt.Sprint(session.Roster.Len())))
	fmt.Fprintf(w, "Questions:\t%s\n", statusCountStyle.Render(fmt.Sprint(session.History.Len())))
	fmt.Fprintf(w, "Session log:\t%s\n", session.LogPath)
	fmt.Fprintf(w, "Started:\t%s\n", humanize.Time(session.StartedAt))
	fmt.Fprintf(w, "Last poll:\t%s\n", humanize.Time(session.UpdatedAt))

	if info, err := os.Stat(session.LogPath); err != nil {
		fmt.Fprintf(w, "Log modified:\t%s\n", statusStaleStyle.Render("unavailable: "+err.Error()))
	} else if info.ModTime().Equal(session.LogModTime) {
		fmt.Fprintf(w, "Log modified:\t%s\n", statusStaleStyle.Render(humanize.Time(info.ModTime())+" (no new poll)"))
	} else {
		fmt.Fprintf(w, "Log modified:\t%s\n", humanize.Time(info.ModTime())+" (new poll available)")
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
