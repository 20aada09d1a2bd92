package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/iksnae/clicker-session/internal"
	"github.com/spf13/cobra"
)

var rosterFile string

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Edit the clicker roster",
}

// rosterAddCmd represents the roster add command
var rosterAddCmd = &cobra.Command{
	Use:   "add PARTICIPANT DEVICE",
	Short: "Register a clicker for a student or team",
	Long: `Append a participant,clicker row to the roster file.

Without --roster the active session's roster is edited, and the session
picks up the new clicker on the next poll. A participant who joins
mid-session gets blank answers for the questions already recorded.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		participant, device := args[0], args[1]
		store := sessionStore()

		session, err := store.Load()
		if err != nil && !errors.Is(err, internal.ErrNoActiveSession) {
			return err
		}

		path := rosterFile
		if path == "" {
			if session == nil {
				return errors.New("no active session; pass --roster to edit a roster file")
			}
			path = session.RosterPath
		}
		path, err = filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve roster path: %w", err)
		}

		roster, err := internal.AppendRosterEntry(path, participant, device, rosterOptions())
		if err != nil {
			return err
		}

		if session != nil && session.RosterPath == path {
			if err := session.AddParticipant(participant, device, rosterOptions()); err != nil {
				return err
			}
			if err := store.Save(session); err != nil {
				return err
			}
			internal.LogInfo("Updated roster of session %s", session.ID)
		}

		internal.PrintSuccess(fmt.Sprintf("Clicker %s assigned to %s (%d participant(s) in %s)", device, participant, roster.Len(), path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rosterCmd)
	rosterCmd.AddCommand(rosterAddCmd)
	rosterAddCmd.Flags().StringVarP(&rosterFile, "roster", "r", "", "Roster CSV file (default: the active session's roster)")
}
