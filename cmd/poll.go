package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/clicker-session/internal"
	"github.com/spf13/cobra"
)

var pollForce bool

// pollCmd represents the poll command
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Record the results of the latest question",
	Long: `Read the latest question from the session log and add it to the history.

Run this once after each new poll. If the session log has not changed since
the previous poll the command refuses to record it again, because that would
count the same question twice; pass --force to record it anyway.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := sessionStore()
		session, err := store.Load()
		if err != nil {
			return err
		}

		changed, _, err := session.LogChanged()
		if err != nil {
			return err
		}
		if !changed && !pollForce {
			return fmt.Errorf("no new polls in %s since question %d (run a new poll or use --force)", session.LogPath, session.History.Len())
		}

		var result *internal.CycleResult
		err = internal.ShowProgress(context.Background(), "Reading poll results", func() error {
			var cycleErr error
			result, cycleErr = session.RunCycle(classifyOptions())
			return cycleErr
		})
		if err != nil {
			return err
		}
		if result.Stale {
			internal.PrintWarning("Session log unchanged; recorded the same question again")
		}

		if err := store.Save(session); err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderBuckets(result.Question, result.Classification))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pollCmd)
	pollCmd.Flags().BoolVar(&pollForce, "force", false, "Record the question even if the session log is unchanged")
}
