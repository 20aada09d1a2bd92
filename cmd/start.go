package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/iksnae/clicker-session/internal"
	"github.com/spf13/cobra"
)

var (
	startRoster string
	startLog    string
	startForce  bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a polling session",
	Long: `Load the roster, read the current question from the session log and
start tracking answers. The first question in the log becomes Question 1.

An active session must be exported (or discarded with --force) before a new
one can be started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if startRoster == "" || startLog == "" {
			return errors.New("both --roster and --log are required")
		}

		store := sessionStore()
		if store.Exists() && !startForce {
			return fmt.Errorf("a session is already active in %s (export it or use --force)", store.Dir())
		}

		rosterPath, err := filepath.Abs(startRoster)
		if err != nil {
			return fmt.Errorf("failed to resolve roster path: %w", err)
		}
		logPath, err := filepath.Abs(startLog)
		if err != nil {
			return fmt.Errorf("failed to resolve log path: %w", err)
		}

		var (
			session *internal.Session
			result  *internal.CycleResult
		)
		steps := []internal.ProgressStep{
			{
				Message: "Loading roster",
				Fn: func() error {
					roster, err := internal.LoadRoster(rosterPath, rosterOptions())
					if err != nil {
						return err
					}
					session = internal.NewSession(roster, rosterPath, logPath)
					return nil
				},
			},
			{
				Message: "Reading poll results",
				Fn: func() error {
					var cycleErr error
					result, cycleErr = session.RunCycle(classifyOptions())
					return cycleErr
				},
			},
			{
				Message: "Saving session",
				Fn: func() error {
					return store.Save(session)
				},
			},
		}
		if err := internal.ShowProgressWithSteps(context.Background(), steps); err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderBuckets(result.Question, result.Classification))
		internal.PrintSuccess(fmt.Sprintf("Session started with %d participant(s); run 'clicker-session poll' after the next question", session.Roster.Len()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVarP(&startRoster, "roster", "r", "", "Roster CSV file (participant,clicker ID)")
	startCmd.Flags().StringVarP(&startLog, "log", "l", "", "Session XML file written by the base station")
	startCmd.Flags().BoolVar(&startForce, "force", false, "Discard an active session")
}
