package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show who picked which answer on the last question",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := sessionStore().Load()
		if err != nil {
			return err
		}
		if session.Last == nil {
			return errors.New("no question has been recorded yet")
		}

		fmt.Fprint(cmd.OutOrStdout(), renderBuckets(session.History.Len(), session.Last))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
