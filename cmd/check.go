package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/clicker-session/internal"
	"github.com/spf13/cobra"
)

var (
	checkRoster string
	checkLog    string
)

var (
	checkOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	checkWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	checkSectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62")).
				Bold(true).
				Underline(true)
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a roster and session log without recording anything",
	Long: `Check that the roster and the session log can be read and that every
clicker in the latest question is on the roster.

Useful before class, or when 'start' fails with a roster/log mismatch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkRoster == "" || checkLog == "" {
			return errors.New("both --roster and --log are required")
		}
		return runCheck(cmd.OutOrStdout(), checkRoster, checkLog)
	},
}

func runCheck(out io.Writer, rosterPath, logPath string) error {
	fmt.Fprintln(out, checkSectionStyle.Render("Clicker Session Check"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 1: Reading roster...")
	roster, err := internal.LoadRoster(rosterPath, rosterOptions())
	if err != nil {
		fmt.Fprintln(out, checkFailStyle.Render("✗ Roster could not be loaded:"), err)
		return err
	}
	fmt.Fprintln(out, checkOKStyle.Render(fmt.Sprintf("✓ %d participant(s), %d clicker(s)", roster.Len(), len(roster.Devices))))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 2: Reading session log...")
	poll, err := internal.LoadPollLog(logPath)
	if err != nil {
		fmt.Fprintln(out, checkFailStyle.Render("✗ Session log could not be read:"), err)
		return err
	}
	fmt.Fprintln(out, checkOKStyle.Render(fmt.Sprintf("✓ %d question(s); latest has %d response(s)", poll.Blocks, len(poll.Responses))))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 3: Matching clickers to roster...")
	unknown := make([]internal.Response, 0)
	seen := make(map[string]bool)
	for _, resp := range poll.Responses {
		if _, ok := roster.Lookup(resp.Device); !ok && !seen[resp.Device] {
			seen[resp.Device] = true
			unknown = append(unknown, resp)
		}
	}
	if len(unknown) == 0 {
		fmt.Fprintln(out, checkOKStyle.Render("✓ All responding clickers are on the roster"))
		return nil
	}
	for _, resp := range unknown {
		fmt.Fprintf(out, "   %s answered %q\n", resp.Device, resp.Choice)
	}
	if settings.Classify.SkipUnknownDevices {
		fmt.Fprintln(out, checkWarnStyle.Render(fmt.Sprintf("⚠ %d unknown clicker(s) will be skipped", len(unknown))))
		return nil
	}
	err = &internal.UnknownDeviceError{Device: unknown[0].Device, Choice: unknown[0].Choice}
	fmt.Fprintln(out, checkFailStyle.Render(fmt.Sprintf("✗ %d unknown clicker(s); add them to the roster or enable classify.skip_unknown_devices", len(unknown))))
	return err
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkRoster, "roster", "r", "", "Roster CSV file")
	checkCmd.Flags().StringVarP(&checkLog, "log", "l", "", "Session XML file")
}
