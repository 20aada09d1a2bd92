package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/clicker-session/internal"
	"github.com/iksnae/clicker-session/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	verbose    bool
	configFile string
	stateDir   string
	settings   config.Config
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clicker-session",
	Short: "Track classroom clicker responses across a polling session",
	Long: `A CLI tool to follow an iClicker polling session from the terminal.

It maps each clicker ID to a student or team using a roster CSV, reads the
latest question from the base station's session XML after every poll, shows
who picked which answer, and keeps a per-student answer history that can be
exported when the session ends.

Typical session:
  clicker-session start --roster class.csv --log L1610141030.xml
  clicker-session poll                  # after each new question
  clicker-session show                  # redisplay the last question
  clicker-session roster add Carol 102  # register an unknown clicker
  clicker-session export --out results.csv`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)

		v := viper.New()
		if cmd.Flags().Changed("state-dir") {
			v.Set(config.KeyStateDir, stateDir)
		}
		file := configFile
		if cmd == configInitCmd {
			// the file is about to be created
			file = ""
		}
		cfg, err := config.Load(v, file)
		if err != nil {
			return err
		}
		settings = cfg
		internal.LogDebug("Using state directory %s", settings.State.Dir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		internal.SyncLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $HOME/.clicker-session/config.toml)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory holding the active session state")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

func sessionStore() *internal.SessionStore {
	return internal.NewSessionStore(settings.State.Dir)
}

func rosterOptions() internal.RosterOptions {
	return internal.RosterOptions{RejectDuplicateDevices: settings.Roster.RejectDuplicateDevices}
}

func classifyOptions() internal.ClassifyOptions {
	return internal.ClassifyOptions{SkipUnknownDevices: settings.Classify.SkipUnknownDevices}
}
