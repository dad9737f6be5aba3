package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/tKV/cmd/raw"
	"github.com/ValentinKolb/tKV/cmd/reminder"
	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/logging"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "tkv",
		Short: "typed key-value persistence",
		Long: fmt.Sprintf(`tKV (v%s)

Typed persistence over opaque key-value stores. Values are encoded with
a codec and stored under a fixed key per type or under a key derived from
an identifier, on an in-memory, LevelDB, SQLite or single node RAFT engine.

All flags can be set as environment variables with the prefix TKV_
(e.g. TKV_DATA_DIR=/var/lib/tkv).`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: processConfig,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tKV",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tKV v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(reminder.ReminderCommands)
	RootCmd.AddCommand(raw.RawCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupFlags(RootCmd)
}

// processConfig binds the flags to viper and sets the log level
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	conf, err := util.GetConfig()
	if err != nil {
		return err
	}
	return logging.InitLoggers(conf.LogLevel)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
