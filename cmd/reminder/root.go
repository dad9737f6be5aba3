package reminder

import (
	"time"

	"github.com/ValentinKolb/tKV/app/reminder"
	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/ident"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// ReminderCommands represents the reminder command group
	ReminderCommands = &cobra.Command{
		Use:   "reminder",
		Short: "Record and read reminders",
		Long: `Every sender can record one reminder and read it back later.
Run "tkv reminder init" once before recording reminders.`,
	}
)

func init() {
	key := "time"
	ReminderCommands.PersistentFlags().Uint64(key, 0, util.WrapString("The time of the message in seconds since the epoch (default now)"))

	key = "max-size"
	initCmd.Flags().Uint64(key, 128, util.WrapString("The maximum size of a reminder in bytes"))

	// Add subcommands
	ReminderCommands.AddCommand(initCmd)
	ReminderCommands.AddCommand(recordCmd)
	ReminderCommands.AddCommand(readCmd)
	ReminderCommands.AddCommand(statsCmd)
}

// newContract creates the reminder application for the configured codec and key layout
func newContract(conf *util.Config) (*reminder.Contract, error) {
	opts, err := conf.CatalogOptions()
	if err != nil {
		return nil, err
	}
	return reminder.New(reminder.NewCatalog(opts...)), nil
}

// env creates the message environment for sender
func env(sender string) reminder.Env {
	t := viper.GetUint64("time")
	if t == 0 {
		t = uint64(time.Now().Unix())
	}
	return reminder.Env{Sender: ident.HumanAddr(sender), Time: t}
}
