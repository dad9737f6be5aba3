package reminder

import (
	"fmt"
	"time"

	"github.com/ValentinKolb/tKV/app/reminder"
	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initializes the application with a maximum reminder size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
				c, err := newContract(conf)
				if err != nil {
					return err
				}
				msg := reminder.InitMsg{MaxSize: viper.GetUint64("max-size")}
				if err := c.Init(s, env(""), msg); err != nil {
					return err
				}
				return util.Print(cmd.OutOrStdout(), conf.Output, msg, func() string {
					return fmt.Sprintf("initialized successfully (max size %d bytes)", msg.MaxSize)
				})
			})
		},
	}
	recordCmd = &cobra.Command{
		Use:   "record [sender] [reminder]",
		Short: "Records a new reminder for the sender",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, args[0], reminder.HandleMsg{Record: &reminder.RecordMsg{Reminder: args[1]}})
		},
	}
	readCmd = &cobra.Command{
		Use:   "read [sender]",
		Short: "Reads the current reminder of the sender",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, args[0], reminder.HandleMsg{Read: &reminder.ReadMsg{}})
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints how many reminders were recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
				c, err := newContract(conf)
				if err != nil {
					return err
				}
				res, err := c.Query(s, reminder.QueryMsg{Stats: &reminder.StatsMsg{}})
				if err != nil {
					return err
				}
				return util.Print(cmd.OutOrStdout(), conf.Output, res, func() string {
					return fmt.Sprintf("reminder_count=%d", res.Stats.ReminderCount)
				})
			})
		},
	}
)

// handle executes a handle message as sender and prints the response
func handle(cmd *cobra.Command, sender string, msg reminder.HandleMsg) error {
	return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
		c, err := newContract(conf)
		if err != nil {
			return err
		}
		res, err := c.Handle(s, env(sender), msg)
		if err != nil {
			return err
		}
		return util.Print(cmd.OutOrStdout(), conf.Output, res, func() string {
			return formatHandleResponse(res)
		})
	})
}

func formatHandleResponse(res reminder.HandleResponse) string {
	switch {
	case res.Record != nil:
		return res.Record.Status
	case res.Read != nil && res.Read.Reminder != nil:
		ts := time.Unix(int64(*res.Read.Timestamp), 0).UTC().Format(time.RFC3339)
		return fmt.Sprintf("%s\nreminder=%s, recorded=%s", res.Read.Status, *res.Read.Reminder, ts)
	case res.Read != nil:
		return res.Read.Status
	default:
		return ""
	}
}
