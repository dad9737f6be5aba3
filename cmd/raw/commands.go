package raw

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/spf13/cobra"
)

// keyResult is the output of get and has
type keyResult struct {
	Key   string `json:"key" yaml:"key"`
	Found bool   `json:"found" yaml:"found"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
				if err := s.Set([]byte(args[0]), []byte(args[1])); err != nil {
					return err
				}
				return util.Print(cmd.OutOrStdout(), conf.Output, keyResult{Key: args[0], Found: true}, func() string {
					return "set successfully"
				})
			})
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
				value, ok, err := s.Get([]byte(args[0]))
				if err != nil {
					return err
				}
				res := keyResult{Key: args[0], Found: ok, Value: string(value)}
				return util.Print(cmd.OutOrStdout(), conf.Output, res, func() string {
					return fmt.Sprintf("key=%s, found=%v, value=%q", res.Key, res.Found, value)
				})
			})
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
				ok, err := s.Has([]byte(args[0]))
				if err != nil {
					return err
				}
				res := keyResult{Key: args[0], Found: ok}
				return util.Print(cmd.OutOrStdout(), conf.Output, res, func() string {
					return fmt.Sprintf("key=%s, found=%v", res.Key, res.Found)
				})
			})
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
				if err := s.Delete([]byte(args[0])); err != nil {
					return err
				}
				return util.Print(cmd.OutOrStdout(), conf.Output, keyResult{Key: args[0]}, func() string {
					return "delete successfully"
				})
			})
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints information about the underlying database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.RunWithStore(cmd, func(conf *util.Config, s *util.Store) error {
				info, err := s.GetDBInfo()
				if err != nil {
					return err
				}
				return util.Print(cmd.OutOrStdout(), conf.Output, info, func() string {
					var sb strings.Builder
					sb.WriteString(fmt.Sprintf("type=%s, entries=%d, size=%d bytes", info.DbType, info.Entries, info.SizeBytes))
					if info.Metadata != nil {
						sb.WriteString(fmt.Sprintf("\n  metadata: %+v", info.Metadata))
					}
					return sb.String()
				})
			})
		},
	}
)
