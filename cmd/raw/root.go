package raw

import (
	"github.com/spf13/cobra"
)

var (
	// RawCommands represents the raw command group
	RawCommands = &cobra.Command{
		Use:   "raw",
		Short: "Perform raw key-value store operations",
		Long: `Reads and writes the raw bytes of the store, bypassing the typed layer.
Keys written by the typed layer are tagged ('s' + key for static keys).`,
	}
)

func init() {
	// Add subcommands
	RawCommands.AddCommand(setCmd)
	RawCommands.AddCommand(getCmd)
	RawCommands.AddCommand(hasCmd)
	RawCommands.AddCommand(delCmd)
	RawCommands.AddCommand(infoCmd)
}
