// Package cmd implements the command-line interface tkv. It provides a hierarchical
// command structure for running the reminder application and for inspecting the raw
// key-value store underneath it.
//
// The package is organized into several subpackages:
//
//   - reminder: Commands of the reminder application (init, record, read, stats)
//   - raw: Commands for raw key-value store operations (get, set, has, del, info)
//   - util: Shared utilities for configuration, engine setup and output (internal use)
//
// See tkv -help for a list of all commands.
package cmd
