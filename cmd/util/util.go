package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/ValentinKolb/tKV/lib/typed/codec"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables (e.g. TKV_DATA_DIR)
	EnvPrefix = "tkv"
)

// Supported engines
const (
	EngineMaple   = "maple"
	EngineLevelDB = "leveldb"
	EngineSQLite  = "sqlite"
	EngineRaft    = "raft"
)

// Supported output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the configuration shared by all commands
type Config struct {
	Engine   string
	DataDir  string
	Codec    string
	RawKeys  bool
	LogLevel string
	Metrics  bool
	Output   string
}

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+len(word) > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += len(word)
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupFlags adds the flags shared by all commands to cmd
func SetupFlags(cmd *cobra.Command) {
	key := "engine"
	cmd.PersistentFlags().String(key, EngineMaple, WrapString("The storage engine (maple, leveldb, sqlite, raft). maple keeps the data in memory and writes a snapshot to the data dir on exit, raft runs a single replica RAFT shard"))

	key = "data-dir"
	cmd.PersistentFlags().String(key, "data", WrapString("The directory the engine stores its data in"))

	key = "codec"
	cmd.PersistentFlags().String(key, "msgpack", WrapString("The codec used to encode values (msgpack, gob, json). Values written with one codec cannot be read with another"))

	key = "raw-keys"
	cmd.PersistentFlags().Bool(key, false, WrapString("Store values under the bare static key or identifier instead of a tagged key"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "metrics"
	cmd.PersistentFlags().Bool(key, false, WrapString("Print the store metrics in Prometheus format to stderr on exit"))

	key = "output"
	cmd.PersistentFlags().StringP(key, "o", OutputText, WrapString("The output format (text, json, yaml)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetConfig reads the configuration from viper and validates it
func GetConfig() (*Config, error) {
	conf := &Config{
		Engine:   viper.GetString("engine"),
		DataDir:  viper.GetString("data-dir"),
		Codec:    viper.GetString("codec"),
		RawKeys:  viper.GetBool("raw-keys"),
		LogLevel: viper.GetString("log-level"),
		Metrics:  viper.GetBool("metrics"),
		Output:   viper.GetString("output"),
	}
	return conf, conf.Validate()
}

// Validate checks all enumerated values of the configuration
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineMaple, EngineLevelDB, EngineSQLite, EngineRaft:
	default:
		return fmt.Errorf("invalid engine %q (expected one of maple, leveldb, sqlite, raft)", c.Engine)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format %q (expected one of text, json, yaml)", c.Output)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	cdc, err := codec.ByName(c.Codec)
	if err != nil {
		return err
	}
	// the binary codec needs encoding.BinaryMarshaler, which no stored type implements
	switch cdc.Name() {
	case "msgpack", "gob", "json":
		return nil
	default:
		return fmt.Errorf("codec %q is not supported by the cli (expected one of msgpack, gob, json)", c.Codec)
	}
}

// CatalogOptions returns the typed options for the configured codec and key layout
func (c *Config) CatalogOptions() ([]typed.Option, error) {
	cdc, err := codec.ByName(c.Codec)
	if err != nil {
		return nil, err
	}
	opts := []typed.Option{typed.WithCodec(cdc)}
	if c.RawKeys {
		opts = append(opts, typed.WithRawKeys())
	}
	return opts, nil
}

// String returns a human readable representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Storage")
	addField("Engine", c.Engine)
	addField("Data Dir", c.DataDir)

	addSection("Encoding")
	addField("Codec", c.Codec)
	keys := "namespaced"
	if c.RawKeys {
		keys = "raw"
	}
	addField("Keys", keys)

	addSection("Output")
	addField("Format", c.Output)
	addField("Log Level", c.LogLevel)
	addField("Metrics", fmt.Sprintf("%t", c.Metrics))

	return sb.String()
}
