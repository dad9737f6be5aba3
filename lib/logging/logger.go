package logging

import (
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// tKVLogger implements the ILogger interface with custom formatting
type tKVLogger struct {
	mu     sync.RWMutex
	name   string
	level  logger.LogLevel
	logger *log.Logger
}

func (l *tKVLogger) SetLevel(level logger.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *tKVLogger) enabled(level logger.LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level >= level
}

func (l *tKVLogger) Debugf(format string, args ...interface{}) {
	if l.enabled(logger.DEBUG) {
		l.log("DEBUG", format, args...)
	}
}

func (l *tKVLogger) Infof(format string, args ...interface{}) {
	if l.enabled(logger.INFO) {
		l.log("INFO", format, args...)
	}
}

func (l *tKVLogger) Warningf(format string, args ...interface{}) {
	if l.enabled(logger.WARNING) {
		l.log("WARN", format, args...)
	}
}

func (l *tKVLogger) Errorf(format string, args ...interface{}) {
	if l.enabled(logger.ERROR) {
		l.log("ERROR", format, args...)
	}
}

func (l *tKVLogger) Panicf(format string, args ...interface{}) {
	if l.enabled(logger.CRITICAL) {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *tKVLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// output is the writer all loggers created by CreateLogger write to.
// Logs go to stderr so that command output on stdout stays machine readable.
var output io.Writer = os.Stderr

// newLogger creates a logger writing to w
func newLogger(pkgName string, w io.Writer) *tKVLogger {
	return &tKVLogger{
		name:   pkgName,
		level:  logger.WARNING,
		logger: log.New(w, "", log.Ldate|log.Ltime),
	}
}

// CreateLogger implements the dragonboat logger.Factory interface
func CreateLogger(pkgName string) logger.ILogger {
	return newLogger(pkgName, output)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// dragonboatLoggers are the package loggers of dragonboat
var dragonboatLoggers = []string{"raft", "raftdb", "rsm", "transport", "dragonboat", "grpc", "util", "logdb", "config", "raftpb"}

// tKVLoggers are the package loggers of this module
var tKVLoggers = []string{"typed", "store", "engine", "reminder", "cli"}

var factoryOnce sync.Once

// InitLoggers installs the custom logger factory and sets the level of all known loggers.
// Dragonboat loggers never log below info, since they are very verbose on debug.
func InitLoggers(level string) error {
	logLevel, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	// Set as the global logger factory for Dragonboat (only once per process)
	factoryOnce.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})

	raftLevel := logLevel
	if raftLevel > logger.INFO {
		raftLevel = logger.INFO
	}
	for _, name := range dragonboatLoggers {
		logger.GetLogger(name).SetLevel(raftLevel)
	}
	for _, name := range tKVLoggers {
		logger.GetLogger(name).SetLevel(logLevel)
	}
	return nil
}
