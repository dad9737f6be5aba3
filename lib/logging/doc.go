// Package logging configures the dragonboat logger package for tKV.
//
// All packages of this module obtain their logger with logger.GetLogger(name), the
// same way dragonboat does. InitLoggers installs CreateLogger as the logger factory
// (format "LEVEL | name | message", written to stderr) and sets the level of the
// dragonboat and tKV loggers from a string (debug, info, warn, error).
package logging
