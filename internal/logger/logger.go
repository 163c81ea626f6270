// Package logger provides structured logging using zerolog.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance. It defaults to a console writer at
// info level; Setup reconfigures it from loaded configuration.
var Log zerolog.Logger

func init() {
	Log = consoleLogger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Setup applies the configured log level and output format.
func Setup(level string, json bool) {
	if json {
		Log = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		Log = consoleLogger()
	}
	zerolog.SetGlobalLevel(parseLevel(level))
}

func consoleLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
