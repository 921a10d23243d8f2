package log

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Output goes to stderr so that stdout
// only carries the report. The returned entry satisfies usecase.Logger.
func NewLogger(level, format string) *logrus.Entry {
	return newLogger(os.Stderr, level, format)
}

// Discard is a logger that drops everything, for tests and quiet runs.
func Discard() *logrus.Entry {
	return newLogger(io.Discard, "error", "text")
}

func newLogger(out io.Writer, level, format string) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parseLevel(level))

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logrus.NewEntry(logger)
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
