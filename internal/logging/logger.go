package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a JSON-formatted logrus logger at the configured level.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel converts a string level to a logrus.Level, defaulting to info.
func ParseLevel(level string) logrus.Level {
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

// WithComponent returns an entry tagged with the component name, so log lines
// from the resolver, cache and handlers can be told apart.
func WithComponent(logger *logrus.Logger, component string) *logrus.Entry {
	return logger.WithField("component", component)
}
