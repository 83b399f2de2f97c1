package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter is the Logger used outside tests. Derived loggers share the
// underlying logrus.Logger and extend its entry.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// Configure applies a level name and a format ("json" or "text") to logger.
// An unknown level falls back to info with a warning.
func Configure(logger *logrus.Logger, level, format string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// NewLogrusAdapter returns a Logger writing to stderr at level in format.
func NewLogrusAdapter(level, format string) Logger {
	logger := logrus.New()
	Configure(logger, level, format)
	return NewLogrusAdapterFromLogger(logger)
}

// NewLogrusAdapterFromLogger wraps an existing logrus.Logger, so the CLI and
// the container log through the same sink.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{logger: logger, entry: logrus.NewEntry(logger)}
}

func (l *LogrusAdapter) derive(entry *logrus.Entry) Logger {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

func (l *LogrusAdapter) with(fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(convertFields(fields))
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) { l.with(fields).Debug(msg) }
func (l *LogrusAdapter) Info(msg string, fields ...Field)  { l.with(fields).Info(msg) }
func (l *LogrusAdapter) Warn(msg string, fields ...Field)  { l.with(fields).Warn(msg) }
func (l *LogrusAdapter) Error(msg string, fields ...Field) { l.with(fields).Error(msg) }

// Fatal logs and exits the process.
func (l *LogrusAdapter) Fatal(msg string, fields ...Field) { l.with(fields).Fatal(msg) }

func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.with(fields))
}

func convertFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
