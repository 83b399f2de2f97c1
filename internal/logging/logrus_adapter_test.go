package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "warn text", level: "warn", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok)
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok)
			}
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_ChainedFields(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.DebugLevel)

	logger.
		WithField(FieldProfileID, "p-1").
		WithFields(Field{Key: FieldOperation, Value: "add_transaction"}).
		WithError(errors.New("disk full")).
		Error("mutation failed")

	output := buf.String()
	assert.Contains(t, output, "mutation failed")
	assert.Contains(t, output, "profile_id=p-1")
	assert.Contains(t, output, "operation=add_transaction")
	assert.Contains(t, output, "disk full")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown", Field{Key: FieldReason, Value: "corrupt"})

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")
	assert.Contains(t, output, "reason=corrupt")
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{
		{Key: "a", Value: "x"},
		{Key: "b", Value: 42},
	})
	assert.Len(t, logrusFields, 2)
	assert.Equal(t, 42, logrusFields["b"])
	assert.Empty(t, convertFields(nil))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldProfileID, "p-1")
	child.WithError(errors.New("boom")).Warn("load fallback")
	mock.Info("plain")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, []Field{{Key: FieldProfileID, Value: "p-1"}}, entries[0].Fields)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.True(t, mock.HasEntry("INFO", "plain"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestDefaultLogger(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	mock := NewMockLogger()
	SetLogger(mock)
	SetLogger(nil)
	assert.Same(t, mock, GetLogger())
	assert.Same(t, mock, OrDefault(nil))

	other := NewMockLogger()
	assert.Same(t, other, OrDefault(other))
}

func TestInterfaces(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
