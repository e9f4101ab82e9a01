package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogrusBuffer(buf *bytes.Buffer) *logrus.Logger {
	logrusLogger := logrus.New()
	logrusLogger.SetOutput(buf)
	logrusLogger.SetFormatter(&logrus.JSONFormatter{})
	logrusLogger.SetLevel(logrus.DebugLevel)
	return logrusLogger
}

func TestNewLogrusLogger(t *testing.T) {
	var buf bytes.Buffer

	logrusAdapter := NewLogrusLogger(newLogrusBuffer(&buf), Config{
		LogLevel:      Info,
		SlowThreshold: 100 * time.Millisecond,
	})

	require.NotNil(t, logrusAdapter)
	assert.Equal(t, Info, logrusAdapter.(*LogrusLogger).LogLevel)
	assert.Equal(t, 100*time.Millisecond, logrusAdapter.(*LogrusLogger).SlowThreshold)
}

func TestLogrusLogger_LogLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogrusLogger(newLogrusBuffer(&buf), Config{LogLevel: Info})

	tests := []struct {
		name   string
		level  LogLevel
		logMsg string
	}{
		{"Info level", Info, "Test info message"},
		{"Warn level", Warn, "Test warn message"},
		{"Error level", Error, "Test error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			logger := logger.LogMode(tt.level)

			switch tt.level {
			case Info:
				logger.Info(ctx, tt.logMsg, "key", "value")
			case Warn:
				logger.Warn(ctx, tt.logMsg, "key", "value")
			case Error:
				logger.Error(ctx, tt.logMsg, "key", "value")
			}

			output := buf.String()
			assert.Contains(t, output, tt.logMsg)
			assert.Contains(t, output, "value")
			assert.Contains(t, output, `"file"`)
		})
	}
}

func TestLogrusLogger_Trace(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogrusLogger(newLogrusBuffer(&buf), Config{
		LogLevel:      Warn,
		SlowThreshold: 200 * time.Millisecond,
	})

	logger.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM users", 1
	}, nil)
	assert.Empty(t, buf.String(), "fast queries are only traced at info level")

	logger.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM users", 1
	}, nil)
	assert.Contains(t, buf.String(), "SLOW SQL executed")

	buf.Reset()
	logger.Trace(ctx, time.Now(), func() (string, int64) {
		return "DELETE FROM users", 0
	}, assert.AnError)
	assert.Contains(t, buf.String(), "DELETE FROM users")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
