package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZerologLogger_LogMode(t *testing.T) {
	logger := NewZerologLogger(zerolog.Nop(), Config{LogLevel: Error})

	infoLogger := logger.LogMode(Info)
	assert.Equal(t, Info, infoLogger.(*ZerologLogger).LogLevel)
	assert.Equal(t, Error, logger.(*ZerologLogger).LogLevel)
}

func TestZerologLogger_Messages(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf), Config{LogLevel: Info})

	logger.Info(ctx, "info message", "key", "value")
	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, `"level":"info"`)
	assert.Contains(t, output, "value")

	buf.Reset()
	logger.LogMode(Error).Warn(ctx, "dropped")
	assert.Empty(t, buf.String())
}

func TestZerologLogger_Trace(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf), Config{
		LogLevel:                  Info,
		SlowThreshold:             50 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})

	logger.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM users", 3
	}, nil)
	assert.Contains(t, buf.String(), `"sql":"SELECT * FROM users"`)
	assert.Contains(t, buf.String(), `"rows":3`)

	buf.Reset()
	logger.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM users", 3
	}, nil)
	assert.Contains(t, buf.String(), "SLOW SQL executed")

	buf.Reset()
	logger.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM users", 0
	}, assert.AnError)
	assert.Contains(t, buf.String(), `"level":"error"`)

	buf.Reset()
	logger.LogMode(Error).Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM users", 0
	}, ErrRecordNotFound)
	assert.Empty(t, buf.String())
}

func TestZerologConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologConsoleLogger(&buf, Config{LogLevel: Warn})

	logger.Warn(context.Background(), "console warn")
	assert.Contains(t, buf.String(), "console warn")
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, ZerologLevel(Silent))
	assert.Equal(t, zerolog.ErrorLevel, ZerologLevel(Error))
	assert.Equal(t, zerolog.WarnLevel, ZerologLevel(Warn))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel(Info))
}
