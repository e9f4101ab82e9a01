package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newZapBuffer(buf *bytes.Buffer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestNewZapLogger(t *testing.T) {
	var buf bytes.Buffer

	zapAdapter := NewZapLogger(newZapBuffer(&buf), Config{
		LogLevel:      Info,
		SlowThreshold: 100 * time.Millisecond,
	})

	require.NotNil(t, zapAdapter)
	assert.Equal(t, Info, zapAdapter.(*ZapLogger).LogLevel)
	assert.Equal(t, 100*time.Millisecond, zapAdapter.(*ZapLogger).SlowThreshold)
}

func TestZapLogger_LogMode(t *testing.T) {
	logger := NewZapLogger(zap.NewNop(), Config{LogLevel: Error})

	infoLogger := logger.LogMode(Info)
	assert.Equal(t, Info, infoLogger.(*ZapLogger).LogLevel)
	assert.Equal(t, Error, logger.(*ZapLogger).LogLevel)
}

func TestZapLogger_LogLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewZapLogger(newZapBuffer(&buf), Config{LogLevel: Warn})

	logger.Info(ctx, "hidden info")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, "visible warn", "key", "value")
	output := buf.String()
	assert.Contains(t, output, "visible warn")
	assert.Contains(t, output, "value")

	buf.Reset()
	logger.Error(ctx, "visible error")
	assert.Contains(t, buf.String(), "visible error")
}

func TestZapLogger_Trace(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewZapLogger(newZapBuffer(&buf), Config{
		LogLevel:      Info,
		SlowThreshold: 100 * time.Millisecond,
	})

	t.Run("Normal trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM users WHERE id = 5", 1
		}, nil)

		output := buf.String()
		assert.Contains(t, output, "SELECT * FROM users WHERE id = 5")
		assert.Contains(t, output, "rows")
		assert.Contains(t, output, "duration")
	})

	t.Run("Slow query", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now().Add(-150*time.Millisecond), func() (string, int64) {
			return "SELECT * FROM addresses", 1000
		}, nil)

		output := buf.String()
		assert.Contains(t, output, "SLOW SQL executed")
		assert.Contains(t, output, "slow_threshold")
	})

	t.Run("Error trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM missing", -1
		}, assert.AnError)

		output := buf.String()
		assert.Contains(t, output, "SELECT * FROM missing")
		assert.Contains(t, output, assert.AnError.Error())
		assert.NotContains(t, output, `"rows"`)
	})

	t.Run("Silent", func(t *testing.T) {
		buf.Reset()
		logger.LogMode(Silent).Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, assert.AnError)
		assert.Empty(t, buf.String())
	})
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.ErrorLevel, ZapLevel(Error))
	assert.Equal(t, zapcore.WarnLevel, ZapLevel(Warn))
	assert.Equal(t, zapcore.InfoLevel, ZapLevel(Info))
	assert.Equal(t, zapcore.DPanicLevel, ZapLevel(Silent))
}

func TestNewZapLoggerWithConfig(t *testing.T) {
	l, err := NewZapLoggerWithConfig(Config{LogLevel: Warn, SlowThreshold: time.Second})
	require.NoError(t, err)

	zl, ok := l.(*ZapLogger)
	require.True(t, ok)
	assert.Equal(t, Warn, zl.LogLevel)
	assert.False(t, zl.Logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zl.Logger.Core().Enabled(zapcore.WarnLevel))
}
