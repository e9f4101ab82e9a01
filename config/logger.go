package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gorm.io/datalayer/logger"
)

// NewLogger builds the logger selected by LogFormat writing to out
func (c *Config) NewLogger(out io.Writer) (logger.Interface, error) {
	switch c.LogFormat {
	case "", "slog":
		return logger.NewSlogLogger(slog.New(slog.NewTextHandler(out, nil)), c.Logger), nil
	case "zap":
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(out),
			logger.ZapLevel(c.Logger.LogLevel),
		)
		return logger.NewZapLogger(zap.New(core), c.Logger), nil
	case "zerolog":
		return logger.NewZerologConsoleLogger(out, c.Logger), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(out)
		return logger.NewLogrusLogger(l, c.Logger), nil
	}
	return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
}
