package logger

import (
	"fmt"
	"strings"

	"article-crew/internal/application/port/output"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type Config struct {
	Level  string
	Format string
}

type LoggerAdapter struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
	}
}

func NewLoggerAdapter(cfg Config) (*LoggerAdapter, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	case "json", "":
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	base, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return newAdapter(base), nil
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(base *zap.Logger) *LoggerAdapter {
	return newAdapter(base)
}

// NewNop returns a logger that discards everything.
func NewNop() *LoggerAdapter {
	return newAdapter(zap.NewNop())
}

func newAdapter(base *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		base:  base,
		sugar: base.Sugar(),
	}
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return newAdapter(l.base.With(zap.Any(key, value)))
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	zfields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zfields = append(zfields, zap.Any(k, v))
	}
	return newAdapter(l.base.With(zfields...))
}

func (l *LoggerAdapter) Close() error {
	// Sync fails on stdout/stderr for some platforms; nothing to recover.
	_ = l.base.Sync()
	return nil
}
