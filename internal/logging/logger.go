package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level. There is no warn level;
// warnings are info lines with a "severity" key.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (expected debug, info or error)", level)
	}
}

// New returns a zap-backed logger writing JSON lines to path. The terminal
// belongs to the UI, so an empty path discards everything. The returned
// func flushes buffered entries.
func New(level, path string) (logr.Logger, func(), error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return logr.Logger{}, nil, err
	}
	if path == "" {
		return logr.Discard(), func() {}, nil
	}

	cfg := zap.NewProductionConfig()
	if zapLevel == zapcore.DebugLevel {
		cfg.Development = true
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, nil, fmt.Errorf("build logger for %s: %w", path, err)
	}
	return zapr.NewLogger(z), func() { _ = z.Sync() }, nil
}
