// Package logging builds the zap loggers used by the renderer.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Modes accepted by New.
const (
	ModeRelease     = "release"
	ModeDebug       = "debug"
	ModeDevelopment = "development"
	ModeNop         = "nop"
)

// New returns a logger for mode.
//
// "release" builds a JSON production logger, "debug" and "development" a
// console logger with colored levels, and "" or "nop" a logger that discards
// everything.
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeNop:
		return zap.NewNop(), nil
	case ModeRelease:
		config = zap.NewProductionConfig()
	case ModeDebug, ModeDevelopment:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, errors.Errorf("unknown log mode %q", mode)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger, nil
}

// ValidMode reports whether New accepts mode.
func ValidMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeNop, ModeRelease, ModeDebug, ModeDevelopment:
		return true
	}
	return false
}

// Sync flushes logger, ignoring the errors stderr/stdout return on some
// platforms.
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
