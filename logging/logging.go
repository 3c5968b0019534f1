// Package logging builds the zap logger shared by the CLI and the packages it wires.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/drake/oefen/config"
)

// New builds a production zap logger for the given settings.
// verbose forces debug level. When dest is empty the configured file,
// or <config dir>/oefen.log, receives the output so interactive front
// ends keep the terminal to themselves.
func New(cfg config.LoggingConfig, verbose bool, dest string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()

	level, err := zapcore.ParseLevel(orDefault(cfg.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if dest == "" {
		dest = orDefault(cfg.File, config.LogFile())
	}
	if dest != "stderr" && dest != "stdout" {
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	zc.OutputPaths = []string{dest}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
