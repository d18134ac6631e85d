package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"academy-service/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. When cfg.Dir is set, output is also
// appended to a daily file named log_YYYY-MM-DD.log inside that directory.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if !cfg.JSON {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stdout"}

	if cfg.Dir != "" {
		path, err := dailyLogFile(cfg.Dir, time.Now())
		if err != nil {
			return nil, err
		}
		zcfg.OutputPaths = append(zcfg.OutputPaths, path)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func dailyLogFile(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("log_%s.log", now.Format("2006-01-02"))), nil
}
