package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logDir      = "logs"
	logFileName = "bpe.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging builds the process logger
// With debug set every level goes to a file under dir, rotated when it grows past maxLogSize
// Otherwise a production logger writes to stderr from level up
// The returned file is nil unless debug is set; the caller closes it
func setupLogging(debug bool, dir string, level zapcore.Level) (*zap.Logger, *os.File, error) {
	if !debug {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		l, err := cfg.Build()
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		return l, nil, nil
	}

	if dir == "" {
		dir = logDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("bpe.%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return nil, nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.DebugLevel)
	return zap.New(core, zap.Development(), zap.AddCaller()), f, nil
}
