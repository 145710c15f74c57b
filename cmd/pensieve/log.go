package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates the CLI logger. Logs go to stderr unless a file is
// configured, in which case the file is rotated.
func newLogger(cfg logConfig) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var (
		sink   zapcore.WriteSyncer
		closer io.Closer = nopCloser{}
	)
	if cfg.File == "" {
		sink = zapcore.Lock(os.Stderr)
	} else {
		w := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10,
			MaxBackups: 3,
		}
		sink = zapcore.AddSync(w)
		closer = w
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)
	return zap.New(core), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
