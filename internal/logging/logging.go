package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02 15:04:05"

// New returns a logger writing "time - LEVEL - message" lines to console and,
// when logFile is set, appending the same lines to logFile. A nil console
// logs to the file only. The returned func flushes and closes the file.
func New(level, logFile string, console io.Writer) (*zap.SugaredLogger, func(), error) {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	})
	lvl := parseLevel(level)

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(console)), lvl))
	}
	closeFile := func() {}
	if logFile != "" {
		f, err := openAppend(logFile)
		if err != nil {
			return nil, nil, err
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f), lvl))
		closeFile = func() { f.Close() }
	}

	logger := zap.New(zapcore.NewTee(cores...))
	return logger.Sugar(), func() {
		_ = logger.Sync()
		closeFile()
	}, nil
}

// NewErrorLog returns a logger that appends bare messages to path.
func NewErrorLog(path string) (*zap.SugaredLogger, func(), error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, nil, err
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	logger := zap.New(zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.InfoLevel))
	return logger.Sugar(), func() {
		_ = logger.Sync()
		f.Close()
	}, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
