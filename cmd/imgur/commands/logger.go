package commands

import (
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for --log-file.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 2
	logMaxAgeDays = 28
)

// slogLogger adapts a *slog.Logger to imgur.Logger.
type slogLogger struct {
	logger *slog.Logger
}

// newLogger logs to stderr, or to a rotating file when path is set. Only
// warnings and errors are written unless verbose is on.
func newLogger(path string, verbose bool) (imgur.Logger, error) {
	var out io.Writer = os.Stderr
	if path != "" {
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})

	return &slogLogger{logger: slog.New(handler)}, nil
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, attrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, attrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, attrs(fields)...)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, attrs(fields)...)
}

// attrs orders fields by key so log lines are stable.
func attrs(fields map[string]interface{}) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, slog.Any(key, fields[key]))
	}

	return args
}
