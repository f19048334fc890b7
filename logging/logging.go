package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir      = "logs"
	logFileName = "alert-fx.log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// DefaultPath is the log file used when no path is given
func DefaultPath() string {
	return filepath.Join(logDir, logFileName)
}

// Setup builds the process logger
// The terminal owns stdout, so without debug every record is discarded;
// with debug, JSON records go to a rotating file at path
func Setup(debug bool, path string) (*slog.Logger, io.Closer) {
	if !debug {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		// SetDefault redirects the log package; discard after it
		log.SetOutput(io.Discard)
		return logger, nopCloser{}
	}

	if path == "" {
		path = DefaultPath()
	}
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}

	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	log.SetOutput(writer)
	return logger, writer
}
