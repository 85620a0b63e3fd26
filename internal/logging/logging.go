// Package logging routes the standard logger to stderr and, when a file is
// configured, to a size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 20
	maxBackups = 5
	maxAgeDays = 30
)

// Setup points the global logger at stderr plus the rotating file at path
// (stderr only when path is empty). The returned writer is meant for other
// loggers such as gorm's, and close flushes the file.
func Setup(path string) (io.Writer, func() error, error) {
	log.SetFlags(log.LstdFlags)
	if path == "" {
		log.SetOutput(os.Stderr)
		return os.Stderr, func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	file := NewRotatingFile(path)
	w := io.MultiWriter(os.Stderr, file)
	log.SetOutput(w)
	return w, file.Close, nil
}

// NewRotatingFile returns a writer that rotates path once it grows past maxSizeMB.
func NewRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
}
