// Package logging builds the file-backed logger shared across the app.
// The TUI owns stdout, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Open creates a logger writing to a dated file under dir. The caller
// closes the returned closer on shutdown.
func Open(dir string, debug bool) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	name := fmt.Sprintf("gazette-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
	return logger, f, nil
}

// Nop returns a logger that discards everything. Tests use it so
// components can log unconditionally.
func Nop() *log.Logger {
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel + 1)
	return logger
}
