// Package logging records run milestones to a log file and echoes them to
// the console.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

const (
	LevelInfo Level = iota
	LevelCritical
)

func (l Level) String() string {
	if l == LevelCritical {
		return "CRITICAL"
	}
	return "INFO"
}

// ParseLevel parses "INFO" or "CRITICAL" (case-insensitive). DEBUG maps to
// INFO since nothing logs below it.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO", "DEBUG":
		return LevelInfo, nil
	case "CRITICAL":
		return LevelCritical, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

const dateLayout = "02-01-2006 15:04:05"

// FileLogger writes milestone records to a file and the bare message to a
// console writer. Either writer may be nil.
type FileLogger struct {
	mu      sync.Mutex
	file    *log.Logger
	console io.Writer
	closer  io.Closer
	level   Level
	now     func() time.Time
}

// New returns a logger writing records to w and messages to console.
func New(w, console io.Writer, level Level) *FileLogger {
	l := &FileLogger{console: console, level: level, now: time.Now}
	if w != nil {
		l.file = log.New(w, "", 0)
	}
	return l
}

// Open appends to the log file at path, creating it if needed. An empty path
// disables the file and keeps only console output.
func Open(path string, console io.Writer, level Level) (*FileLogger, error) {
	if path == "" {
		return New(nil, console, level), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := New(f, console, level)
	l.closer = f
	return l, nil
}

// Info records a lifecycle milestone.
func (l *FileLogger) Info(msg string) { l.write(LevelInfo, msg) }

// Critical records a failure that ends the run.
func (l *FileLogger) Critical(msg string) { l.write(LevelCritical, msg) }

func (l *FileLogger) write(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.console != nil {
		fmt.Fprintln(l.console, msg)
	}
	if l.file == nil || level < l.level {
		return
	}
	l.file.Printf("Date: %s \nLevel: %s \nMessage: %s\n\n", l.now().Format(dateLayout), level, msg)
}

// Close closes the underlying log file, if any.
func (l *FileLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
