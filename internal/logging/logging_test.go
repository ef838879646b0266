package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 2, 6, 9, 30, 0, 0, time.UTC)
}

func TestRecordFormat(t *testing.T) {
	var file, console bytes.Buffer
	l := New(&file, &console, LevelInfo)
	l.now = fixedClock

	l.Info("Preparing data.")

	want := "Date: 06-02-2026 09:30:00 \nLevel: INFO \nMessage: Preparing data.\n\n"
	if file.String() != want {
		t.Errorf("expected %q, got %q", want, file.String())
	}
	if console.String() != "Preparing data.\n" {
		t.Errorf("expected console echo, got %q", console.String())
	}
}

func TestLevelThreshold(t *testing.T) {
	var file bytes.Buffer
	l := New(&file, nil, LevelCritical)
	l.now = fixedClock

	l.Info("skipped")
	l.Critical("Invalid deliverable mode.")

	if strings.Contains(file.String(), "skipped") {
		t.Error("expected info record to be filtered")
	}
	if !strings.Contains(file.String(), "Level: CRITICAL \nMessage: Invalid deliverable mode.") {
		t.Errorf("expected critical record, got %q", file.String())
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "logging.log")

	for i := 0; i < 2; i++ {
		l, err := Open(path, nil, LevelInfo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		l.Info("Starting program.")
		if err := l.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(data), "Message: Starting program."); n != 2 {
		t.Errorf("expected 2 records, got %d", n)
	}
}

func TestOpenEmptyPathConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	l, err := Open("", &console, LevelInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("hello")
	if err := l.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if console.String() != "hello\n" {
		t.Errorf("expected console output, got %q", console.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"INFO", LevelInfo, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"DEBUG", LevelInfo, false},
		{"critical", LevelCritical, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q): unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
