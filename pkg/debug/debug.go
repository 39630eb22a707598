// Package debug mirrors log output into a file next to the executable.
package debug

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var ErrNotStarted = errors.New("debug log not started")

var (
	mu sync.Mutex
	fh *os.File
)

// Start opens path for appending. Calling Start again switches files.
func Start(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	mu.Lock()
	old := fh
	fh = f
	mu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Log writes msg with a timestamp and the caller's file and line.
func Log(msg string) {
	timeStr := time.Now().Format("2006-01-02 15:04:05.000")
	if _, fullPath, line, ok := runtime.Caller(1); ok {
		LogRaw(fmt.Sprintf("%s %s:%d %s", timeStr, filepath.Base(fullPath), line, msg))
		return
	}
	LogRaw(timeStr + " " + msg)
}

func LogRaw(msg string) {
	mu.Lock()
	defer mu.Unlock()
	if fh == nil {
		return
	}
	fh.WriteString(msg + "\n")
}

type writer struct{}

func (writer) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	if fh == nil {
		return 0, ErrNotStarted
	}
	return fh.Write(p)
}

// Writer returns an io.Writer appending to the debug file.
func Writer() io.Writer { return writer{} }

// Handler returns a slog handler writing text records to the debug file.
func Handler(level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(Writer(), &slog.HandlerOptions{Level: level, AddSource: true})
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fh == nil {
		return nil
	}
	fh.Sync()
	err := fh.Close()
	fh = nil
	return err
}
