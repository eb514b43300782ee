// Package log is the file-backed debug logger behind the debug_log
// setting. Lines logged before SetFile runs are kept in memory and
// flushed once a file is chosen, so early startup is not lost.
package log

import (
	stdlog "log"
	"os"
	"sync"
)

type mode int

const (
	buffering mode = iota
	writing
	discarding
)

// sink serializes writes and owns the optional log file.
type sink struct {
	mu      sync.Mutex
	mode    mode
	file    *os.File
	pending []byte
}

var out sink

var logger = stdlog.New(&out, "", stdlog.LstdFlags|stdlog.Lmicroseconds)

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case discarding:
		return len(p), nil
	case writing:
		n, err := s.file.Write(p)
		// Flush per line so the log survives a crash.
		_ = s.file.Sync()
		return n, err
	default:
		s.pending = append(s.pending, p...)
		return len(p), nil
	}
}

// SetFile directs the log to path, creating the file when missing and
// flushing anything buffered so far. An empty path drops buffered and
// future lines. An open error also switches to discarding, so a bad
// path cannot grow the buffer forever.
func SetFile(path string) error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file != nil {
		_ = out.file.Close()
		out.file = nil
	}
	if path == "" {
		out.mode = discarding
		out.pending = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		out.mode = discarding
		out.pending = nil
		return err
	}
	out.file = f
	out.mode = writing
	if len(out.pending) > 0 {
		_, _ = f.Write(out.pending)
		_ = f.Sync()
		out.pending = nil
	}
	return nil
}

// Printf logs one formatted line with the standard timestamp prefix.
func Printf(format string, args ...any) {
	logger.Printf(format, args...)
}

// Println logs its arguments as one line.
func Println(v ...any) {
	logger.Println(v...)
}

// Close closes the log file when one is open. Later lines buffer in
// memory again until the next SetFile.
func Close() error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file == nil {
		return nil
	}
	err := out.file.Close()
	out.file = nil
	out.mode = buffering
	return err
}
