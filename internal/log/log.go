// Package log provides the debug logger shared by every lazymd package.
//
// Messages written before a destination is chosen are kept in memory and
// flushed once SetFile is called, so early start-up diagnostics are not lost.
package log

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// sink buffers log output until a file is configured.
type sink struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	global = &sink{}
	std    = log.New(global, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.discard:
		return len(p), nil
	case s.file != nil:
		n, err := s.file.Write(p)
		_ = s.file.Sync()
		return n, err
	}

	// p may be reused by the caller
	s.buffer = append(s.buffer, p...)
	return len(p), nil
}

func (s *sink) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// SetFile directs log output to path, creating it if needed, and flushes
// anything buffered so far. An empty path drops the buffer and discards all
// future messages.
func SetFile(path string) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	_ = global.closeFile()

	if path == "" {
		global.discard = true
		global.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		global.discard = true
		global.buffer = nil
		return fmt.Errorf("open debug log: %w", err)
	}

	global.file = f
	global.discard = false
	if len(global.buffer) > 0 {
		_, _ = f.Write(global.buffer)
		_ = f.Sync()
		global.buffer = nil
	}
	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	std.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	std.Println(v...)
}

// Scoped returns a printf-style function that prefixes every message with
// the component name, for handing to packages that accept a logf callback.
func Scoped(component string) func(string, ...any) {
	prefix := component + ": "
	return func(format string, args ...any) {
		std.Printf(prefix+format, args...)
	}
}

// Close closes the debug log file if one is open.
func Close() error {
	global.mu.Lock()
	defer global.mu.Unlock()
	return global.closeFile()
}
