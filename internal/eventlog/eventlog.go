// Package eventlog appends session telemetry as zstd-compressed JSONL:
// one record per line, one file per session. The log is write-only
// output; the game never reads a session file back.
package eventlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// SessionStart is the first record of every file.
type SessionStart struct {
	Event   string `json:"event"` // "session_start"
	Version int    `json:"version"`
	Seed    int64  `json:"seed"`
	Started string `json:"started"` // RFC 3339
}

// SessionEnd is the last record of a cleanly closed session.
type SessionEnd struct {
	Event string `json:"event"` // "session_end"
	Tick  uint64 `json:"tick"`
	Coins int    `json:"coins"`
}

// NewSessionStart stamps a version-1 header for the given seed.
func NewSessionStart(seed int64) SessionStart {
	return SessionStart{
		Event:   "session_start",
		Version: 1,
		Seed:    seed,
		Started: time.Now().Format(time.RFC3339),
	}
}

var errClosed = errors.New("eventlog: writer closed")

// Writer owns one session file. Write marshals a record and appends it
// as a line; Close flushes the buffer and the compressor. The mutex
// exists for Close racing a final Write during shutdown; steady-state
// callers are single-goroutine.
type Writer struct {
	mu     sync.Mutex
	f      *os.File
	zw     *zstd.Encoder
	bw     *bufio.Writer
	closed bool
}

// NewWriter creates dir if needed and opens a fresh session file named
// by the wall clock.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("eventlog: %w", err)
	}
	name := filepath.Join(dir, "session-"+time.Now().Format("20060102-150405")+".jsonl.zst")
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("eventlog: %w", err)
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("eventlog: %w", err)
	}
	return &Writer{f: f, zw: zw, bw: bufio.NewWriter(zw)}, nil
}

// Path is the session file on disk.
func (w *Writer) Path() string {
	return w.f.Name()
}

// Write appends one record as a JSON line.
func (w *Writer) Write(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("eventlog: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errClosed
	}
	if _, err := w.bw.Write(raw); err != nil {
		return fmt.Errorf("eventlog: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("eventlog: %w", err)
	}
	return nil
}

// Close flushes everything down to the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.bw.Flush(); err != nil {
		w.zw.Close()
		w.f.Close()
		return fmt.Errorf("eventlog: %w", err)
	}
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("eventlog: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("eventlog: %w", err)
	}
	return nil
}
