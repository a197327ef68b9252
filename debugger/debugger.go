// Package debugger writes a per-run trace file for record-level skips that are
// too noisy for the main log. Aggregate counts go to slog, the per-block and
// per-line details end up here.
package debugger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Debugger struct {
	fileName string

	mu sync.Mutex
	f  *os.File
}

// NewDebugger opens logs/trace.<unix>.<runID>.txt under root. An empty root
// falls back to the working directory.
func NewDebugger(root, runID string) (*Debugger, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = wd
	}

	fPath := filepath.Join(root, "logs")
	fName := filepath.Join(fPath, fmt.Sprintf("trace.%d.%s.txt", time.Now().Unix(), runID))
	err := os.MkdirAll(fPath, 0700)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(fName, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	return &Debugger{
		fileName: fName,
		f:        f,
	}, nil
}

// Path returns the trace file location.
func (s *Debugger) Path() string {
	return s.fileName
}

// Debug appends one line to the trace file. A nil Debugger drops the line,
// so callers trace unconditionally.
func (s *Debugger) Debug(str string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.f, "\nDEBUG : %s", str)
}

func (s *Debugger) Debugf(format string, args ...any) {
	s.Debug(fmt.Sprintf(format, args...))
}

func (s *Debugger) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
