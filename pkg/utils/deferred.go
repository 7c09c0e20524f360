// Package utils provides small shared helpers.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter buffers writes until Flush replays them to a destination.
// While the pad owns the terminal, log lines land here instead of corrupting
// the screen; main flushes them through a console writer after exit.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends p to the buffer. It never fails.
func (w *DeferredWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// Flush replays everything buffered so far to dst and resets the buffer.
// Lines are written one at a time; console writers render one event per
// Write call.
func (w *DeferredWriter) Flush(dst io.Writer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		line, err := w.buf.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := dst.Write(line); werr != nil {
				w.buf.Reset()
				return werr
			}
		}
		if err != nil {
			break
		}
	}
	w.buf.Reset()
	return nil
}
