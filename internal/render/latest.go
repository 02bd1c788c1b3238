package render

import (
	"sync"

	"csca/internal/core"
)

// Latest is a mailbox sink holding the newest presented buffer until the
// display loop takes it.
type Latest struct {
	mu    sync.Mutex
	buf   *core.PixelBuffer
	fresh bool
}

// Present stores buf, replacing any buffer not yet taken.
func (l *Latest) Present(buf *core.PixelBuffer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = buf
	l.fresh = true
}

// Take returns the newest buffer if it has not been taken before.
func (l *Latest) Take() (*core.PixelBuffer, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.fresh {
		return nil, false
	}
	l.fresh = false
	return l.buf, true
}

// Current returns the newest buffer whether or not it was taken.
func (l *Latest) Current() *core.PixelBuffer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf
}
