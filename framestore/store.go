// Package framestore implements the double-buffered store of per-pixel
// iteration counts that sits between the render scheduler and the display
// pipeline. One buffer is the write-target, owned by the scheduler; the
// other is the read-source, owned by the display. The roles swap only at a
// frame boundary, through a single atomic role bit, so the reader can never
// observe a partially written frame and the writer can never touch the
// buffer the reader holds.
package framestore

import (
	"sync/atomic"

	"github.com/verlin/mandelpipe"
)

var _ mandelpipe.CountReader = (*Store)(nil)

// Store is a pair of iteration-count buffers with an atomic role assignment.
//
// The role bit names the read-source buffer; the write-target is always the
// other one. Exactly one goroutine may write (the scheduler) and it is also
// the only caller of Swap; any number of display-side reads may proceed
// concurrently with writes because they always address the opposite buffer.
type Store struct {
	width  int
	height int
	bufs   [2][]uint8
	role   atomic.Uint32 // index of the read-source buffer
}

// New creates a store for width×height iteration counts. Both buffers start
// zeroed; buffer 1 is the initial read-source, so the first frame is written
// into buffer 0.
func New(width, height int) *Store {
	s := &Store{
		width:  width,
		height: height,
		bufs:   [2][]uint8{make([]uint8, width*height), make([]uint8, width*height)},
	}
	s.role.Store(1)
	return s
}

// Width returns the frame width in pixels.
func (s *Store) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *Store) Height() int { return s.height }

// Put stores an iteration count into the write-target buffer at (x, y).
// Writer side only.
func (s *Store) Put(x, y int, count uint8) {
	s.bufs[s.role.Load()^1][y*s.width+x] = count
}

// CountAt returns the iteration count at the given linear address
// (y*width + x) of the read-source buffer. Reader side only.
func (s *Store) CountAt(addr int) uint8 {
	return s.bufs[s.role.Load()][addr]
}

// Swap flips the buffer roles. Must be called only by the writer, and only
// at a frame boundary, after the write-target holds a complete frame. The
// single atomic store publishes every preceding write along with the new
// role, so readers switch to the finished frame as a unit.
func (s *Store) Swap() {
	s.role.Store(s.role.Load() ^ 1)
}
