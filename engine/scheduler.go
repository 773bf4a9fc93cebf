package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/verlin/mandelpipe"
	"github.com/verlin/mandelpipe/fix"
	"github.com/verlin/mandelpipe/framestore"
)

// Lanes is the number of parallel iteration lanes. A batch covers Lanes
// consecutive columns of one row; the image width does not have to be a
// multiple of it.
const Lanes = 8

// PixelResult is one committed lane result: the iteration count for a single
// raster cell.
type PixelResult struct {
	X, Y  int
	Count uint8
}

// dispatch is the per-lane work assignment for one batch.
type dispatch struct {
	cre, cim fix.Q824
	maxIter  uint8
}

// Scheduler sweeps the image row-major in batches of Lanes columns. Each
// batch is fanned out to the lane workers, barrier-synchronized, and
// committed into the write-target buffer of the frame store; when the last
// row is done the buffer roles swap and the job callback fires.
//
// One job runs at a time. Render requests arriving while a job is in
// progress are dropped, coalescing rapid requests; Busy exposes the job
// state so callers can retry after completion.
type Scheduler struct {
	store       *framestore.Store
	onFrameDone func(mandelpipe.Viewport)

	lanes  [Lanes]Lane
	feed   [Lanes]chan dispatch
	counts [Lanes]uint8
	wg     sync.WaitGroup

	jobs chan mandelpipe.Viewport
	busy atomic.Bool
}

// New creates a scheduler writing into store. onFrameDone, if non-nil, is
// called after each buffer-role swap with the viewport the frame was
// rendered under; it runs on the scheduler goroutine, so the next job does
// not start until it returns.
func New(store *framestore.Store, onFrameDone func(mandelpipe.Viewport)) *Scheduler {
	s := &Scheduler{
		store:       store,
		onFrameDone: onFrameDone,
		jobs:        make(chan mandelpipe.Viewport, 1),
	}
	for i := range s.feed {
		s.feed[i] = make(chan dispatch)
	}
	return s
}

// Render requests a frame for the given viewport. The viewport and its
// MaxIter are snapshotted here; later mutations by the caller do not affect
// the job. Returns false if a job is already in progress (the request is
// dropped).
func (s *Scheduler) Render(vp mandelpipe.Viewport) bool {
	if !s.busy.CompareAndSwap(false, true) {
		return false
	}
	s.jobs <- vp
	return true
}

// Busy reports whether a job is in progress.
func (s *Scheduler) Busy() bool { return s.busy.Load() }

// Run starts the lane workers and processes render jobs until ctx is
// canceled. A job already underway runs to completion; there is no mid-frame
// preemption. Run returns after all workers have drained.
func (s *Scheduler) Run(ctx context.Context) error {
	g := new(errgroup.Group)
	for i := range s.feed {
		g.Go(func() error {
			s.worker(i)
			return nil
		})
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case vp := <-s.jobs:
			s.renderFrame(vp)
			s.store.Swap()
			// Idle before the callback fires, so a callback-driven
			// controller can immediately queue the next job.
			s.busy.Store(false)
			if s.onFrameDone != nil {
				s.onFrameDone(vp)
			}
		}
	}

	// Workers only stop on feed close, which happens strictly between
	// jobs; a batch in flight always completes its barrier.
	for i := range s.feed {
		close(s.feed[i])
	}
	return g.Wait()
}

// worker owns lane i: it runs each dispatched coordinate to completion and
// signals the batch barrier.
func (s *Scheduler) worker(i int) {
	lane := &s.lanes[i]
	for d := range s.feed[i] {
		lane.Start(d.cre, d.cim, d.maxIter)
		lane.Run()
		s.counts[i] = lane.Consume()
		s.wg.Done()
	}
}

// renderFrame sweeps the full image for one snapshotted viewport.
func (s *Scheduler) renderFrame(vp mandelpipe.Viewport) {
	w, h := s.store.Width(), s.store.Height()
	for y := 0; y < h; y++ {
		for xBase := 0; xBase < w; xBase += Lanes {
			// The barrier is armed for the full lane count before any
			// lane is released, so it cannot observe an all-idle pool
			// between dispatch and the first wait.
			s.wg.Add(Lanes)
			for i := range s.feed {
				cre, cim := MapCoord(xBase+i, y, vp)
				s.feed[i] <- dispatch{cre: cre, cim: cim, maxIter: vp.MaxIter}
			}
			s.wg.Wait()

			s.commitBatch(xBase, y, w)
		}
	}
}

// commitBatch writes the batch results in lane-index order, skipping lanes
// whose column fell past the end of the row.
func (s *Scheduler) commitBatch(xBase, y, w int) {
	for i := 0; i < Lanes; i++ {
		r := PixelResult{X: xBase + i, Y: y, Count: s.counts[i]}
		if r.X >= w {
			continue
		}
		s.store.Put(r.X, r.Y, r.Count)
	}
}
