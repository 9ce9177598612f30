package testutil

import (
	"slices"
	"sync"
)

// ManualFrames is a frame scheduler driven by the test.
//
// Request queues a callback; Step runs every callback queued before the call.
// All requested callbacks are also kept in History so tests can replay stale
// frames on purpose.
type ManualFrames struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func()
	history []func()
}

// NewManualFrames returns an empty scheduler.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{pending: make(map[int]func())}
}

// Request queues fn for the next Step and returns its cancel function.
func (f *ManualFrames) Request(fn func()) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.pending[id] = fn
	f.history = append(f.history, fn)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.pending, id)
	}
}

// Step runs the callbacks pending at the time of the call, in request order.
// It returns how many ran.
func (f *ManualFrames) Step() int {
	f.mu.Lock()
	ids := make([]int, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, f.pending[id])
		delete(f.pending, id)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending reports how many callbacks are queued.
func (f *ManualFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// History returns every callback ever requested.
func (f *ManualFrames) History() []func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.history)
}
