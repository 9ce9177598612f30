package stopwatch

import (
	"fmt"
	"sync"
	"time"
)

// Stopwatch measures time since Start. Stop resets it to zero.
type Stopwatch struct {
	now func() time.Time

	mu      sync.Mutex
	running bool
	started time.Time
}

// New returns a stopped stopwatch. A nil now uses time.Now.
func New(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

// Start begins timing. Starting a running stopwatch keeps the original start.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.started = s.now()
}

// Stop halts timing and resets the reading to zero.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.started = time.Time{}
}

// Running reports whether the stopwatch is timing.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed returns the time since Start, or zero when stopped.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0
	}
	return max(s.now().Sub(s.started), 0)
}

// String renders the current reading with Format.
func (s *Stopwatch) String() string { return Format(s.Elapsed()) }

// Format renders d as mm:ss.cc. Minutes are not wrapped at an hour.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d.%02d", total/60, total%60, (ms%1000)/10)
}
