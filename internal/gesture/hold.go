package gesture

import (
	"sync"
	"time"
)

// State is the phase of a hold gesture.
type State int

const (
	// Idle means no press is in progress.
	Idle State = iota
	// Holding means a press started and has not resolved yet.
	Holding
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Holding:
		return "holding"
	}
	return "unknown"
}

const (
	// DefaultHold is how long a press must last to confirm.
	DefaultHold = 6 * time.Second
	// DefaultPulseInterval is the spacing of haptic pulses during a hold.
	DefaultPulseInterval = time.Second
	// DefaultMaxPulses caps the pulses emitted by one hold.
	DefaultMaxPulses = 6
)

// Clock reads the current time.
type Clock interface {
	Now() time.Time
}

// Frames schedules one callback on the next animation frame.
// The returned cancel function prevents fn from running if it has not started.
type Frames interface {
	Request(fn func()) (cancel func())
}

// Timing holds the durations of a hold gesture.
type Timing struct {
	Hold          time.Duration
	PulseInterval time.Duration
	MaxPulses     int
}

// DefaultTiming is 6 s to confirm with a pulse every second, at most six.
func DefaultTiming() Timing {
	return Timing{Hold: DefaultHold, PulseInterval: DefaultPulseInterval, MaxPulses: DefaultMaxPulses}
}

// Feedback receives progress and haptic pulses while a hold is running.
//
// Feedback callbacks run with the gesture locked and must not call back into
// the Hold. They never fire once Release or Close has returned.
type Feedback struct {
	OnProgress func(progress float64)
	OnPulse    func(n int)
}

// Options configures a Hold.
type Options struct {
	Timing
	Feedback

	// OnComplete runs once per hold that reaches Timing.Hold.
	OnComplete func()
	// OnCancel runs when a hold is released early, with the time held.
	OnCancel func(held time.Duration)

	Clock  Clock
	Frames Frames
}

// Hold converts a sustained press into a confirmed action.
//
// Idle --Press--> Holding(now). Every frame while Holding samples the elapsed
// time, reports progress and emits a pulse at each new whole PulseInterval up
// to MaxPulses. Reaching Hold completes: the machine returns to Idle, stops
// sampling, then calls OnComplete. Release before that cancels.
type Hold struct {
	opts Options

	mu       sync.Mutex
	state    State
	start    time.Time
	pulses   int
	progress float64
	gen      uint64
	cancel   func()
	disabled bool
	closed   bool
}

// New returns an idle Hold. Zero timings fall back to DefaultTiming; a
// negative MaxPulses disables pulses.
func New(opts Options) *Hold {
	def := DefaultTiming()
	if opts.Hold <= 0 {
		opts.Hold = def.Hold
	}
	if opts.PulseInterval <= 0 {
		opts.PulseInterval = def.PulseInterval
	}
	switch {
	case opts.MaxPulses == 0:
		opts.MaxPulses = def.MaxPulses
	case opts.MaxPulses < 0:
		opts.MaxPulses = 0
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Frames == nil {
		opts.Frames = NewTimerFrames(DefaultFrameInterval)
	}
	return &Hold{opts: opts}
}

// Press starts a hold. It reports false when the press was ignored because a
// hold is already running or the gesture is disabled or closed.
func (h *Hold) Press() bool {
	h.mu.Lock()
	if h.closed || h.disabled || h.state != Idle {
		h.mu.Unlock()
		return false
	}
	h.state = Holding
	h.start = h.opts.Clock.Now()
	h.pulses = 0
	h.gen++
	gen := h.gen
	h.mu.Unlock()

	h.sample(gen)
	return true
}

// Release ends the current hold. Releasing before the hold duration cancels
// it; releasing at or after it completes it. Release while Idle is a no-op.
func (h *Hold) Release() {
	h.mu.Lock()
	if h.state != Holding {
		h.mu.Unlock()
		return
	}
	held := h.opts.Clock.Now().Sub(h.start)
	h.resetLocked()
	h.mu.Unlock()

	if held >= h.opts.Hold {
		h.fire(h.opts.OnComplete)
		return
	}
	if h.opts.OnCancel != nil {
		h.opts.OnCancel(max(held, 0))
	}
}

// Close stops any running hold without firing callbacks. Later presses are
// ignored. Call it when the owning screen goes away.
func (h *Hold) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	h.state = Idle
	h.pulses = 0
	h.progress = 0
	h.gen++
	h.stopLocked()
}

// SetEnabled toggles whether presses are accepted. A running hold is not
// affected.
func (h *Hold) SetEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disabled = !enabled
}

// State returns the current phase.
func (h *Hold) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Progress returns the last reported progress in [0, 1].
func (h *Hold) Progress() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.progress
}

// Timing returns the configured durations.
func (h *Hold) Timing() Timing { return h.opts.Timing }

// sample is one animation-frame tick of hold gen.
func (h *Hold) sample(gen uint64) {
	h.mu.Lock()
	if h.state != Holding || h.gen != gen {
		h.mu.Unlock()
		return
	}
	elapsed := h.opts.Clock.Now().Sub(h.start)
	h.report(h.fraction(elapsed))

	if n := int(elapsed / h.opts.PulseInterval); n > h.pulses && n <= h.opts.MaxPulses {
		h.pulses = n
		if h.opts.OnPulse != nil {
			h.opts.OnPulse(n)
		}
	}

	if elapsed >= h.opts.Hold {
		h.resetLocked()
		h.mu.Unlock()
		h.fire(h.opts.OnComplete)
		return
	}
	h.cancel = h.opts.Frames.Request(func() { h.sample(gen) })
	h.mu.Unlock()
}

// resetLocked returns to Idle, stops sampling and reports zero progress.
func (h *Hold) resetLocked() {
	h.state = Idle
	h.pulses = 0
	h.gen++
	h.stopLocked()
	h.report(0)
}

func (h *Hold) stopLocked() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *Hold) report(p float64) {
	h.progress = p
	if h.opts.OnProgress != nil {
		h.opts.OnProgress(p)
	}
}

func (h *Hold) fraction(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return min(float64(elapsed)/float64(h.opts.Hold), 1)
}

func (h *Hold) fire(fn func()) {
	if fn != nil {
		fn()
	}
}
