package gesture

import "time"

// DefaultFrameInterval approximates a 60 Hz render loop.
const DefaultFrameInterval = 16 * time.Millisecond

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TimerFrames delivers each requested frame after a fixed interval on its own
// timer goroutine.
type TimerFrames struct {
	interval time.Duration
}

// NewTimerFrames returns a scheduler firing frames every interval.
func NewTimerFrames(interval time.Duration) *TimerFrames {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerFrames{interval: interval}
}

func (f *TimerFrames) Request(fn func()) (cancel func()) {
	t := time.AfterFunc(f.interval, fn)
	return func() { t.Stop() }
}

var (
	_ Clock  = SystemClock{}
	_ Frames = (*TimerFrames)(nil)
)
