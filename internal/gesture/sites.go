package gesture

import "time"

// Site carries what the unlock and panic buttons share.
type Site struct {
	Timing   Timing
	Feedback Feedback
	Clock    Clock
	Frames   Frames
}

func (s Site) options() Options {
	return Options{Timing: s.Timing, Feedback: s.Feedback, Clock: s.Clock, Frames: s.Frames}
}

// NewUnlock builds the stopwatch start button. Holding it unlocks the hidden
// mode; a shorter press is an ordinary tap and starts the stopwatch.
func NewUnlock(site Site, unlock func(), startStopwatch func()) *Hold {
	opts := site.options()
	opts.OnComplete = unlock
	opts.OnCancel = func(held time.Duration) {
		if held > 0 && startStopwatch != nil {
			startStopwatch()
		}
	}
	return New(opts)
}

// NewPanic builds the panic button. Holding it dispatches the alert; an early
// release does nothing.
func NewPanic(site Site, dispatch func()) *Hold {
	opts := site.options()
	opts.OnComplete = dispatch
	return New(opts)
}
