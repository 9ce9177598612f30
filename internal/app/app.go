package app

import (
	"context"
	"sync"

	"wtime/internal/domain"
	"wtime/internal/gesture"
)

// Mode is which face of the application is showing.
type Mode int

const (
	// ModeStopwatch is the disguise.
	ModeStopwatch Mode = iota
	// ModeSafe is the hidden safe mode with the panic button.
	ModeSafe
)

func (m Mode) String() string {
	if m == ModeSafe {
		return "safe"
	}
	return "stopwatch"
}

// App drives the two screens on top of a Wire.
type App struct {
	*Wire

	ctx context.Context

	mu   sync.Mutex
	mode Mode
}

// New returns an App showing the stopwatch. ctx bounds alert dispatches
// started from the panic gesture.
func New(ctx context.Context, w *Wire) *App {
	return &App{Wire: w, ctx: ctx}
}

// Mode returns the current screen.
func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// UnlockGesture builds the stopwatch start button. A full hold switches to
// safe mode and then calls unlocked, if set; a tap starts the stopwatch.
func (a *App) UnlockGesture(fb gesture.Feedback, unlocked func()) *gesture.Hold {
	return gesture.NewUnlock(a.Site(a.Config.UnlockTiming(), fb), func() {
		a.enterSafeMode()
		if unlocked != nil {
			unlocked()
		}
	}, a.Stopwatch.Start)
}

// PanicGesture builds the panic button. A full hold calls sending, if set,
// dispatches the alert and passes the outcome to done. The button ignores
// presses until done has returned.
func (a *App) PanicGesture(fb gesture.Feedback, sending func(), done func(domain.AlertReport, error)) *gesture.Hold {
	var g *gesture.Hold
	g = gesture.NewPanic(a.Site(a.Config.PanicTiming(), fb), func() {
		g.SetEnabled(false)
		defer g.SetEnabled(true)

		if sending != nil {
			sending()
		}
		report, err := a.Alerts.Dispatch(a.ctx)
		if done != nil {
			done(report, err)
		}
	})
	return g
}

// QuickExit returns to the stopwatch.
func (a *App) QuickExit() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = ModeStopwatch
}

// ClearAllData wipes the secure store and leaves safe mode.
func (a *App) ClearAllData(ctx context.Context) error {
	if err := a.Store.ClearAllData(ctx); err != nil {
		return err
	}
	a.QuickExit()
	return nil
}

func (a *App) enterSafeMode() {
	a.mu.Lock()
	a.mode = ModeSafe
	a.mu.Unlock()
	a.Log.Info("safe mode unlocked")
}
