package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtime/internal/domain"
	"wtime/internal/gesture"
	"wtime/internal/logger"
	"wtime/internal/relay"
	"wtime/internal/services/alert"
	"wtime/internal/testutil"
)

type fixture struct {
	app    *App
	clock  *testutil.ManualClock
	frames *testutil.ManualFrames
}

func newFixture(t *testing.T, mutate func(*Config)) *fixture {
	t.Helper()
	cfg := DefaultConfig(t.TempDir())
	cfg.Storage.Backend = BackendMemory
	if mutate != nil {
		mutate(cfg)
	}
	f := &fixture{
		clock:  testutil.NewManualClock(time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)),
		frames: testutil.NewManualFrames(),
	}
	w, err := NewWire(t.Context(), cfg,
		WithLogger(logger.NewNop()),
		WithGestureClock(f.clock),
		WithFrames(f.frames),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	f.app = New(t.Context(), w)
	return f
}

func (f *fixture) hold(g *gesture.Hold, d time.Duration) {
	g.Press()
	for d > 0 {
		step := min(16*time.Millisecond, d)
		f.clock.Advance(step)
		f.frames.Step()
		d -= step
	}
	g.Release()
}

func TestUnlockGesture_TapStartsStopwatch(t *testing.T) {
	f := newFixture(t, nil)
	g := f.app.UnlockGesture(gesture.Feedback{}, nil)
	defer g.Close()

	f.hold(g, 3*time.Second)

	assert.Equal(t, ModeStopwatch, f.app.Mode())
	assert.True(t, f.app.Stopwatch.Running())
	f.clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, "00:01.50", f.app.Stopwatch.String())
}

func TestUnlockGesture_HoldEntersSafeMode(t *testing.T) {
	f := newFixture(t, nil)
	g := f.app.UnlockGesture(gesture.Feedback{}, nil)
	defer g.Close()

	f.hold(g, 6*time.Second)

	assert.Equal(t, ModeSafe, f.app.Mode())
	assert.False(t, f.app.Stopwatch.Running())

	f.app.QuickExit()
	assert.Equal(t, ModeStopwatch, f.app.Mode())
}

func TestPanicGesture_DispatchesThroughGateway(t *testing.T) {
	gw := relay.NewServer(nil)
	ts := httptest.NewServer(gw.Router())
	defer ts.Close()

	f := newFixture(t, func(c *Config) {
		c.Alert.GatewayURL = ts.URL
		c.Alert.Location = "1.5,-2.25"
		c.Gesture.PanicHold = "2s"
	})
	ctx := t.Context()
	_, err := f.app.Vault.AddContact(ctx, "Alex", "+15550001")
	require.NoError(t, err)

	var reports []domain.AlertReport
	g := f.app.PanicGesture(gesture.Feedback{}, nil, func(r domain.AlertReport, err error) {
		assert.NoError(t, err)
		reports = append(reports, r)
	})
	defer g.Close()

	f.hold(g, 1999*time.Millisecond)
	assert.Empty(t, reports)

	f.hold(g, 2*time.Second)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.AlertSent, reports[0].Status)

	out := gw.Outbox()
	require.Len(t, out, 1)
	assert.Equal(t, []string{"+15550001"}, out[0].To)
	assert.Equal(t, "EMERGENCY ALERT: I need help. My location: https://maps.google.com/?q=1.5,-2.25", out[0].Body)
}

func TestPanicGesture_IgnoresPressesWhileSending(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sms" {
			close(entered)
			<-release
			w.WriteHeader(http.StatusAccepted)
		}
		_, _ = w.Write([]byte("{}"))
	}))
	defer ts.Close()

	f := newFixture(t, func(c *Config) {
		c.Alert.GatewayURL = ts.URL
	})
	_, err := f.app.Vault.AddContact(t.Context(), "Alex", "+15550001")
	require.NoError(t, err)

	var pressedWhileSending bool
	var g *gesture.Hold
	reports := make(chan domain.AlertReport, 2)
	g = f.app.PanicGesture(gesture.Feedback{},
		func() { pressedWhileSending = g.Press() },
		func(r domain.AlertReport, err error) { reports <- r },
	)
	defer g.Close()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		f.hold(g, 6*time.Second)
	}()

	<-entered
	assert.False(t, g.Press(), "press accepted while the alert was in flight")
	close(release)
	<-finished

	assert.False(t, pressedWhileSending)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.AlertSent, (<-reports).Status)
	assert.True(t, g.Press(), "button stays disabled after the alert was sent")
}

func TestPanicGesture_WithoutGateway(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.app.Vault.AddContact(t.Context(), "Alex", "+15550001")
	require.NoError(t, err)

	var got error
	g := f.app.PanicGesture(gesture.Feedback{}, nil, func(_ domain.AlertReport, err error) { got = err })
	defer g.Close()
	f.hold(g, 6*time.Second)

	assert.ErrorIs(t, got, alert.ErrSMSUnavailable)
}

func TestClearAllData_LeavesSafeMode(t *testing.T) {
	f := newFixture(t, nil)
	ctx := t.Context()
	_, err := f.app.Vault.AddContact(ctx, "Alex", "+15550001")
	require.NoError(t, err)
	g := f.app.UnlockGesture(gesture.Feedback{}, nil)
	defer g.Close()
	f.hold(g, 6*time.Second)
	require.Equal(t, ModeSafe, f.app.Mode())

	require.NoError(t, f.app.ClearAllData(ctx))
	assert.Equal(t, ModeStopwatch, f.app.Mode())
	assert.Equal(t, domain.DefaultSettings(), f.app.Store.Settings())
}

func TestNewWire_Backends(t *testing.T) {
	for _, backend := range []string{BackendFile, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := t.Context()
			cfg := DefaultConfig(t.TempDir())
			cfg.Storage.Backend = backend

			w, err := NewWire(ctx, cfg, WithLogger(logger.NewNop()))
			require.NoError(t, err)
			c, err := w.Vault.AddContact(ctx, "Alex", "+15550001")
			require.NoError(t, err)
			require.NoError(t, w.Store.CompleteFirstLaunch(ctx))
			require.NoError(t, w.Close())

			w, err = NewWire(ctx, cfg, WithLogger(logger.NewNop()))
			require.NoError(t, err)
			defer w.Close()
			got := w.Store.Settings()
			assert.Equal(t, []domain.EmergencyContact{c}, got.EmergencyContacts)
			assert.False(t, got.IsFirstLaunch)
		})
	}
}

func TestNewWire_SealedModeRejectsOtherPassphrase(t *testing.T) {
	ctx := t.Context()
	cfg := DefaultConfig(t.TempDir())
	cfg.Integrity = IntegrityConfig{Mode: IntegritySealed, Passphrase: "first"}

	w, err := NewWire(ctx, cfg, WithLogger(logger.NewNop()))
	require.NoError(t, err)
	_, err = w.Vault.AddNote(ctx, domain.NoteDraft{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = NewWire(ctx, cfg, WithLogger(logger.NewNop()))
	require.NoError(t, err)
	assert.Len(t, w.Store.Settings().Notes, 1)
	require.NoError(t, w.Close())

	cfg.Integrity.Passphrase = "second"
	w, err = NewWire(ctx, cfg, WithLogger(logger.NewNop()))
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, domain.DefaultSettings(), w.Store.Settings())
}

func TestNewWire_UnknownBackend(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.Storage.Backend = "tape"
	_, err := NewWire(t.Context(), cfg, WithLogger(logger.NewNop()))
	assert.Error(t, err)
}
