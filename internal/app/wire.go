package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wtime/internal/domain"
	"wtime/internal/gesture"
	"wtime/internal/logger"
	"wtime/internal/relay"
	"wtime/internal/services/alert"
	"wtime/internal/services/stopwatch"
	"wtime/internal/services/vault"
	"wtime/internal/store"
)

// GatewayLog selects the dry-run sender instead of an HTTP gateway.
const GatewayLog = "log"

// Wire bundles all stores, services and clients for the CLI.
type Wire struct {
	Config    *Config
	Log       *logger.Logger
	Bytes     domain.ByteStore
	Store     *store.SecureStore
	Vault     *vault.Service
	Alerts    *alert.Service
	Stopwatch *stopwatch.Stopwatch

	clock   gesture.Clock
	frames  gesture.Frames
	closers []io.Closer
}

// WireOption adjusts how NewWire builds the graph.
type WireOption func(*wireOptions)

type wireOptions struct {
	log    *logger.Logger
	clock  gesture.Clock
	frames gesture.Frames
	http   *http.Client
}

// WithLogger replaces the logger built from Config.Log.
func WithLogger(l *logger.Logger) WireOption { return func(o *wireOptions) { o.log = l } }

// WithGestureClock sets the clock gestures and the stopwatch read.
func WithGestureClock(c gesture.Clock) WireOption { return func(o *wireOptions) { o.clock = c } }

// WithFrames sets the frame scheduler used by gestures.
func WithFrames(f gesture.Frames) WireOption { return func(o *wireOptions) { o.frames = f } }

// WithHTTPClient sets the client used to reach the SMS gateway.
func WithHTTPClient(c *http.Client) WireOption { return func(o *wireOptions) { o.http = c } }

// NewWire constructs the dependency graph from cfg and loads the persisted
// aggregate.
func NewWire(ctx context.Context, cfg *Config, opts ...WireOption) (_ *Wire, err error) {
	o := wireOptions{clock: gesture.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		if o.log, err = logger.New(cfg.Log.Mode); err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	w := &Wire{Config: cfg, Log: o.log, clock: o.clock, frames: o.frames}
	defer func() {
		if err != nil {
			_ = w.Close()
		}
	}()

	if w.Bytes, err = w.openBytes(ctx); err != nil {
		return nil, err
	}
	codec, err := newCodec(cfg.Integrity)
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{store.WithCodec(codec), store.WithLogger(o.log)}
	if cfg.Storage.Key != "" {
		storeOpts = append(storeOpts, store.WithKey(domain.StorageKey(cfg.Storage.Key)))
	}
	w.Store = store.NewSecureStore(w.Bytes, storeOpts...)
	w.closers = append(w.closers, w.Store)
	w.Store.Load(ctx)

	w.Vault = vault.New(w.Store, o.log)
	w.Alerts = alert.New(w.Store, newLocator(cfg.Alert), w.newSender(o.http), o.log)
	w.Stopwatch = stopwatch.New(o.clock.Now)

	o.log.Debug("wired",
		"backend", cfg.Storage.Backend,
		"integrity", cfg.Integrity.Mode,
		"contacts", len(w.Store.Settings().EmergencyContacts))
	return w, nil
}

func (w *Wire) openBytes(ctx context.Context) (domain.ByteStore, error) {
	cfg := w.Config
	switch cfg.Storage.Backend {
	case BackendMemory:
		return store.NewMemoryByteStore(), nil
	case BackendSQLite:
		s, err := store.OpenSQLiteByteStore(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, s)
		return s, nil
	case BackendRedis:
		r := cfg.Storage.Redis
		s, err := store.NewRedisByteStore(ctx, store.RedisOptions{
			Addr: r.Addr, Password: r.Password, DB: r.DB, Prefix: r.Prefix,
		})
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, s)
		return s, nil
	case BackendFile, "":
		return store.NewFileByteStore(cfg.DataDir()), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func newCodec(cfg IntegrityConfig) (store.Codec, error) {
	if cfg.Mode != IntegritySealed {
		return store.NewDigestCodec(""), nil
	}
	c, err := store.NewSealedCodec(cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("sealed codec: %w", err)
	}
	return c, nil
}

func newLocator(cfg AlertConfig) domain.Locator {
	lat, lon, err := cfg.location()
	if err != nil || strings.TrimSpace(cfg.Location) == "" {
		return alert.NoLocator{}
	}
	return alert.StaticLocator{Location: domain.Location{Latitude: lat, Longitude: lon}}
}

func (w *Wire) newSender(client *http.Client) domain.SMSSender {
	switch url := strings.TrimSpace(w.Config.Alert.GatewayURL); url {
	case "":
		return alert.UnavailableSender{}
	case GatewayLog:
		return alert.LogSender{Log: w.Log}
	default:
		rc := relay.NewHTTP(url)
		if client != nil {
			rc.HTTP = client
		} else {
			rc.HTTP.Timeout = w.Config.AlertTimeout()
		}
		return rc
	}
}

// Site returns the shared gesture setup with feedback fb.
func (w *Wire) Site(timing gesture.Timing, fb gesture.Feedback) gesture.Site {
	return gesture.Site{Timing: timing, Feedback: fb, Clock: w.clock, Frames: w.frames}
}

// Close releases the backends in reverse order of opening.
func (w *Wire) Close() error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	if w.Log != nil {
		w.Log.Sync()
	}
	return errors.Join(errs...)
}

// Now reads the wire clock.
func (w *Wire) Now() time.Time { return w.clock.Now() }
