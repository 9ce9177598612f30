package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"wtime/internal/gesture"
)

const (
	// HomeEnv overrides the default home directory.
	HomeEnv = "WTIME_HOME"
	// PassphraseEnv supplies the sealed-mode passphrase without writing it
	// to the config file.
	PassphraseEnv = "WTIME_PASSPHRASE"
	// GatewayEnv overrides alert.gateway_url.
	GatewayEnv = "WTIME_SMS_GATEWAY"

	// ConfigFile is the config file name inside the home directory.
	ConfigFile = "config.yaml"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Integrity modes.
const (
	IntegrityDigest = "digest"
	IntegritySealed = "sealed"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home string `yaml:"-"` // data directory, e.g. $HOME/.wtime

	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Integrity IntegrityConfig `yaml:"integrity"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Alert     AlertConfig     `yaml:"alert"`
}

type LogConfig struct {
	Mode string `yaml:"mode"` // dev or prod
}

// StorageConfig selects the byte store under the secure store.
type StorageConfig struct {
	Backend string      `yaml:"backend"`
	Key     string      `yaml:"key"`
	SQLite  string      `yaml:"sqlite_path"` // relative paths resolve against Home
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// IntegrityConfig selects the envelope codec. Sealed mode needs a passphrase
// and cannot read digest envelopes.
type IntegrityConfig struct {
	Mode       string `yaml:"mode"`
	Passphrase string `yaml:"passphrase"`
}

type GestureConfig struct {
	UnlockHold    string `yaml:"unlock_hold"`
	PanicHold     string `yaml:"panic_hold"`
	PulseInterval string `yaml:"pulse_interval"`
	MaxPulses     int    `yaml:"max_pulses"`
}

// AlertConfig describes where alerts go. An empty gateway URL means SMS is
// unavailable; "log" means a dry run through the logger.
type AlertConfig struct {
	GatewayURL string `yaml:"gateway_url"`
	Timeout    string `yaml:"timeout"`
	// Location is a fixed "lat,lon"; empty means unavailable.
	Location string `yaml:"location"`
}

// DefaultHome returns $WTIME_HOME or ~/.wtime.
func DefaultHome() string {
	if h := os.Getenv(HomeEnv); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wtime"
	}
	return filepath.Join(home, ".wtime")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig(home string) *Config {
	return &Config{
		Home: home,
		Log:  LogConfig{Mode: "dev"},
		Storage: StorageConfig{
			Backend: BackendFile,
			SQLite:  "wtime.db",
			Redis:   RedisConfig{Addr: "127.0.0.1:6379", Prefix: "wtime:"},
		},
		Integrity: IntegrityConfig{Mode: IntegrityDigest},
		Gesture: GestureConfig{
			UnlockHold:    gesture.DefaultHold.String(),
			PanicHold:     gesture.DefaultHold.String(),
			PulseInterval: gesture.DefaultPulseInterval.String(),
			MaxPulses:     gesture.DefaultMaxPulses,
		},
		Alert: AlertConfig{Timeout: "10s"},
	}
}

// Load reads path into the defaults for home. A missing file is not an
// error. Environment overrides are applied last.
func Load(home, path string) (*Config, error) {
	cfg := DefaultConfig(home)
	if path == "" {
		path = filepath.Join(home, ConfigFile)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path with owner-only permissions.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *Config) applyEnvOverrides() {
	if p := os.Getenv(PassphraseEnv); p != "" {
		c.Integrity.Passphrase = p
	}
	if u := os.Getenv(GatewayEnv); u != "" {
		c.Alert.GatewayURL = u
	}
}

// Validate checks the enumerations and the sealed-mode passphrase.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Integrity.Mode {
	case IntegrityDigest:
	case IntegritySealed:
		if c.Integrity.Passphrase == "" {
			return fmt.Errorf("integrity mode %q needs a passphrase (config or %s)", IntegritySealed, PassphraseEnv)
		}
	default:
		return fmt.Errorf("unknown integrity mode %q", c.Integrity.Mode)
	}
	if _, _, err := c.Alert.location(); err != nil {
		return err
	}
	return nil
}

// UnlockTiming returns the unlock gesture timing.
func (c *Config) UnlockTiming() gesture.Timing {
	return c.timing(c.Gesture.UnlockHold)
}

// PanicTiming returns the panic gesture timing.
func (c *Config) PanicTiming() gesture.Timing {
	return c.timing(c.Gesture.PanicHold)
}

func (c *Config) timing(hold string) gesture.Timing {
	return gesture.Timing{
		Hold:          parseDuration(hold, gesture.DefaultHold),
		PulseInterval: parseDuration(c.Gesture.PulseInterval, gesture.DefaultPulseInterval),
		MaxPulses:     c.Gesture.MaxPulses,
	}
}

// AlertTimeout returns the gateway request timeout.
func (c *Config) AlertTimeout() time.Duration {
	return parseDuration(c.Alert.Timeout, 10*time.Second)
}

// SQLitePath resolves the SQLite file against Home.
func (c *Config) SQLitePath() string {
	if filepath.IsAbs(c.Storage.SQLite) {
		return c.Storage.SQLite
	}
	return filepath.Join(c.Home, c.Storage.SQLite)
}

// DataDir is where the file backend keeps its blobs.
func (c *Config) DataDir() string { return filepath.Join(c.Home, "data") }

func (a AlertConfig) location() (lat, lon float64, err error) {
	if strings.TrimSpace(a.Location) == "" {
		return 0, 0, nil
	}
	latS, lonS, ok := strings.Cut(a.Location, ",")
	if !ok {
		return 0, 0, fmt.Errorf("alert location %q: want \"lat,lon\"", a.Location)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(latS), 64); err != nil {
		return 0, 0, fmt.Errorf("alert location latitude: %w", err)
	}
	if lon, err = strconv.ParseFloat(strings.TrimSpace(lonS), 64); err != nil {
		return 0, 0, fmt.Errorf("alert location longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("alert location %q out of range", a.Location)
	}
	return lat, lon, nil
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
