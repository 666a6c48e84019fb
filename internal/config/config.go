package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/kite/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "kite.json"

	// DefaultFrameIntervalMs approximates one 60Hz animation frame.
	DefaultFrameIntervalMs = 16

	// DefaultMaxFlushFrames bounds how many frames a full flush may run
	// before giving up on a render loop that never settles.
	DefaultMaxFlushFrames = 64

	// DefaultNamespace is the metrics namespace and tracer name.
	DefaultNamespace = "kite"
)

// Config represents the complete kite.json configuration.
type Config struct {
	// Debug enables hook-order diagnostics and verbose logging.
	Debug bool `json:"debug,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// FrameIntervalMs is the tick used by the loop frame scheduler.
	FrameIntervalMs int `json:"frameIntervalMs,omitempty"`

	// MaxFlushFrames bounds FlushAll style drains.
	MaxFlushFrames int `json:"maxFlushFrames,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers the runtime collectors.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace (default: "kite").
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled creates spans through the global tracer provider.
	Enabled bool `json:"enabled,omitempty"`

	// TracerName is the instrumentation name (default: "kite").
	TracerName string `json:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		FrameIntervalMs: DefaultFrameIntervalMs,
		MaxFlushFrames:  DefaultMaxFlushFrames,
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for kite.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("K030").
				WithDetail("No kite.json found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("K030").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("K030").
			WithDetail("Failed to parse kite.json: " + err.Error()).
			WithSuggestion("Check that kite.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads kite.json from dir, falling back to defaults when the
// file does not exist. Parse and validation failures are still returned.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if _, statErr := os.Stat(filepath.Join(dir, ConfigFileName)); os.IsNotExist(statErr) {
		return New(), nil
	}
	return nil, err
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("K030").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("K030").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.FrameIntervalMs == 0 {
		c.FrameIntervalMs = DefaultFrameIntervalMs
	}
	if c.MaxFlushFrames == 0 {
		c.MaxFlushFrames = DefaultMaxFlushFrames
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.FrameIntervalMs < 1 || c.FrameIntervalMs > 1000 {
		return errors.New("K031").
			WithDetail("frameIntervalMs must be between 1 and 1000")
	}
	if c.MaxFlushFrames < 1 {
		return errors.New("K031").
			WithDetail("maxFlushFrames must be at least 1")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("K031").
			WithDetail("logLevel must be one of debug, info, warn, error; got " + c.LogLevel)
	}
	return nil
}

// FrameInterval returns the loop scheduler tick as a duration.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// Level returns the slog level for LogLevel. Debug forces slog.LevelDebug.
func (c *Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
