// FILE: lixenwraith/alog/config.go
package alog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level    int64  `toml:"level"`
	Format   string `toml:"format"`   // "txt" or "json"
	Sanitize bool   `toml:"sanitize"` // Hex encode non-printable characters in txt output

	// Console output
	EnableConsole bool   `toml:"enable_console"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"

	// File output
	FilePath   string `toml:"file_path"` // Empty = file output disabled
	FileLock   bool   `toml:"file_lock"` // Exclusive advisory lock on "<file_path>.lock"
	MaxSizeMB  int64  `toml:"max_size_mb"` // Rotate at this size, 0 = never rotate
	MaxBackups int64  `toml:"max_backups"`
	MaxAgeDays int64  `toml:"max_age_days"`
	Compress   bool   `toml:"compress"` // Gzip rotated files

	// Queue and worker
	BatchSize      int64  `toml:"batch_size"`
	QueueCapacity  int64  `toml:"queue_capacity"` // 0 = unbounded
	OverflowPolicy string `toml:"overflow_policy"`

	// Heartbeat, read at Start
	HeartbeatIntervalMs int64 `toml:"heartbeat_interval_ms"` // 0 = disabled

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to the diagnostic writer
	ShutdownSummary        bool `toml:"shutdown_summary"`          // Report final metrics through diagnostics on Shutdown
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Basic settings
	Level:    LevelInfo,
	Format:   "txt",
	Sanitize: false,

	// Console output
	EnableConsole: true,
	ConsoleTarget: "stdout",

	// File output
	FilePath:   "",
	FileLock:   false,
	MaxSizeMB:  0,
	MaxBackups: 0,
	MaxAgeDays: 0,
	Compress:   false,

	// Queue and worker
	BatchSize:      defaultBatchSize,
	QueueCapacity:  0,
	OverflowPolicy: OverflowDropNewest,

	// Heartbeat
	HeartbeatIntervalMs: 0,

	// Internal error handling
	InternalErrorsToStderr: true,
	ShutdownSummary:        false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and command line arguments
// (e.g. "--alog.level=debug") and returns a validated Config.
// Keys live under the [alog] table. A missing file leaves the defaults in place.
func NewConfigFromFile(path string, args []string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("alog.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, args); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w: %w", path, ErrConfiguration, err)
	}

	if err := extractConfig(loader, "alog.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig copies values found by the loader into cfg
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Keep default
		}

		if err := setFieldValue(v.Field(i), tomlTag, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		tomlTag := t.Field(i).Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s: %w", key, ErrConfiguration)
		}

		if err := setFieldValue(fieldValue, key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with type conversion; "level" also accepts level names
func setFieldValue(field reflect.Value, key string, value any) error {
	if key == "level" {
		if name, ok := value.(string); ok {
			level, err := ParseLevel(name)
			if err != nil {
				return err
			}
			field.SetInt(level)
			return nil
		}
	}

	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T: %w", value, ErrConfiguration)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v: %w", v, ErrConfiguration)
			}
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T: %w", value, ErrConfiguration)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T: %w", value, ErrConfiguration)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Format != "txt" && c.Format != "json" {
		return fmtErrorf("invalid format: '%s' (use txt or json): %w", c.Format, ErrConfiguration)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr): %w", c.ConsoleTarget, ErrConfiguration)
	}

	if c.FilePath != "" && strings.TrimSpace(c.FilePath) == "" {
		return fmtErrorf("file_path cannot be blank: %w", ErrConfiguration)
	}

	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmtErrorf("rotation limits cannot be negative: %w", ErrConfiguration)
	}

	if c.BatchSize <= 0 {
		return fmtErrorf("batch_size must be positive: %d: %w", c.BatchSize, ErrConfiguration)
	}

	if c.QueueCapacity < 0 {
		return fmtErrorf("queue_capacity cannot be negative: %d: %w", c.QueueCapacity, ErrConfiguration)
	}

	if c.OverflowPolicy != OverflowDropNewest && c.OverflowPolicy != OverflowDropOldest {
		return fmtErrorf("invalid overflow_policy: '%s' (use %s or %s): %w",
			c.OverflowPolicy, OverflowDropNewest, OverflowDropOldest, ErrConfiguration)
	}

	if c.HeartbeatIntervalMs < 0 {
		return fmtErrorf("heartbeat_interval_ms cannot be negative: %d: %w", c.HeartbeatIntervalMs, ErrConfiguration)
	}

	return nil
}

// Validate reports whether the configuration is acceptable to ApplyConfig
func (c *Config) Validate() error {
	return c.validate()
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
