// FILE: lixenwraith/alog/override.go
package alog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value". All overrides are parsed before any is
// applied; if one fails, none are.
//
// Example:
//
//	logger := alog.NewLogger()
//	err := logger.ApplyOverride(
//	    "level=debug",
//	    "file_path=/var/log/app/app.log",
//	    "queue_capacity=100000",
//	)
func (l *Logger) ApplyOverride(overrides ...string) error {
	type override struct{ key, value string }

	var parsed []override
	var errors []error

	// Parse and type check against a scratch config, the live one is read under the lock
	scratch := DefaultConfig()
	for _, o := range overrides {
		key, value, err := parseKeyValue(o)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(scratch, key, value); err != nil {
			errors = append(errors, err)
			continue
		}
		parsed = append(parsed, override{key: key, value: value})
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	// Replayed onto the config current at store time, other keys keep concurrent changes
	merge := func(current *Config) *Config {
		cfg := current.Clone()
		for _, o := range parsed {
			_ = applyConfigField(cfg, o.key, o.value)
		}
		return cfg
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	cfg := merge(l.getConfig())
	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	return l.applyConfig(cfg, merge)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("alog: multiple configuration errors:")
	for i, err := range errors {
		// Drop the per-error prefix, the header carries it
		errMsg := strings.TrimPrefix(err.Error(), "alog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s: %w", sb.String(), ErrConfiguration)
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Basic settings
	case "level":
		// Accept both numeric and named values
		if numVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			cfg.Level = numVal
		} else {
			levelVal, err := ParseLevel(value)
			if err != nil {
				return fmtErrorf("invalid level value '%s': %w", value, err)
			}
			cfg.Level = levelVal
		}
	case "format":
		cfg.Format = value
	case "sanitize":
		return setBoolField(&cfg.Sanitize, key, value)

	// Console output
	case "enable_console":
		return setBoolField(&cfg.EnableConsole, key, value)
	case "console_target":
		cfg.ConsoleTarget = value

	// File output
	case "file_path":
		cfg.FilePath = value
	case "file_lock":
		return setBoolField(&cfg.FileLock, key, value)
	case "max_size_mb":
		return setIntField(&cfg.MaxSizeMB, key, value)
	case "max_backups":
		return setIntField(&cfg.MaxBackups, key, value)
	case "max_age_days":
		return setIntField(&cfg.MaxAgeDays, key, value)
	case "compress":
		return setBoolField(&cfg.Compress, key, value)

	// Queue and worker
	case "batch_size":
		return setIntField(&cfg.BatchSize, key, value)
	case "queue_capacity":
		return setIntField(&cfg.QueueCapacity, key, value)
	case "overflow_policy":
		cfg.OverflowPolicy = value

	// Heartbeat
	case "heartbeat_interval_ms":
		return setIntField(&cfg.HeartbeatIntervalMs, key, value)

	// Internal error handling
	case "internal_errors_to_stderr":
		return setBoolField(&cfg.InternalErrorsToStderr, key, value)
	case "shutdown_summary":
		return setBoolField(&cfg.ShutdownSummary, key, value)

	default:
		return fmtErrorf("unknown configuration key '%s': %w", key, ErrConfiguration)
	}

	return nil
}

// setIntField parses value into an int64 config field
func setIntField(field *int64, key, value string) error {
	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmtErrorf("invalid integer value for %s '%s': %w: %w", key, value, ErrConfiguration, err)
	}
	*field = intVal
	return nil
}

// setBoolField parses value into a bool config field
func setBoolField(field *bool, key, value string) error {
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return fmtErrorf("invalid boolean value for %s '%s': %w: %w", key, value, ErrConfiguration, err)
	}
	*field = boolVal
	return nil
}
