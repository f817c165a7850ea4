package config

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/vertextoedge/fsreclaim/internal/domain"
)

// Config represents the entire run configuration, assembled from command
// line flags and FSRECLAIM_* environment variables. There is no config
// file and no persisted state.
type Config struct {
	// TargetAvailableSpace is the minimum free space to leave on the
	// volume, as a plain byte count or a humanized size ("10GB").
	TargetAvailableSpace string

	// OlderThanMinutes protects files accessed within the last N minutes
	// from eviction. Zero means no floor beyond "now".
	OlderThanMinutes int64

	// DryRun reports the files that would be deleted without touching them.
	DryRun bool

	// Verbose enables per-file logging and the final byte summary.
	Verbose bool

	// Root is the top-level directory to reclaim space under.
	Root string

	LogLevel  string
	LogFormat string
}

// Load builds a Config from the given viper instance (bound to the flag
// set and environment by the caller) and the positional arguments.
func Load(v *viper.Viper, args []string) (*Config, error) {
	cfg := &Config{
		TargetAvailableSpace: v.GetString("target-available-space"),
		OlderThanMinutes:     v.GetInt64("older-than"),
		DryRun:               v.GetBool("dry-run"),
		Verbose:              v.GetBool("verbose"),
		LogLevel:             v.GetString("log-level"),
		LogFormat:            v.GetString("log-format"),
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("%w: exactly one root path is required, got %d", domain.ErrInvalidInput, len(args))
	}
	cfg.Root = args[0]

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.TargetAvailableSpace == "" {
		return fmt.Errorf("%w: target-available-space is required", domain.ErrInvalidInput)
	}
	if _, err := c.TargetBytes(); err != nil {
		return err
	}

	if c.OlderThanMinutes < 0 {
		return fmt.Errorf("%w: older-than must not be negative", domain.ErrInvalidInput)
	}

	if c.Root == "" {
		return fmt.Errorf("%w: root path must not be empty", domain.ErrInvalidInput)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("%w: invalid log-level: %s", domain.ErrInvalidInput, c.LogLevel)
	}

	switch c.LogFormat {
	case "json", "console":
		// Valid formats
	default:
		return fmt.Errorf("%w: invalid log-format: %s", domain.ErrInvalidInput, c.LogFormat)
	}

	return nil
}

// TargetBytes parses the free-space target, accepting plain byte counts
// and humanized sizes such as "10GB" or "512MiB".
func (c *Config) TargetBytes() (int64, error) {
	n, err := humanize.ParseBytes(c.TargetAvailableSpace)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid target-available-space %q: %v", domain.ErrInvalidInput, c.TargetAvailableSpace, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: target-available-space %q overflows", domain.ErrInvalidInput, c.TargetAvailableSpace)
	}
	return int64(n), nil
}

// GetOlderThan returns the age floor as a time.Duration
func (c *Config) GetOlderThan() time.Duration {
	return time.Duration(c.OlderThanMinutes) * time.Minute
}
