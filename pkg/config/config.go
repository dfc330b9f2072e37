// Package config loads leakfix settings from flags, environment, a YAML file and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel validation errors.
var (
	ErrEmptyRoot        = errors.New("root directory must not be empty")
	ErrInvalidExtension = errors.New("extension must start with '.' and name a suffix")
	ErrInvalidDebounce  = errors.New("watch debounce must be positive")
)

// Default values, mirroring the layout the tool was written for.
const (
	DefaultRoot          = "public"
	DefaultExtension     = ".js"
	DefaultWatchDebounce = 250 * time.Millisecond
)

// DefaultExclude lists the manager implementations themselves, which must never be rewritten.
func DefaultExclude() []string {
	return []string{"EventListenerManager.js", "TimerManager.js"}
}

// Config is the top-level configuration struct.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Root           string      `mapstructure:"root"`
	Extension      string      `mapstructure:"extension"`
	Exclude        []string    `mapstructure:"exclude"`
	Ignore         []string    `mapstructure:"ignore"`
	DryRun         bool        `mapstructure:"dry_run"`
	Diff           bool        `mapstructure:"diff"`
	GuardListeners bool        `mapstructure:"guard_listeners"`
	Report         string      `mapstructure:"report"`
	Debug          bool        `mapstructure:"debug"`
	NoColor        bool        `mapstructure:"no_color"`
	Watch          WatchConfig `mapstructure:"watch"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Validate checks the configuration for values the fixer cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return ErrEmptyRoot
	}

	if len(c.Extension) < 2 || !strings.HasPrefix(c.Extension, ".") || strings.ContainsAny(c.Extension, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, c.Extension)
	}

	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, c.Watch.Debounce)
	}

	return nil
}
