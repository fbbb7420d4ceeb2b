// Package settings holds the process-wide autotab configuration: the
// settings file format, validation, an in-memory store that consumers read at
// decision time, and live reload.
package settings

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Match policies for picking among repeated words in a suggestion.
const (
	MatchFirst   = "first"
	MatchLongest = "longest"
)

// Settings is the full configuration. Durations are in seconds.
type Settings struct {
	Enabled          bool    `toml:"enabled" yaml:"enabled"`
	DebounceTime     float64 `toml:"debounce_time" yaml:"debounce_time"`
	WaitForPause     bool    `toml:"wait_for_pause" yaml:"wait_for_pause"`
	UseGhostText     bool    `toml:"use_ghost_text" yaml:"use_ghost_text"`
	APIKey           string  `toml:"api_key,omitempty" yaml:"api_key,omitempty"`
	ModelTemperature float64 `toml:"model_temperature" yaml:"model_temperature"`
	Provider         string  `toml:"provider" yaml:"provider"`
	Model            string  `toml:"model,omitempty" yaml:"model,omitempty"`
	BaseURL          string  `toml:"base_url,omitempty" yaml:"base_url,omitempty"`
	RequestTimeout   float64 `toml:"request_timeout" yaml:"request_timeout"`
	MatchPolicy      string  `toml:"match_policy" yaml:"match_policy"`
	ShowLoading      bool    `toml:"show_loading" yaml:"show_loading"`
	ErrorDisplay     float64 `toml:"error_display" yaml:"error_display"`
	// ContextScript is a Lua file defining enrich(ctx). Relative paths are
	// resolved against the settings file.
	ContextScript string `toml:"context_script,omitempty" yaml:"context_script,omitempty"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Enabled:          true,
		DebounceTime:     0,
		ModelTemperature: 0.3,
		Provider:         "openai",
		RequestTimeout:   10,
		MatchPolicy:      MatchFirst,
		ShowLoading:      true,
		ErrorDisplay:     3,
	}
}

// Debounce returns DebounceTime as a duration.
func (s Settings) Debounce() time.Duration { return seconds(s.DebounceTime) }

// Timeout returns RequestTimeout as a duration.
func (s Settings) Timeout() time.Duration { return seconds(s.RequestTimeout) }

// ErrorTTL returns how long a transient error stays on screen.
func (s Settings) ErrorTTL() time.Duration { return seconds(s.ErrorDisplay) }

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// ValidationError reports one invalid setting.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var errs *multierror.Error
	bad := func(key, format string, args ...any) {
		errs = multierror.Append(errs, &ValidationError{Key: key, Reason: fmt.Sprintf(format, args...)})
	}

	if s.DebounceTime < 0 || s.DebounceTime > 5 {
		bad("debounce_time", "must be between 0 and 5 seconds, got %v", s.DebounceTime)
	}
	if s.ModelTemperature < 0 || s.ModelTemperature > 2 {
		bad("model_temperature", "must be between 0 and 2, got %v", s.ModelTemperature)
	}
	switch s.Provider {
	case "openai", "anthropic", "gemini":
	default:
		bad("provider", "unknown provider %q", s.Provider)
	}
	if s.RequestTimeout <= 0 {
		bad("request_timeout", "must be positive, got %v", s.RequestTimeout)
	}
	switch s.MatchPolicy {
	case MatchFirst, MatchLongest:
	default:
		bad("match_policy", "must be %q or %q, got %q", MatchFirst, MatchLongest, s.MatchPolicy)
	}
	if s.ErrorDisplay < 0 {
		bad("error_display", "must not be negative, got %v", s.ErrorDisplay)
	}
	return errs.ErrorOrNil()
}
