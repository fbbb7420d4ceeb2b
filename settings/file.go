package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError reports a settings file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse settings %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "autotab", "settings.toml"), nil
}

// Load reads path over Defaults and applies environment overrides. A
// missing file yields the defaults. The format follows the extension:
// .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return s, fmt.Errorf("read settings %s: %w", path, err)
	default:
		if err := decode(path, data, &s); err != nil {
			return Defaults(), err
		}
	}
	ApplyEnv(&s, os.LookupEnv)
	return s, s.Validate()
}

func decode(path string, data []byte, s *Settings) error {
	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(data, s)
	} else {
		err = toml.Unmarshal(data, s)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// Save writes s to path, creating parent directories. The API key is
// written only when set in s.
func Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		err = enc.Encode(s)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Environment variables consulted by ApplyEnv.
const (
	EnvAPIKey   = "AUTOTAB_API_KEY"
	EnvProvider = "AUTOTAB_PROVIDER"
	EnvModel    = "AUTOTAB_MODEL"
	EnvBaseURL  = "AUTOTAB_BASE_URL"
)

var vendorKeyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// ApplyEnv overrides s from the environment. The API key falls back to the
// vendor variable for the selected provider when neither the file nor
// AUTOTAB_API_KEY sets it.
func ApplyEnv(s *Settings, lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&s.Provider, EnvProvider)
	set(&s.Model, EnvModel)
	set(&s.BaseURL, EnvBaseURL)
	set(&s.APIKey, EnvAPIKey)
	if s.APIKey == "" {
		if key, ok := vendorKeyEnv[s.Provider]; ok {
			set(&s.APIKey, key)
		}
	}
}

// ScriptPath returns ContextScript resolved against the directory of the
// settings file at path, or "" when no script is set.
func (s Settings) ScriptPath(path string) string {
	if s.ContextScript == "" || filepath.IsAbs(s.ContextScript) {
		return s.ContextScript
	}
	return filepath.Join(filepath.Dir(path), s.ContextScript)
}
