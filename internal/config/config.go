// Package config loads the optional user configuration file at
// ~/.crabculator/config.toml, in the TOML-with-struct-tags style the
// teacher uses for its own data files (internal/tqw's toml.Unmarshal of
// tagged structs). A missing or malformed file is never an error here: it
// is simply treated as "no overrides", since the calculator must work with
// zero configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "config.toml"

// DefaultDebounceMillis is the UI's error-message reveal delay from
// spec.md §6, overridable via config so a user can tune it.
const DefaultDebounceMillis = 500

// Config holds the user-tunable settings the core is aware of. Everything
// else about presentation (theme, panel layout) belongs to the UI
// collaborator and is out of scope here.
type Config struct {
	// Constants lets a user override or extend the built-in constant
	// table for their own sessions, e.g. adding a project-specific value.
	Constants map[string]float64 `toml:"constants"`

	// DebounceMillis is the delay, in milliseconds, the UI should wait
	// after the last edit on a line before revealing that line's error
	// message. It is carried here only because it is a meaningful runtime
	// tunable; the debounce timer itself is implemented by the UI.
	DebounceMillis int `toml:"debounce_millis"`
}

// Default returns the zero-override configuration.
func Default() Config {
	return Config{DebounceMillis: DefaultDebounceMillis}
}

// Path returns the fixed config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".crabculator", fileName), nil
}

// Load reads and parses the config file. A missing file, or one that fails
// to parse, yields Default() rather than an error: configuration is purely
// additive and must never block startup.
func Load() Config {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	var parsed Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return cfg
	}

	if parsed.DebounceMillis > 0 {
		cfg.DebounceMillis = parsed.DebounceMillis
	}
	cfg.Constants = parsed.Constants
	return cfg
}

// ApplyConstants passes each of the config's constant overrides to set,
// called once with a fresh evaluator.Context's Set method at startup.
func (c Config) ApplyConstants(set func(name string, value float64)) {
	for name, v := range c.Constants {
		set(name, v)
	}
}
