// Package userconfig manages the optional uvhow config file.
// Settings live in config.toml under the user config directory and are
// modified via the `uvhow config` command.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/uvhow-dev/uvhow/internal/config"
)

// Emoji rendering modes for the CLI output.
const (
	EmojiAuto   = "auto"   // emoji when stdout is a terminal
	EmojiAlways = "always" // emoji unconditionally
	EmojiNever  = "never"  // plain text
)

// Config represents user-configurable settings.
type Config struct {
	// Command is the executable name to detect. Default "uv".
	Command string `toml:"command"`

	// ProbeTimeoutSeconds bounds the version probe. Zero means use
	// UVHOW_PROBE_TIMEOUT or the built-in default.
	ProbeTimeoutSeconds int `toml:"probe_timeout"`

	// Emoji selects output styling: auto, always, or never.
	Emoji string `toml:"emoji"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Command:             "uv",
		ProbeTimeoutSeconds: 0,
		Emoji:               EmojiAuto,
	}
}

// Load reads the config file and returns the configuration. A missing
// file yields defaults; only a present-but-unparseable file is an
// error.
func Load() (*Config, error) {
	path, err := config.ConfigFile()
	if err != nil {
		return DefaultConfig(), nil
	}

	return loadFromPath(path)
}

func loadFromPath(path string) (*Config, error) {
	userCfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return userCfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), userCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if userCfg.Command == "" {
		userCfg.Command = "uv"
	}
	if userCfg.Emoji == "" {
		userCfg.Emoji = EmojiAuto
	}

	return userCfg, nil
}

// Save writes the configuration to the config file, creating the
// parent directory if needed.
func (c *Config) Save() error {
	path, err := config.ConfigFile()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.saveToPath(path)
}

func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the value of a config key as a string.
// Returns false if the key doesn't exist.
func (c *Config) Get(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "command":
		return c.Command, true
	case "probe_timeout":
		return strconv.Itoa(c.ProbeTimeoutSeconds), true
	case "emoji":
		return c.Emoji, true
	default:
		return "", false
	}
}

// Set updates a config value from a string. Returns an error for
// unknown keys or invalid values.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "command":
		if value == "" {
			return fmt.Errorf("command must not be empty")
		}
		c.Command = value
		return nil
	case "probe_timeout":
		secs, err := strconv.Atoi(value)
		if err != nil || secs < 0 {
			return fmt.Errorf("invalid value for probe_timeout: must be a non-negative number of seconds")
		}
		c.ProbeTimeoutSeconds = secs
		return nil
	case "emoji":
		switch strings.ToLower(value) {
		case EmojiAuto, EmojiAlways, EmojiNever:
			c.Emoji = strings.ToLower(value)
			return nil
		}
		return fmt.Errorf("invalid value for emoji: must be auto, always, or never")
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// AvailableKeys returns all configurable keys with descriptions.
func AvailableKeys() map[string]string {
	return map[string]string{
		"command":       "Executable name to detect (default: uv)",
		"probe_timeout": "Version probe timeout in seconds (0 = default)",
		"emoji":         "Output styling: auto, always, or never",
	}
}
