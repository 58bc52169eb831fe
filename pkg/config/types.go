package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent marketbot configuration stored as
// config.toml in the .marketbot/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Client  ClientConfig `toml:"client"`
	Chat    ChatConfig   `toml:"chat"`
}

// ClientConfig holds settings for the generative-language API client.
type ClientConfig struct {
	// Endpoint is the API base URL (scheme + host, no trailing slash).
	Endpoint string `toml:"endpoint,omitempty"`

	// Model is the model name used for generateContent calls.
	Model string `toml:"model,omitempty"`
}

// ChatConfig holds settings for the interactive chat session.
type ChatConfig struct {
	// HistoryWindow is the number of recent non-system turns sent per request.
	HistoryWindow uint `toml:"history_window,omitempty"`

	// MaxAttempts is the total attempt cap for one API call, retries included.
	MaxAttempts uint `toml:"max_attempts,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.endpoint": {
		get: func(c *Config) string { return c.Client.Endpoint },
		set: func(c *Config, v string) error { c.Client.Endpoint = v; return nil },
	},
	"client.model": {
		get: func(c *Config) string { return c.Client.Model },
		set: func(c *Config, v string) error { c.Client.Model = v; return nil },
	},
	"chat.history_window": {
		get: func(c *Config) string {
			if c.Chat.HistoryWindow == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Chat.HistoryWindow), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for chat.history_window: %w", err)
			}
			c.Chat.HistoryWindow = uint(n)
			return nil
		},
	},
	"chat.max_attempts": {
		get: func(c *Config) string {
			if c.Chat.MaxAttempts == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Chat.MaxAttempts), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for chat.max_attempts: %w", err)
			}
			c.Chat.MaxAttempts = uint(n)
			return nil
		},
	},
}
