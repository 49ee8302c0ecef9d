// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configName = "tether.toml"

// Config tunes the console. All fields are optional; a missing file
// yields the defaults.
type Config struct {
	Prompt   string `toml:"prompt,omitempty"`
	Color    *bool  `toml:"color,omitempty"`
	Greeting string `toml:"greeting,omitempty"`
}

// DefaultConfigPath returns the per-user config location,
// e.g. ~/.config/tether/tether.toml on Linux.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tether", configName), nil
}

// LoadConfig reads a console config from path. A missing file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// PromptOrDefault returns the configured prompt, or the stock one.
func (c *Config) PromptOrDefault() string {
	if c.Prompt != "" {
		return c.Prompt
	}
	return "(tether) "
}

// ColorEnabled reports whether diagnostics should be colored. Defaults to
// on; NO_COLOR in the environment wins over the config.
func (c *Config) ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if c.Color != nil {
		return *c.Color
	}
	return true
}
