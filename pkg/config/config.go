// File: pkg/config/config.go

// Package config loads the engine settings from a .transclude.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"transclude/pkg/include"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file discovered in the working directory when no
// explicit path is given.
const FileName = ".transclude.yaml"

// Config mirrors the recognized engine options. Field names follow the
// option names the engine documents.
type Config struct {
	CommonmarkRegex    bool   `yaml:"commonmarkRegex"`    // Enables the :[label](target) syntax.
	MarkdownItRegex    bool   `yaml:"markdownItRegex"`    // Enables the !!! include (target) !!! syntax.
	NotFoundMessage    string `yaml:"notFoundMessage"`    // {{FILE}} placeholder.
	CircularMessage    string `yaml:"circularMessage"`    // {{FILE}} and {{PARENT}} placeholders.
	QuoteFormatting    bool   `yaml:"quoteFormatting"`    // Global quote default.
	QuoteIncludeSource bool   `yaml:"quoteIncludeSource"` // Citation line on quoted content.
	QuoteSourceLabel   string `yaml:"quoteSourceLabel"`   // Citation label text.
}

// DefaultConfig returns the configuration matching the engine defaults.
func DefaultConfig() Config {
	defaults := include.DefaultSettings()
	return Config{
		CommonmarkRegex:    defaults.CommonmarkStyle,
		MarkdownItRegex:    defaults.MarkdownItStyle,
		NotFoundMessage:    defaults.NotFoundMessage,
		CircularMessage:    defaults.CircularMessage,
		QuoteFormatting:    defaults.QuoteFormatting,
		QuoteIncludeSource: defaults.QuoteIncludeSource,
		QuoteSourceLabel:   defaults.QuoteSourceLabel,
	}
}

// Load reads a settings file over the defaults. An empty path looks for
// .transclude.yaml in the working directory; a missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, FileName)
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Settings converts the configuration into engine settings.
func (c Config) Settings() include.Settings {
	return include.Settings{
		CommonmarkStyle:    c.CommonmarkRegex,
		MarkdownItStyle:    c.MarkdownItRegex,
		NotFoundMessage:    c.NotFoundMessage,
		CircularMessage:    c.CircularMessage,
		QuoteFormatting:    c.QuoteFormatting,
		QuoteIncludeSource: c.QuoteIncludeSource,
		QuoteSourceLabel:   c.QuoteSourceLabel,
	}
}
