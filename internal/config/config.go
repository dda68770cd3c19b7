// Package config loads adockit configuration from a YAML file with
// sensible defaults and a few environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"adockit/internal/asciidoc"
)

// Config holds all adockit configuration.
type Config struct {
	// Converter selects the output layout: deflist, bullets or inline.
	Converter string `yaml:"converter"`

	// SearchWindow is how many lines after a code block to look for an
	// explanation. 0 selects the built-in default.
	SearchWindow int `yaml:"search_window"`

	// Inline configures the inline-comment converter.
	Inline InlineConfig `yaml:"inline"`

	// Batch configures the batch runner.
	Batch BatchConfig `yaml:"batch"`

	// Logging configures the zap logger.
	Logging LoggingConfig `yaml:"logging"`

	// Languages overrides or extends the built-in language->comment-syntax
	// table, keyed by [source,<lang>] tag.
	Languages map[string]asciidoc.CommentStyle `yaml:"languages"`
}

// InlineConfig configures inline-comment conversion.
type InlineConfig struct {
	// MaxCommentLength flags explanations that would produce an overlong
	// comment. 0 disables the check.
	MaxCommentLength int `yaml:"max_comment_length"`

	// Overflow is the policy for overlong comments: shorten, list or skip.
	Overflow string `yaml:"overflow"`
}

// BatchConfig configures the batch runner.
type BatchConfig struct {
	// Workers caps concurrent file workers.
	Workers int `yaml:"workers"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Converter:    "deflist",
		SearchWindow: asciidoc.DefaultSearchWindow,
		Inline: InlineConfig{
			MaxCommentLength: 120,
			Overflow:         "shorten",
		},
		Batch: BatchConfig{Workers: 4},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file, fills unset fields with defaults and
// applies environment overrides. A missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// User language overrides feed the shared comment-syntax table.
	for lang, style := range cfg.Languages {
		asciidoc.RegisterCommentStyle(lang, style)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Converter == "" {
		c.Converter = d.Converter
	}
	if c.SearchWindow <= 0 {
		c.SearchWindow = d.SearchWindow
	}
	if c.Inline.Overflow == "" {
		c.Inline.Overflow = d.Inline.Overflow
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = d.Batch.Workers
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// applyEnv applies ADOCKIT_* environment overrides on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("ADOCKIT_CONVERTER"); v != "" {
		c.Converter = v
	}
	if v := os.Getenv("ADOCKIT_SEARCH_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SearchWindow = n
		}
	}
	if v := os.Getenv("ADOCKIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects values the rest of the program would choke on.
func (c *Config) Validate() error {
	switch c.Converter {
	case "deflist", "bullets", "inline":
	default:
		return fmt.Errorf("unknown converter %q", c.Converter)
	}
	switch c.Inline.Overflow {
	case "shorten", "list", "skip":
	default:
		return fmt.Errorf("unknown inline overflow policy %q", c.Inline.Overflow)
	}
	return nil
}
