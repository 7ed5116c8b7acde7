// Package config loads ctxkit settings from files and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/ctxkit/tokens"
	"github.com/randalmurphal/ctxkit/truncate"
)

// EnvPrefix prefixes every environment variable read by LoadFromEnv.
const EnvPrefix = "CTXKIT_"

// Config holds settings for building an assembler and its collaborators.
type Config struct {
	// --- Budget ---

	// MaxTokens is the token ceiling for assembled context.
	// 0 derives the ceiling from Model.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens" jsonschema:"minimum=0"`

	// CharsPerToken is the assumed average characters per token.
	CharsPerToken float64 `json:"chars_per_token" yaml:"chars_per_token" toml:"chars_per_token" jsonschema:"minimum=0"`

	// Model selects a ceiling from tokens.ModelLimits when MaxTokens is 0.
	Model string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`

	// --- Assembly ---

	// ProjectRoot shortens block headers to root-relative paths.
	// Empty means detect from the working directory.
	ProjectRoot string `json:"project_root,omitempty" yaml:"project_root,omitempty" toml:"project_root,omitempty"`

	// TruncationMarker is appended to a block cut by the budget.
	TruncationMarker string `json:"truncation_marker" yaml:"truncation_marker" toml:"truncation_marker"`

	// MinTruncatedChars is the room a block needs to be partially included.
	MinTruncatedChars int `json:"min_truncated_chars" yaml:"min_truncated_chars" toml:"min_truncated_chars" jsonschema:"minimum=0"`

	// --- Sources ---

	// MaxFileBytes rejects larger files. 0 disables the limit.
	MaxFileBytes int64 `json:"max_file_bytes" yaml:"max_file_bytes" toml:"max_file_bytes" jsonschema:"minimum=0"`

	// Watch keeps cached content in sync with the filesystem.
	Watch bool `json:"watch" yaml:"watch" toml:"watch"`

	// PruneDeleted drops members whose file disappears while watching.
	PruneDeleted bool `json:"prune_deleted" yaml:"prune_deleted" toml:"prune_deleted"`

	// --- Prompt ---

	// SystemPrompt overrides the default assistant instructions.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty" toml:"system_prompt,omitempty"`

	// --- Logging ---

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// DefaultConfig returns a Config whose budget comes from the model limit,
// 8000 tokens when no model is set.
func DefaultConfig() Config {
	return Config{
		CharsPerToken:     tokens.DefaultCharsPerToken,
		TruncationMarker:  truncate.DefaultMarker,
		MinTruncatedChars: truncate.DefaultMinRemaining,
		MaxFileBytes:      1 << 20,
		PruneDeleted:      true,
		LogLevel:          "info",
	}
}

// Load reads a config file over the defaults. The format is chosen by
// extension: .yaml/.yml, .toml or .json.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes path into c. Fields absent from the file keep their
// current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse json config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the CTXKIT_ prefix and take precedence over
// existing values. Unparseable numbers and booleans are ignored.
//
// Supported variables:
//   - CTXKIT_MAX_TOKENS
//   - CTXKIT_CHARS_PER_TOKEN
//   - CTXKIT_MODEL
//   - CTXKIT_PROJECT_ROOT
//   - CTXKIT_TRUNCATION_MARKER
//   - CTXKIT_MIN_TRUNCATED_CHARS
//   - CTXKIT_MAX_FILE_BYTES
//   - CTXKIT_WATCH
//   - CTXKIT_PRUNE_DELETED
//   - CTXKIT_SYSTEM_PROMPT
//   - CTXKIT_LOG_LEVEL
func (c *Config) LoadFromEnv() {
	if v := getenv("MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
	if v := getenv("CHARS_PER_TOKEN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.CharsPerToken = f
		}
	}
	if v := getenv("MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("PROJECT_ROOT"); v != "" {
		c.ProjectRoot = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TRUNCATION_MARKER"); ok {
		c.TruncationMarker = v
	}
	if v := getenv("MIN_TRUNCATED_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinTruncatedChars = n
		}
	}
	if v := getenv("MAX_FILE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxFileBytes = n
		}
	}
	if v := getenv("WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Watch = b
		}
	}
	if v := getenv("PRUNE_DELETED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.PruneDeleted = b
		}
	}
	if v := getenv("SYSTEM_PROMPT"); v != "" {
		c.SystemPrompt = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func getenv(name string) string {
	return os.Getenv(EnvPrefix + name)
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be >= 0, got %d", c.MaxTokens)
	}
	if c.CharsPerToken < 0 {
		return fmt.Errorf("chars_per_token must be >= 0, got %v", c.CharsPerToken)
	}
	if c.MinTruncatedChars < 0 {
		return fmt.Errorf("min_truncated_chars must be >= 0, got %d", c.MinTruncatedChars)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0, got %d", c.MaxFileBytes)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Budget returns the context budget. MaxTokens wins over Model; with
// neither set the model default applies.
func (c Config) Budget() tokens.Budget {
	maxTokens := c.MaxTokens
	if maxTokens == 0 {
		maxTokens = tokens.GetModelLimit(c.Model)
	}
	return tokens.NewBudgetWithRatio(maxTokens, c.CharsPerToken)
}

// Truncator returns a truncator with the configured marker and threshold.
func (c Config) Truncator() *truncate.Truncator {
	return truncate.New().
		WithMarker(c.TruncationMarker).
		WithMinRemaining(c.MinTruncatedChars)
}

// SlogLevel returns the configured log level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// WithMaxTokens returns a copy of the config with the specified ceiling.
func (c Config) WithMaxTokens(n int) Config {
	c.MaxTokens = n
	return c
}

// WithProjectRoot returns a copy of the config with the specified root.
func (c Config) WithProjectRoot(root string) Config {
	c.ProjectRoot = root
	return c
}

// WithLogLevel returns a copy of the config with the specified log level.
func (c Config) WithLogLevel(level string) Config {
	c.LogLevel = level
	return c
}
