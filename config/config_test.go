package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/ctxkit/tokens"
	"github.com/randalmurphal/ctxkit/truncate"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.MaxTokens)
	assert.Equal(t, 8000, cfg.Budget().MaxTokens)
	assert.Equal(t, 4.0, cfg.CharsPerToken)
	assert.Equal(t, truncate.DefaultMarker, cfg.TruncationMarker)
	assert.Equal(t, 100, cfg.MinTruncatedChars)
	assert.True(t, cfg.PruneDeleted)
	assert.False(t, cfg.Watch)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 32000, cfg.Budget().MaxChars())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "ctxkit.yaml",
			content: `max_tokens: 2000
chars_per_token: 3.5
project_root: /work/proj
watch: true
log_level: debug
`,
		},
		{
			name: "toml",
			file: "ctxkit.toml",
			content: `max_tokens = 2000
chars_per_token = 3.5
project_root = "/work/proj"
watch = true
log_level = "debug"
`,
		},
		{
			name:    "json",
			file:    "ctxkit.json",
			content: `{"max_tokens": 2000, "chars_per_token": 3.5, "project_root": "/work/proj", "watch": true, "log_level": "debug"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, 2000, cfg.MaxTokens)
			assert.Equal(t, 3.5, cfg.CharsPerToken)
			assert.Equal(t, "/work/proj", cfg.ProjectRoot)
			assert.True(t, cfg.Watch)
			assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
			assert.Equal(t, 7000, cfg.Budget().MaxChars())

			// Fields absent from the file keep their defaults.
			assert.Equal(t, truncate.DefaultMarker, cfg.TruncationMarker)
			assert.True(t, cfg.PruneDeleted)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	ini := filepath.Join(dir, "ctxkit.ini")
	require.NoError(t, os.WriteFile(ini, []byte("x=1"), 0644))
	_, err = Load(ini)
	assert.ErrorContains(t, err, "unsupported config format")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_tokens: [1, 2"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parse yaml config")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CTXKIT_MAX_TOKENS", "1234")
	t.Setenv("CTXKIT_CHARS_PER_TOKEN", "3")
	t.Setenv("CTXKIT_MODEL", "gpt-4o")
	t.Setenv("CTXKIT_PROJECT_ROOT", "/env/root")
	t.Setenv("CTXKIT_TRUNCATION_MARKER", "")
	t.Setenv("CTXKIT_MIN_TRUNCATED_CHARS", "10")
	t.Setenv("CTXKIT_MAX_FILE_BYTES", "2048")
	t.Setenv("CTXKIT_WATCH", "true")
	t.Setenv("CTXKIT_PRUNE_DELETED", "false")
	t.Setenv("CTXKIT_SYSTEM_PROMPT", "be brief")
	t.Setenv("CTXKIT_LOG_LEVEL", "warn")

	cfg := FromEnv()

	assert.Equal(t, 1234, cfg.MaxTokens)
	assert.Equal(t, 3.0, cfg.CharsPerToken)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "/env/root", cfg.ProjectRoot)
	assert.Equal(t, "", cfg.TruncationMarker)
	assert.Equal(t, 10, cfg.MinTruncatedChars)
	assert.Equal(t, int64(2048), cfg.MaxFileBytes)
	assert.True(t, cfg.Watch)
	assert.False(t, cfg.PruneDeleted)
	assert.Equal(t, "be brief", cfg.SystemPrompt)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoadFromEnv_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("CTXKIT_MAX_TOKENS", "lots")
	t.Setenv("CTXKIT_WATCH", "maybe")

	cfg := FromEnv()

	assert.Equal(t, 0, cfg.MaxTokens)
	assert.Equal(t, tokens.DefaultMaxTokens, cfg.Budget().MaxTokens)
	assert.False(t, cfg.Watch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "negative tokens", mutate: func(c *Config) { c.MaxTokens = -1 }, wantErr: "max_tokens"},
		{name: "negative ratio", mutate: func(c *Config) { c.CharsPerToken = -2 }, wantErr: "chars_per_token"},
		{name: "negative threshold", mutate: func(c *Config) { c.MinTruncatedChars = -1 }, wantErr: "min_truncated_chars"},
		{name: "negative file limit", mutate: func(c *Config) { c.MaxFileBytes = -1 }, wantErr: "max_file_bytes"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBudget_FromModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "llama-3.3-70b-versatile"

	assert.Equal(t, 16000, cfg.Budget().MaxTokens)

	cfg.Model = ""
	assert.Equal(t, tokens.DefaultMaxTokens, cfg.Budget().MaxTokens)

	cfg.MaxTokens = 500
	cfg.Model = "gpt-4o"
	assert.Equal(t, 500, cfg.Budget().MaxTokens, "explicit max_tokens wins")
}

func TestLoad_ModelOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctxkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4o\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 32000, cfg.Budget().MaxTokens)
}

func TestLoadFromEnv_ModelOnly(t *testing.T) {
	t.Setenv("CTXKIT_MODEL", "claude-3-5-sonnet-20241022")

	cfg := FromEnv()

	assert.Equal(t, 50000, cfg.Budget().MaxTokens)
}

func TestTruncator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TruncationMarker = "[cut]"
	cfg.MinTruncatedChars = 5

	tr := cfg.Truncator()

	assert.Equal(t, "[cut]", tr.Marker())
	assert.Equal(t, 5, tr.MinRemaining())
}

func TestWithHelpers(t *testing.T) {
	base := DefaultConfig()

	changed := base.WithMaxTokens(10).WithProjectRoot("/r").WithLogLevel("error")

	assert.Equal(t, 10, changed.MaxTokens)
	assert.Equal(t, "/r", changed.ProjectRoot)
	assert.Equal(t, slog.LevelError, changed.SlogLevel())
	assert.Equal(t, 0, base.MaxTokens, "original is not modified")
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "ctxkit configuration", doc["title"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "schema should inline properties")
	for _, key := range []string{"max_tokens", "chars_per_token", "truncation_marker", "watch", "log_level"} {
		assert.Contains(t, props, key)
	}
	assert.NotContains(t, doc, "required")
}
