package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SQLTREE_LOG_LEVEL", "SQLTREE_LOG_FORMAT", "SQLTREE_OUTPUT", "SQLTREE_LOAD_CONCURRENCY"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, 8, cfg.LoadConcurrency)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLTREE_LOG_LEVEL", "DEBUG")
	t.Setenv("SQLTREE_LOG_FORMAT", "json")
	t.Setenv("SQLTREE_OUTPUT", "json")
	t.Setenv("SQLTREE_LOAD_CONCURRENCY", "3")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 3, cfg.LoadConcurrency)
}

func TestLoadFromEnv_Warnings(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLTREE_LOG_LEVEL", "chatty")
	t.Setenv("SQLTREE_LOAD_CONCURRENCY", "-2")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.LoadConcurrency)
	assert.Len(t, cfg.Warnings, 2)
}

func TestLoadFromEnv_InvalidOutput(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLTREE_OUTPUT", "xml")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tc.level}
			assert.Equal(t, tc.want, cfg.SlogLevel())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := `# sqltree settings
SQLTREE_OUTPUT="json"
SQLTREE_LOG_LEVEL='debug'

export SQLTREE_LOAD_CONCURRENCY=4
SQLTREE_TEST_OTHER_TOOL_TOKEN=kept
OTHER_TOOL_TOKEN=secret
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	clearEnv(t)
	t.Setenv("SQLTREE_LOG_LEVEL", "warn") // already set, must win
	t.Setenv("SQLTREE_TEST_OTHER_TOOL_TOKEN", "")
	t.Setenv("OTHER_TOOL_TOKEN", "")

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "json", os.Getenv("SQLTREE_OUTPUT"))
	assert.Equal(t, "warn", os.Getenv("SQLTREE_LOG_LEVEL"))
	assert.Equal(t, "4", os.Getenv("SQLTREE_LOAD_CONCURRENCY"))
	assert.Equal(t, "kept", os.Getenv("SQLTREE_TEST_OTHER_TOOL_TOKEN"))
	assert.Empty(t, os.Getenv("OTHER_TOOL_TOKEN"), "keys outside the SQLTREE_ prefix are ignored")
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SQLTREE_OUTPUT=json\nNOT_A_PAIR\n"), 0o600))
	clearEnv(t)

	err := LoadDotEnv(envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env:2: expected KEY=VALUE")
}

func TestUnquote(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"json"`, "json"},
		{`'debug'`, "debug"},
		{`"mixed'`, `"mixed'`},
		{`"`, `"`},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, unquote(tc.in))
		})
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
