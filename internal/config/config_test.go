package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{"POMOPET_BACKEND", "GEMINI_API_KEY", "POMOPET_GEMINI_MODEL", "POMOPET_LOG_FILE",
		"POMOPET_FOCUS", "POMOPET_SHORT_BREAK", "POMOPET_LONG_BREAK", "POMOPET_MOTIVATION_TIMEOUT", "POMOPET_REWARD"} {
		t.Setenv(key, "")
	}
	t.Setenv("POMOPET_STATE_DIR", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, "json", cfg.Backend)
	assert.Equal(t, 25*time.Minute, cfg.Focus)
	assert.Equal(t, 5*time.Minute, cfg.ShortBreak)
	assert.Equal(t, 15*time.Minute, cfg.LongBreak)
	assert.Equal(t, 25, cfg.Reward)
	assert.Equal(t, 8*time.Second, cfg.MotivationTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, filepath.Join(dir, "pomopet.log"), cfg.LogPath())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	yaml := "backend: sqlite\nfocus: 50m\nshort_break: 10m\nreward: 40\ngemini_api_key: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0o644))
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("POMOPET_SHORT_BREAK", "7m")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, 50*time.Minute, cfg.Focus)
	assert.Equal(t, 7*time.Minute, cfg.ShortBreak)
	assert.Equal(t, 15*time.Minute, cfg.LongBreak)
	assert.Equal(t, 40, cfg.Reward)
	assert.Equal(t, "from-env", cfg.GeminiAPIKey)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("focus: [oops"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("POMOPET_REWARD", "lots")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero focus", func(c *Config) { c.Focus = 0 }},
		{"fractional seconds", func(c *Config) { c.ShortBreak = 1500 * time.Millisecond }},
		{"negative reward", func(c *Config) { c.Reward = -1 }},
		{"zero reward", func(c *Config) { c.Reward = 0 }},
		{"unknown backend", func(c *Config) { c.Backend = "redis" }},
		{"no state dir", func(c *Config) { c.StateDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()
			require.NoError(t, cfg.Validate())
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateNamesFirstBadDuration(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.Focus, cfg.ShortBreak, cfg.LongBreak = 0, 0, 0
	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "focus must be")
	}
}

func TestApplyFlags(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--focus", "90s", "--backend", "sqlite", "--reward", "5"}))
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.Equal(t, 90*time.Second, cfg.Focus)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, 5, cfg.Reward)
	assert.Equal(t, 5*time.Minute, cfg.ShortBreak, "unset flags keep earlier values")

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--long-break", "0s"}))
	assert.ErrorIs(t, cfg.ApplyFlags(fs), ErrInvalidConfig)
}
