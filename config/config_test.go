package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENAI_API_KEY", "GEMINI_API_KEY", "DEEPSEEK_API_KEY",
		"CONTENT_STUDIO_ADDR", "CONTENT_STUDIO_METRICS_ADDR",
		"CONTENT_STUDIO_LOG_LEVEL", "CONTENT_STUDIO_TEMPERATURE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	want := Default()
	want.LLM.Provider = "openai"
	want.LLM.Model = "gpt-4o-mini"
	assert.Equal(t, want, cfg)
	assert.InDelta(t, 0.8, cfg.LLM.Temperature, 1e-9)
}

func TestLoadProviderFromEnvWithoutFile(t *testing.T) {
	tests := []struct {
		env, provider, model string
	}{
		{"OPENAI_API_KEY", "openai", "gpt-4o-mini"},
		{"GEMINI_API_KEY", "gemini", "gemini-2.0-flash"},
		{"DEEPSEEK_API_KEY", "deepseek", "deepseek-chat"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, "env-key")

			cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
			require.NoError(t, err)
			assert.Equal(t, tt.provider, cfg.LLM.Provider)
			assert.Equal(t, tt.model, cfg.LLM.Model)
			assert.Equal(t, "env-key", cfg.LLM.APIKey)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadFileProviderWinsOverEnvKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gm-key")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: openai\n  model: gpt-4o\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Error(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  request_timeout: 15s
llm:
  provider: deepseek
  model: deepseek-chat
  api_key: file-key
  base_url: https://api.deepseek.com/v1/
  temperature: 0.3
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, ":2112", cfg.Server.MetricsAddr, "unset keys keep defaults")
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())

	s := cfg.LLM.Settings()
	assert.Equal(t, "https://api.deepseek.com/v1/", s.BaseURL)
	assert.Equal(t, "deepseek-chat", s.Model)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("OPENAI_API_KEY sets an empty provider", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "oa-key")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "openai", cfg.LLM.Provider)
		assert.Equal(t, "oa-key", cfg.LLM.APIKey)
	})

	t.Run("key for another provider is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gm-key")
		cfg := Default()
		cfg.LLM.Provider = "openai"
		cfg.applyEnvOverrides()
		assert.Equal(t, "openai", cfg.LLM.Provider)
		assert.Empty(t, cfg.LLM.APIKey)
	})

	t.Run("empty provider is set from the first key found", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gm-key")
		t.Setenv("DEEPSEEK_API_KEY", "ds-key")
		cfg := &Config{}
		cfg.applyEnvOverrides()
		assert.Equal(t, "gemini", cfg.LLM.Provider)
		assert.Equal(t, "gm-key", cfg.LLM.APIKey)
	})

	t.Run("server and log overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONTENT_STUDIO_ADDR", ":7000")
		t.Setenv("CONTENT_STUDIO_METRICS_ADDR", ":7001")
		t.Setenv("CONTENT_STUDIO_LOG_LEVEL", "warn")
		t.Setenv("CONTENT_STUDIO_TEMPERATURE", "1.2")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, ":7001", cfg.Server.MetricsAddr)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.InDelta(t, 1.2, cfg.LLM.Temperature, 1e-9)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = "gpt-4o-mini"
		cfg.LLM.APIKey = "k"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no provider", func(c *Config) { c.LLM.Provider = "" }},
		{"no model", func(c *Config) { c.LLM.Model = "" }},
		{"no key", func(c *Config) { c.LLM.APIKey = "" }},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.LLM.Temperature = -0.1 }},
		{"no addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("mock needs no key or model", func(t *testing.T) {
		cfg := Default()
		cfg.LLM.Provider = "mock"
		cfg.LLM.Model = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestNewLogger(t *testing.T) {
	l, err := LogConfig{Level: "debug"}.NewLogger()
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = LogConfig{Level: "loud"}.NewLogger()
	assert.Error(t, err)
}
