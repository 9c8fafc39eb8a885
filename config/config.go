// Package config loads the studio's YAML configuration and applies
// environment overrides. The loaded value is passed explicitly to the
// components that need it; nothing here is global.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"ai_content_studio/generator"
)

const (
	DefaultPath     = "config/config.yaml"
	DefaultProvider = "openai"
)

// defaultModels fills llm.model when the file leaves it empty.
var defaultModels = map[string]string{
	"openai":   "gpt-4o-mini",
	"deepseek": "deepseek-chat",
	"gemini":   "gemini-2.0-flash",
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			MetricsAddr:    ":2112",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   90 * time.Second,
			RequestTimeout: 60 * time.Second,
		},
		LLM: LLMConfig{
			Temperature: generator.DefaultTemperature,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	cfg.applyProviderDefaults()
	return cfg, nil
}

// applyEnvOverrides lets the environment supply the credential and listen
// addresses. A provider key sets the provider only when none is configured.
func (c *Config) applyEnvOverrides() {
	for _, k := range []struct{ env, provider string }{
		{"OPENAI_API_KEY", "openai"},
		{"GEMINI_API_KEY", "gemini"},
		{"DEEPSEEK_API_KEY", "deepseek"},
	} {
		v := os.Getenv(k.env)
		if v == "" {
			continue
		}
		if c.LLM.Provider == "" {
			c.LLM.Provider = k.provider
		}
		if c.LLM.Provider == k.provider {
			c.LLM.APIKey = v
		}
	}
	if v := os.Getenv("CONTENT_STUDIO_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CONTENT_STUDIO_METRICS_ADDR"); v != "" {
		c.Server.MetricsAddr = v
	}
	if v := os.Getenv("CONTENT_STUDIO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONTENT_STUDIO_TEMPERATURE"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.LLM.Temperature = t
		}
	}
}

// applyProviderDefaults runs after env overrides so a provider key in the
// environment can pick the provider before openai is assumed.
func (c *Config) applyProviderDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModels[c.LLM.Provider]
	}
}

func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return errors.New("llm.provider is required")
	}
	if c.LLM.Model == "" && c.LLM.Provider != "mock" {
		return errors.New("llm.model is required")
	}
	if c.LLM.APIKey == "" && c.LLM.Provider != "mock" {
		return fmt.Errorf("llm.api_key is required for provider %s", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %v", c.LLM.Temperature)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}

// Settings converts the llm section for generator.NewLLM.
func (c LLMConfig) Settings() generator.LLMSettings {
	return generator.LLMSettings{
		Provider:    c.Provider,
		Model:       c.Model,
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Temperature: c.Temperature,
	}
}
