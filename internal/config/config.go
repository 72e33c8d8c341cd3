package config

import (
	"github.com/Skufu/GoSymptom/internal/risk"
)

// Config is the main application configuration struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Risk     risk.Config    `mapstructure:"risk"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	GinMode      string `mapstructure:"gin_mode"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
	StaticRoot   string `mapstructure:"static_root"`
}

type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	// Seed upserts the embedded dataset into Postgres at startup.
	Seed bool `mapstructure:"seed"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig configures the Gemini text-generation collaborator. An empty
// APIKey disables remote calls; replies then come from templates.
type LLMConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
	Timeout  int    `mapstructure:"timeout"` // seconds
}

type ChatConfig struct {
	HistorySize int `mapstructure:"history_size"`
}

// Default returns the configuration used when no file or environment
// overrides a value.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			GinMode:      "release",
			MaxBodyBytes: 1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		LLM: LLMConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-1.5-flash",
			Timeout:  15,
		},
		Chat: ChatConfig{
			HistorySize: 5,
		},
		Risk: risk.DefaultConfig(),
	}
}
