package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads .env, then config.yaml from the given directories (./configs and
// . when none are given), then environment overrides, and validates the
// result.
func Load(searchPaths ...string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{"./configs", "."}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	cfg := Default()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindLegacyEnv keeps the flat variable names used by earlier deployments.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.gin_mode", "SERVER_GIN_MODE", "GIN_MODE")
	_ = v.BindEnv("database.enabled", "DATABASE_ENABLED", "ENABLE_DB")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("llm.api_key", "LLM_API_KEY", "GEMINI_API_KEY")
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.gin_mode", cfg.Server.GinMode)
	v.SetDefault("server.max_body_bytes", cfg.Server.MaxBodyBytes)
	v.SetDefault("server.static_root", cfg.Server.StaticRoot)

	v.SetDefault("database.enabled", cfg.Database.Enabled)
	v.SetDefault("database.url", cfg.Database.URL)
	v.SetDefault("database.seed", cfg.Database.Seed)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("llm.api_key", cfg.LLM.APIKey)
	v.SetDefault("llm.endpoint", cfg.LLM.Endpoint)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.timeout", cfg.LLM.Timeout)

	v.SetDefault("chat.history_size", cfg.Chat.HistorySize)

	r := cfg.Risk
	v.SetDefault("risk.weights.condition_urgency", r.Weights.ConditionUrgency)
	v.SetDefault("risk.weights.symptom_severity", r.Weights.SymptomSeverity)
	v.SetDefault("risk.weights.symptom_duration", r.Weights.SymptomDuration)
	v.SetDefault("risk.weights.age_factor", r.Weights.AgeFactor)
	v.SetDefault("risk.thresholds.high", r.Thresholds.High)
	v.SetDefault("risk.thresholds.medium", r.Thresholds.Medium)
	v.SetDefault("risk.thresholds.low", r.Thresholds.Low)
	v.SetDefault("risk.severity_step", r.SeverityStep)
	v.SetDefault("risk.duration_placeholder", r.DurationPlaceholder)
	v.SetDefault("risk.age_placeholder", r.AgePlaceholder)
	v.SetDefault("risk.default_urgency", r.DefaultUrgency)
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("%w: server.port is required", ErrInvalidConfig)
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be positive", ErrInvalidConfig)
	}
	if cfg.Database.Enabled && cfg.Database.URL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required when database is enabled", ErrInvalidConfig)
	}
	if cfg.LLM.Timeout <= 0 {
		return fmt.Errorf("%w: llm.timeout must be positive", ErrInvalidConfig)
	}
	if cfg.Chat.HistorySize <= 0 {
		return fmt.Errorf("%w: chat.history_size must be positive", ErrInvalidConfig)
	}
	if err := cfg.Risk.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// loadEnvFile loads the first .env found in the working directory, its
// parents, or the module root.
func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
