package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config file and from environment
// variables, then validates the result. Environment variables use the
// WAVEFORGE_ prefix with underscores separating nested keys
// (e.g. WAVEFORGE_SERVER_PORT). Environment variables take precedence over
// values from the config file, which takes precedence over defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// A missing config file is fine; defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("WAVEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value for every configuration key so a
// bare environment still produces a runnable server.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("generation.min_duration", 2*time.Second)
	v.SetDefault("generation.max_duration", 8*time.Second)
	v.SetDefault("generation.step_interval", 500*time.Millisecond)
	v.SetDefault("generation.max_concurrent", 4)

	v.SetDefault("storage.audio_dir", "generated_audio")

	v.SetDefault("cleanup.retention", 24*time.Hour)
	v.SetDefault("cleanup.interval", time.Hour)
}
