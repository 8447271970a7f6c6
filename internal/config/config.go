package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage"    validate:"required"`
	Cleanup    CleanupConfig    `mapstructure:"cleanup"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// GenerationConfig controls the pacing of simulated generation work.
// The estimated processing time grows with the description length and is
// clamped to [MinDuration, MaxDuration].
type GenerationConfig struct {
	MinDuration   time.Duration `mapstructure:"min_duration"   validate:"required,gt=0"`
	MaxDuration   time.Duration `mapstructure:"max_duration"   validate:"required,gtefield=MinDuration"`
	StepInterval  time.Duration `mapstructure:"step_interval"  validate:"required,gt=0"`
	MaxConcurrent int           `mapstructure:"max_concurrent" validate:"required,gt=0"`
}

// StorageConfig contains settings for the artifact storage area.
type StorageConfig struct {
	AudioDir string `mapstructure:"audio_dir" validate:"required"`
}

// CleanupConfig controls the background sweep that expires old tasks.
type CleanupConfig struct {
	Retention time.Duration `mapstructure:"retention" validate:"required,gt=0"`
	Interval  time.Duration `mapstructure:"interval"  validate:"required,gt=0"`
}
