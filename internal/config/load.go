package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return loadWithFile("")
}

// loadWithFile is the worker behind Load. A non-empty configPath pins the
// config file instead of searching the working directory, which keeps
// tests independent of their working directory.
func loadWithFile(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can carry the
		// whole configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix("TENSLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "TENSLAB_SERVER_PORT"},
		{"server.log_level", "TENSLAB_SERVER_LOG_LEVEL"},
		{"database.url", "TENSLAB_DATABASE_URL"},
		{"sim.metal_implant_multiplier", "TENSLAB_SIM_METAL_IMPLANT_MULTIPLIER"},
		{"sim.shallow_bone_multiplier", "TENSLAB_SIM_SHALLOW_BONE_MULTIPLIER"},
		{"sim.comfortable_threshold", "TENSLAB_SIM_COMFORTABLE_THRESHOLD"},
		{"sim.comfort_moderate_threshold", "TENSLAB_SIM_COMFORT_MODERATE_THRESHOLD"},
		{"sim.moderate_risk_threshold", "TENSLAB_SIM_MODERATE_RISK_THRESHOLD"},
		{"sim.high_risk_threshold", "TENSLAB_SIM_HIGH_RISK_THRESHOLD"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
