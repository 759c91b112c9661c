package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Sim      SimConfig      `mapstructure:"sim"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// SimConfig contains optional overrides for the simulation model
// coefficients. Zero values keep the built-in defaults; see
// sim.NewDefaultParams for those.
type SimConfig struct {
	MetalImplantMultiplier float64 `mapstructure:"metal_implant_multiplier" validate:"omitempty,gte=1"`
	ShallowBoneMultiplier  float64 `mapstructure:"shallow_bone_multiplier"  validate:"omitempty,gte=1"`

	ComfortableThreshold     int `mapstructure:"comfortable_threshold"      validate:"omitempty,gt=0,lte=100"`
	ComfortModerateThreshold int `mapstructure:"comfort_moderate_threshold" validate:"omitempty,gt=0,lte=100"`
	ModerateRiskThreshold    int `mapstructure:"moderate_risk_threshold"    validate:"omitempty,gt=0,lte=100"`
	HighRiskThreshold        int `mapstructure:"high_risk_threshold"        validate:"omitempty,gt=0,lte=100"`
}
