package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains the settings of the external token-signing authority.
// Domain is the authority's hostname (keys are fetched from its JWKS
// endpoint), Audience is this API's identifier, and Algorithms is the list
// of accepted signing algorithms.
type AuthConfig struct {
	Domain     string   `mapstructure:"domain" validate:"required,hostname|fqdn"`
	Audience   string   `mapstructure:"audience" validate:"required"`
	Algorithms []string `mapstructure:"algorithms" validate:"required,min=1,dive,oneof=RS256 RS384 RS512"`
}
