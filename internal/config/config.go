// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Blob     BlobConfig     `mapstructure:"blob"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the persistence source settings. An empty URL
// means the server runs purely in memory, starting from the seed
// collection.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
	// Seed controls whether an empty collection is populated with the
	// built-in demo ferments at startup.
	Seed bool `mapstructure:"seed"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"omitempty,gte=4,lte=31"`
}

// BlobConfig selects and configures the image blob storage driver.
type BlobConfig struct {
	// Driver is one of "memory", "filesystem", or "s3".
	Driver string `mapstructure:"driver" validate:"required,oneof=memory filesystem s3"`
	// BasePath is the root directory for the filesystem driver.
	BasePath string `mapstructure:"base_path" validate:"required_if=Driver filesystem"`
	// Bucket and Region configure the s3 driver. Endpoint is optional and
	// enables S3-compatible stores such as MinIO.
	Bucket   string `mapstructure:"bucket" validate:"required_if=Driver s3"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// DispatchConfig controls the reminder dispatch loop.
type DispatchConfig struct {
	// Enabled turns the background dispatcher on.
	Enabled bool `mapstructure:"enabled"`
	// PollIntervalSeconds is how often due reminders are scanned for.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"omitempty,gt=0"`
}
