package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat              string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL      string `mapstructure:"url" validate:"required,url"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,lt=525600"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// RedisConfig configures the refresh-token store. An empty URL disables it
// and refresh tokens become stateless.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// PaginationConfig holds the limit-offset defaults per resource.
type PaginationConfig struct {
	UsersDefaultLimit    int `mapstructure:"users_default_limit" validate:"gt=0"`
	ProjectsDefaultLimit int `mapstructure:"projects_default_limit" validate:"gt=0"`
	TodosDefaultLimit    int `mapstructure:"todos_default_limit" validate:"gt=0"`
	GroupsDefaultLimit   int `mapstructure:"groups_default_limit" validate:"gt=0"`
	MaxLimit             int `mapstructure:"max_limit" validate:"gt=0"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
