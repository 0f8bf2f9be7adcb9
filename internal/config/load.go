package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// TODOAPI_DATABASE_URL for database.url.
const EnvPrefix = "TODOAPI"

// keys without defaults still need binding so AutomaticEnv sees them on Unmarshal.
var boundKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"redis.url",
}

// Load configuration from a .env file, environment variables and
// optionally a config.yaml in the working directory.
// Environment variables take precedence over values from config files.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Comma separated origins from the environment arrive as one element.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins[0])
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Pagination.MaxLimit < cfg.Pagination.UsersDefaultLimit ||
		cfg.Pagination.MaxLimit < cfg.Pagination.ProjectsDefaultLimit ||
		cfg.Pagination.MaxLimit < cfg.Pagination.TodosDefaultLimit ||
		cfg.Pagination.MaxLimit < cfg.Pagination.GroupsDefaultLimit {
		return errors.New("invalid configuration: pagination.max_limit is below a default limit")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.max_conns", 10)

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("pagination.users_default_limit", 100)
	v.SetDefault("pagination.projects_default_limit", 100)
	v.SetDefault("pagination.todos_default_limit", 100)
	v.SetDefault("pagination.groups_default_limit", 100)
	v.SetDefault("pagination.max_limit", 1000)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
