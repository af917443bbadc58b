package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Transports supported by the gateway process
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// DefaultClasses lists the class labels generated when none are configured.
var DefaultClasses = []string{"5a", "5b", "6a", "6b", "7a", "7b", "8a", "8b", "9a", "9b", "10a", "10b"}

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Generator GeneratorConfig `mapstructure:"generator"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds gateway server configuration
type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	Transport string `mapstructure:"transport"` // stdio or http
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// GeneratorConfig holds the data generation parameters
type GeneratorConfig struct {
	Classes          []string `mapstructure:"classes"                              validate:"min=1,dive,required"`
	StudentsPerClass int      `mapstructure:"students_per_class"                   validate:"min=1,max=500"`
	MaxClassesPerSub int      `mapstructure:"max_classes_per_teacher_per_subject"  validate:"min=1"`
	Seed             uint64   `mapstructure:"seed"`
	BatchSize        int      `mapstructure:"batch_size"                           validate:"min=1"`
	TransactionSize  int      `mapstructure:"transaction_size"                     validate:"gtefield=BatchSize"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load loads configuration from file, .env and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Override with environment variables
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("database.path", "schule.db")
	v.SetDefault("generator.classes", DefaultClasses)
	v.SetDefault("generator.students_per_class", 25)
	v.SetDefault("generator.max_classes_per_teacher_per_subject", 4)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.batch_size", 500)
	v.SetDefault("generator.transaction_size", 5000)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
}

func bindEnvVars(v *viper.Viper) {
	// Server
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("server.port", p)
		}
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		v.Set("server.mode", mode)
	}
	if transport := os.Getenv("SCHULE_TRANSPORT"); transport != "" {
		v.Set("server.transport", transport)
	}

	// Database
	if path := os.Getenv("SCHULE_DB_PATH"); path != "" {
		v.Set("database.path", path)
	}

	// Generator
	if seed := os.Getenv("SCHULE_SEED"); seed != "" {
		if s, err := strconv.ParseUint(seed, 10, 64); err == nil {
			v.Set("generator.seed", s)
		}
	}
	if n := os.Getenv("SCHULE_STUDENTS_PER_CLASS"); n != "" {
		if s, err := strconv.Atoi(n); err == nil {
			v.Set("generator.students_per_class", s)
		}
	}

	// Rate Limit
	if enabled := os.Getenv("RATE_LIMIT_ENABLED"); enabled != "" {
		v.Set("rate_limit.enabled", enabled == "true")
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil {
			v.Set("rate_limit.requests_per_second", r)
		}
	}
	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			v.Set("rate_limit.burst", b)
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		return fmt.Errorf("invalid server mode: %s (must be 'debug', 'release', or 'test')", c.Server.Mode)
	}

	if c.Server.Transport != TransportStdio && c.Server.Transport != TransportHTTP {
		return fmt.Errorf("invalid transport: %s (must be '%s' or '%s')", c.Server.Transport, TransportStdio, TransportHTTP)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if err := c.Generator.Validate(); err != nil {
		return err
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit requests_per_second must be positive")
	}

	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the generator section using its struct tags
func (g *GeneratorConfig) Validate() error {
	if err := validate.Struct(g); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid generator.%s: failed '%s' check (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid generator settings: %w", err)
	}
	return nil
}
