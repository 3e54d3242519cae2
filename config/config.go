// Package config loads service settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported trace exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config is the complete service configuration.
type Config struct {
	Server          Server        `yaml:"server"`
	Database        Database      `yaml:"database"`
	Tracing         Tracing       `yaml:"tracing"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// Server configures the HTTP listener.
type Server struct {
	Port               int    `yaml:"port" validate:"min=1,max=65535"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins" validate:"required"`
}

// Addr returns the listen address for Port.
func (s Server) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// Database configures the relational store.
type Database struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite postgres"`
	URI    string `yaml:"uri" validate:"required"`
	Debug  bool   `yaml:"debug"`
}

// Tracing configures the OpenTelemetry exporter.
type Tracing struct {
	Exporter    string `yaml:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint    string `yaml:"endpoint" validate:"required_if=Exporter otlp"`
	ServiceName string `yaml:"service_name" validate:"required"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: Server{
			Port:               8080,
			CORSAllowedOrigins: "http://localhost:3000,http://localhost:8080",
		},
		Database: Database{
			URI: "products.db",
		},
		Tracing: Tracing{
			Exporter:    ExporterNone,
			Endpoint:    "localhost:4317",
			ServiceName: "product-catalog",
		},
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it. Environment variables override both.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverFromURI(cfg.Database.URI)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.Server.CORSAllowedOrigins)
	c.Database.URI = getEnv("DATABASE_URI", c.Database.URI)
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Debug = getEnvBool("DB_DEBUG", c.Database.Debug)
	c.Tracing.Exporter = getEnv("TRACE_EXPORTER", c.Tracing.Exporter)
	c.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.ServiceName = getEnv("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

// DriverFromURI picks the driver matching a DSN. PostgreSQL URLs select
// postgres; anything else is treated as a SQLite path.
func DriverFromURI(uri string) string {
	lower := strings.ToLower(uri)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

var validate = validator.New()

// Validate checks the struct-tag rules.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(msgs, "\n- "))
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
