package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultNotificationListLimit = 50
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// comma separated, "*" allows any origin
		CORSAllowedOrigins string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // access token, minutes
		RefreshTTL int    `yaml:"refresh_ttl"` // refresh token, minutes
	} `yaml:"jwt"`

	Notifications struct {
		ListLimit int `yaml:"list_limit"`
	} `yaml:"notifications"`

	// Seeded as a staff account on startup when both are set.
	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads .env if present, then either the YAML file at CONFIG_PATH
// (default config/config.yaml) or, when DATABASE_URL is set, the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if os.Getenv("DATABASE_URL") == "" {
		configPath := getEnv("CONFIG_PATH", "config/config.yaml")

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	} else {
		cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
		cfg.Server.Port = getEnvInt("SERVER_PORT", 8000)
		cfg.Server.Env = getEnv("SERVER_ENV", "development")
		cfg.Server.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", "*")
		cfg.Database.Driver = getEnv("DATABASE_DRIVER", DriverPostgres)
		cfg.Database.DSN = os.Getenv("DATABASE_URL")
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = getEnvInt("JWT_ACCESS_TTL_MINUTES", 0)
		cfg.JWT.RefreshTTL = getEnvInt("JWT_REFRESH_TTL_MINUTES", 0)
		cfg.Notifications.ListLimit = getEnvInt("NOTIFICATIONS_LIST_LIMIT", 0)
	}

	// secrets may always come from the environment
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.CORSAllowedOrigins == "" {
		c.Server.CORSAllowedOrigins = "*"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = 5
	}
	if c.JWT.RefreshTTL <= 0 {
		c.JWT.RefreshTTL = 24 * 60
	}
	if c.Notifications.ListLimit <= 0 || c.Notifications.ListLimit > DefaultNotificationListLimit {
		c.Notifications.ListLimit = DefaultNotificationListLimit
	}
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters")
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.JWT.RefreshTTL) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
