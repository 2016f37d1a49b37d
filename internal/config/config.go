package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/thereayou/colabnow/internal/logger"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowed_origins"` // для WebSocket, пусто - любой
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres | sqlite
		URL    string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	ListingsPerPage int `yaml:"listings_per_page"`
}

// Load читает .env, затем необязательный YAML из CONFIG_PATH,
// переменные окружения имеют приоритет
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logger.Debug(".env not found, using environment variables")
		}
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Server.Env = "development"
	cfg.Database.Driver = "postgres"
	cfg.JWT.TTLHours = 24
	cfg.ListingsPerPage = 10
	return cfg
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Env = getEnv("SERVER_ENV", c.Server.Env)
	if origins := getEnv("WS_ALLOWED_ORIGINS", ""); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.Redis.URL = getEnv("REDIS_URL", c.Redis.URL)
	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.JWT.TTLHours = getEnvAsInt("JWT_TTL_HOURS", c.JWT.TTLHours)
	c.ListingsPerPage = getEnvAsInt("LISTINGS_PER_PAGE", c.ListingsPerPage)
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	if c.ListingsPerPage <= 0 {
		return fmt.Errorf("LISTINGS_PER_PAGE must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
