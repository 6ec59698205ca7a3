package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Flat setting names shared by the environment overlay and the settings map.
const (
	KeyOpenAIAPIKey = "OPENAI_API_KEY"
	KeyPostgresHost = "POSTGRES_HOST"
	KeyPostgresPort = "POSTGRES_PORT"
	KeyPostgresDB   = "POSTGRES_DB"
	KeyRedisHost    = "REDIS_HOST"
	KeyRedisPort    = "REDIS_PORT"
)

// SettingKeys lists the flat keys in a stable order.
var SettingKeys = []string{
	KeyOpenAIAPIKey,
	KeyPostgresHost,
	KeyPostgresPort,
	KeyPostgresDB,
	KeyRedisHost,
	KeyRedisPort,
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents runtime configuration for the service.
type Config struct {
	Basic    BasicConfig    `json:"basic_config" yaml:"basic_config"`
	OpenAI   OpenAIConfig   `json:"openai" yaml:"openai"`
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
	Redis    RedisConfig    `json:"redis" yaml:"redis"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address" yaml:"server_address"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
}

type OpenAIConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Model   string `json:"model" yaml:"model"`
}

type PostgresConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	DBName   string `json:"db_name" yaml:"db_name"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	SSLMode  string `json:"ssl_mode" yaml:"ssl_mode"`
}

type RedisConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// Default returns a config populated with local development defaults.
func Default() *Config {
	return &Config{
		Basic: BasicConfig{
			ServerAddress: ":8090",
			LogLevel:      "info",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			DBName:  "nuri_qa",
			User:    "postgres",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
	}
}

// Load reads configuration from the provided path, overlays the process
// environment and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	}
	return nil
}

// Validate checks that connection parameters are usable.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Postgres.Host) == "" {
		return fmt.Errorf("%w: postgres host must be configured", ErrInvalidConfig)
	}
	if !ValidPort(c.Postgres.Port) {
		return fmt.Errorf("%w: postgres port %d out of range", ErrInvalidConfig, c.Postgres.Port)
	}
	if strings.TrimSpace(c.Postgres.DBName) == "" {
		return fmt.Errorf("%w: postgres database must be configured", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Redis.Host) == "" {
		return fmt.Errorf("%w: redis host must be configured", ErrInvalidConfig)
	}
	if !ValidPort(c.Redis.Port) {
		return fmt.Errorf("%w: redis port %d out of range", ErrInvalidConfig, c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("%w: redis db must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ValidPort reports whether p is a usable TCP port.
func ValidPort(p int) bool {
	return p >= 1 && p <= 65535
}
