package config

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

const (
	envLogLevel      = "NURIQA_LOG_LEVEL"
	envServerAddress = "NURIQA_SERVER_ADDRESS"
)

// ApplyEnv overlays environment variables onto cfg. Only variables that are
// set are applied.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if cfg == nil || lookup == nil {
		return nil
	}
	if v, ok := lookup(KeyOpenAIAPIKey); ok {
		cfg.OpenAI.APIKey = v
	}
	if v, ok := lookup(KeyPostgresHost); ok {
		cfg.Postgres.Host = v
	}
	if v, ok := lookup(KeyPostgresPort); ok {
		port, err := parsePort(KeyPostgresPort, v)
		if err != nil {
			return err
		}
		cfg.Postgres.Port = port
	}
	if v, ok := lookup(KeyPostgresDB); ok {
		cfg.Postgres.DBName = v
	}
	if v, ok := lookup(KeyRedisHost); ok {
		cfg.Redis.Host = v
	}
	if v, ok := lookup(KeyRedisPort); ok {
		port, err := parsePort(KeyRedisPort, v)
		if err != nil {
			return err
		}
		cfg.Redis.Port = port
	}
	if v, ok := lookup(envLogLevel); ok {
		cfg.Basic.LogLevel = v
	}
	if v, ok := lookup(envServerAddress); ok {
		cfg.Basic.ServerAddress = v
	}
	return nil
}

// FromSettings builds a validated config from the flat key/value mapping.
// Keys that are absent keep their defaults; unknown keys are rejected.
func FromSettings(settings map[string]any) (*Config, error) {
	cfg := Default()
	for key, raw := range settings {
		switch key {
		case KeyOpenAIAPIKey:
			v, err := stringSetting(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.OpenAI.APIKey = v
		case KeyPostgresHost:
			v, err := stringSetting(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.Postgres.Host = v
		case KeyPostgresDB:
			v, err := stringSetting(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.Postgres.DBName = v
		case KeyRedisHost:
			v, err := stringSetting(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.Redis.Host = v
		case KeyPostgresPort:
			v, err := portSetting(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.Postgres.Port = v
		case KeyRedisPort:
			v, err := portSetting(key, raw)
			if err != nil {
				return nil, err
			}
			cfg.Redis.Port = v
		default:
			return nil, fmt.Errorf("%w: unknown setting %q", ErrInvalidConfig, key)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Settings flattens the connection parameters into a new map keyed by
// SettingKeys.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		KeyOpenAIAPIKey: c.OpenAI.APIKey,
		KeyPostgresHost: c.Postgres.Host,
		KeyPostgresPort: c.Postgres.Port,
		KeyPostgresDB:   c.Postgres.DBName,
		KeyRedisHost:    c.Redis.Host,
		KeyRedisPort:    c.Redis.Port,
	}
}

func stringSetting(key string, raw any) (string, error) {
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidConfig, key, raw)
	}
	return v, nil
}

func portSetting(key string, raw any) (int, error) {
	var port int64
	switch v := raw.(type) {
	case int:
		port = int64(v)
	case int32:
		port = int64(v)
	case int64:
		port = v
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s must be a whole number", ErrInvalidConfig, key)
		}
		port = int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		port = n
	case string:
		return parsePort(key, v)
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidConfig, key, raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrInvalidConfig, key, port)
	}
	return int(port), nil
}

func parsePort(key, value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
	}
	if !ValidPort(port) {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrInvalidConfig, key, port)
	}
	return port, nil
}
