package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	PokeAPI PokeAPIConfig `mapstructure:"pokeapi"`
	Server  ServerConfig  `mapstructure:"server"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
}

type PokeAPIConfig struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RetryAttempts uint          `mapstructure:"retry_attempts" validate:"min=1,max=10"`
	Concurrency   int           `mapstructure:"concurrency" validate:"min=1,max=64"`
	SearchLimit   int           `mapstructure:"search_limit" validate:"min=1,max=100000"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

type ExportConfig struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

var envBindings = map[string]string{
	"pokeapi.base_url":       "POKEAPI_BASE_URL",
	"pokeapi.timeout":        "POKEAPI_TIMEOUT",
	"pokeapi.retry_attempts": "POKEAPI_RETRY_ATTEMPTS",
	"pokeapi.concurrency":    "POKEAPI_CONCURRENCY",
	"pokeapi.search_limit":   "POKEAPI_SEARCH_LIMIT",
	"server.addr":            "HTTP_ADDR",
	"export.bucket":          "BUCKET_NAME",
	"export.region":          "AWS_REGION",
	"log.level":              "LOG_LEVEL",
	"log.development":        "LOG_DEVELOPMENT",
}

// Load reads configFile when given, otherwise looks for config.yaml in the
// working directory and $HOME/.config/pokedex. A missing file is not an
// error; environment variables override file values.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pokedex")
	}

	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("pokeapi.timeout", 10*time.Second)
	v.SetDefault("pokeapi.retry_attempts", 1)
	v.SetDefault("pokeapi.concurrency", 8)
	v.SetDefault("pokeapi.search_limit", 2000)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
