package config

import (
	"errors"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"uno-server/internal/util"
)

// Config provides configuration for the UNO server
type Config struct {
	loaded         bool
	Addr           string `yaml:"addr"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Archive struct {
		Enabled bool `yaml:"enabled"`
	}
	Game struct {
		CardsPerPlayer int `yaml:"cardsPerPlayer" envconfig:"cards_per_player"`
		MaxGames       int `yaml:"maxGames" envconfig:"max_games"`
		// FinishedSeconds is how long a finished game stays around before it is retired
		FinishedSeconds int `yaml:"finishedSeconds" envconfig:"finished_seconds"`
	}
}

var config Config

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() Config {
	cfg := Config{
		Addr:           ":5000",
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
	}

	cfg.Log.Level = "info"
	cfg.Game.CardsPerPlayer = 7
	cfg.Game.MaxGames = 100
	cfg.Game.FinishedSeconds = 60

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values in the file override the defaults, and environment variables prefixed with UNO_ override the file
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("UNO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("uno", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
