package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config.yaml"

// Load builds the configuration. Values come from the environment, then the
// YAML file, then env-default tags. An optional ./.env is merged into the
// environment first and never overrides variables that are already set.
//
// The YAML file is CONFIG_PATH or ./config.yaml. A missing default file is
// fine; a missing CONFIG_PATH is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	path, err := configPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", sourceName(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// configPath returns the YAML file to read, or "" for environment only.
func configPath() (string, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: file %s: %w", path, err)
		}
		return path, nil
	}
	if _, err := os.Stat(defaultConfigPath); err != nil {
		return "", nil
	}
	return defaultConfigPath, nil
}

func sourceName(path string) string {
	if path == "" {
		return "env"
	}
	return path
}
