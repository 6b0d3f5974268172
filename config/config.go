// /home/krylon/go/src/github.com/blicero/spesen/config/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 18:40:21 krylon>

// Package config loads the application's settings from the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blicero/spesen/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the address of the expense tracker's web API.
const DefaultAPIBaseURL = "https://expenses-tracker-8k6o.onrender.com"

// Config holds the application's settings.
type Config struct {
	APIBaseURL       string        `mapstructure:"API_BASE_URL"`
	APITimeout       time.Duration `mapstructure:"API_TIMEOUT"`
	ListenAddr       string        `mapstructure:"LISTEN_ADDR"`
	BaseDir          string        `mapstructure:"BASE_DIR"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	MorningSchedule  string        `mapstructure:"MORNING_SCHEDULE"`
	EveningSchedule  string        `mapstructure:"EVENING_SCHEDULE"`
	SecurePassphrase string        `mapstructure:"SECURE_PASSPHRASE"`
	DBPoolSize       int           `mapstructure:"DB_POOL_SIZE"`
	DesktopNotify    bool          `mapstructure:"DESKTOP_NOTIFY"`
}

var keys = []string{
	"API_BASE_URL",
	"API_TIMEOUT",
	"LISTEN_ADDR",
	"BASE_DIR",
	"LOG_LEVEL",
	"MORNING_SCHEDULE",
	"EVENING_SCHEDULE",
	"SECURE_PASSPHRASE",
	"DB_POOL_SIZE",
	"DESKTOP_NOTIFY",
}

// Load reads the configuration from the environment. If envFile is not
// empty and the file exists, its contents are loaded into the environment
// first; variables that are already set take precedence.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("cannot load %s: %w", envFile, err)
		}
	}

	var v = viper.New()

	v.SetDefault("API_BASE_URL", DefaultAPIBaseURL)
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("LISTEN_ADDR", fmt.Sprintf("localhost:%d", common.DefaultPort))
	v.SetDefault("BASE_DIR", filepath.Join(os.Getenv("HOME"), "."+common.AppName+".d"))
	v.SetDefault("LOG_LEVEL", "DEBUG")
	v.SetDefault("MORNING_SCHEDULE", "0 9 * * *")  // 09:00 local time
	v.SetDefault("EVENING_SCHEDULE", "0 18 * * *") // 18:00 local time
	v.SetDefault("SECURE_PASSPHRASE", common.AppName)
	v.SetDefault("DB_POOL_SIZE", 4)
	v.SetDefault("DESKTOP_NOTIFY", true)
	v.AutomaticEnv()

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	} else if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
} // func Load(envFile string) (*Config, error)

// Validate checks the Config for obviously bogus values.
func (c *Config) Validate() error {
	switch {
	case c.APIBaseURL == "":
		return errors.New("API_BASE_URL must not be empty")
	case c.APITimeout <= 0:
		return fmt.Errorf("API_TIMEOUT must be positive, not %s", c.APITimeout)
	case c.DBPoolSize < 1:
		return fmt.Errorf("DB_POOL_SIZE must be at least 1, not %d", c.DBPoolSize)
	case c.MorningSchedule == "" || c.EveningSchedule == "":
		return errors.New("the daily notification schedules must not be empty")
	}

	return nil
} // func (c *Config) Validate() error
