// /home/krylon/go/src/github.com/blicero/spesen/config/config_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 18:44:09 krylon>

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range keys {
		k := k
		if prev, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k) // nolint: errcheck
			t.Cleanup(func() { os.Setenv(k, prev) }) // nolint: errcheck
		} else {
			t.Cleanup(func() { os.Unsetenv(k) }) // nolint: errcheck
		}
	}
} // func clearEnv(t *testing.T)

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, "0 9 * * *", cfg.MorningSchedule)
	assert.Equal(t, "0 18 * * *", cfg.EveningSchedule)
	assert.Equal(t, 4, cfg.DBPoolSize)
	assert.True(t, cfg.DesktopNotify)
} // func TestLoadDefaults(t *testing.T)

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)

	t.Setenv("API_BASE_URL", "http://localhost:9999")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("MORNING_SCHEDULE", "30 7 * * *")
	t.Setenv("DESKTOP_NOTIFY", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "30 7 * * *", cfg.MorningSchedule)
	assert.False(t, cfg.DesktopNotify)
} // func TestLoadEnvironment(t *testing.T)

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	var path = filepath.Join(t.TempDir(), ".env")

	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=ERROR\nDB_POOL_SIZE=2\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ERROR", cfg.LogLevel)
	assert.Equal(t, 2, cfg.DBPoolSize)
} // func TestLoadEnvFile(t *testing.T)

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
} // func TestLoadMissingEnvFile(t *testing.T)

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	t.Setenv("API_TIMEOUT", "-1s")

	_, err := Load("")
	assert.Error(t, err)
} // func TestLoadInvalid(t *testing.T)
