package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-meal-plan/internal/config"
)

// clearEnv blanks every MEAL_PLAN_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MEAL_PLAN_TRANSPORT",
		"MEAL_PLAN_HOST",
		"MEAL_PLAN_PORT",
		"MEAL_PLAN_DB_PATH",
		"MEAL_PLAN_CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meal-plan.yaml")
	body := "host: 127.0.0.1\nport: 9100\ndb_path: /tmp/from-file.db\ncors_origins:\n  - https://coach.example\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func resolveServeConfig(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	opts := &serveOptions{}
	cmd := serveCommand(opts)
	require.NoError(t, cmd.ParseFlags(args))
	return opts.config(cmd)
}

func TestServeConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := resolveServeConfig(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestServeConfigFileKeptWhenFlagsUnset(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t)

	cfg, err := resolveServeConfig(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.Equal(t, []string{"https://coach.example"}, cfg.CORSOrigins)
}

func TestServeFlagsOverrideFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t)
	t.Setenv("MEAL_PLAN_PORT", "9200")
	t.Setenv("MEAL_PLAN_DB_PATH", "/tmp/from-env.db")

	cfg, err := resolveServeConfig(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)

	cfg, err = resolveServeConfig(t,
		"--config", path,
		"--port", "9300",
		"--host", "10.0.0.5",
		"--db-path", "/tmp/from-flag.db",
	)
	require.NoError(t, err)
	assert.Equal(t, 9300, cfg.Port)
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, "/tmp/from-flag.db", cfg.DBPath)
	assert.Equal(t, []string{"https://coach.example"}, cfg.CORSOrigins)
}

func TestServeAddressOverridesHost(t *testing.T) {
	clearEnv(t)

	cfg, err := resolveServeConfig(t, "--host", "10.0.0.5", "--address", "localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "localhost:8011", cfg.Addr())
}

func TestServeConfigErrors(t *testing.T) {
	clearEnv(t)

	_, err := resolveServeConfig(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to load configuration")

	t.Setenv("MEAL_PLAN_PORT", "eighty")
	_, err = resolveServeConfig(t)
	var verr config.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "MEAL_PLAN_PORT", verr.Field)
}

func TestServeRejectsInvalidConfigBeforeListening(t *testing.T) {
	clearEnv(t)

	cmd := newServeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--transport", "stdio", "--db-path", filepath.Join(t.TempDir(), "plans.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create server")
	assert.Contains(t, err.Error(), "unsupported transport")
}
