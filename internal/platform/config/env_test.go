package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Port    int           `env:"TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"0s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
	assert.Zero(t, cfg.Timeout)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("GOMOKU_TEST_PORT", "9000")
	t.Setenv("GOMOKU_TEST_TIMEOUT", "90s")

	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestParseEnvIgnoresUnprefixed(t *testing.T) {
	t.Setenv("TEST_PORT", "9000")

	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("GOMOKU_TEST_PORT", "not-an-int")

	var cfg envTestConfig
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestExitf(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	origStderr, origExit := stderr, exit
	stderr, exit = &buf, func(c int) { code = c }
	t.Cleanup(func() { stderr, exit = origStderr, origExit })

	Exitf("usage: %s <port>", "server")
	assert.Equal(t, 1, code)
	assert.Equal(t, "usage: server <port>\n", buf.String())
}
