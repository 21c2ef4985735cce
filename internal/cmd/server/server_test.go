package server

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("gomoku-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:12345", cfg.Addr())
	assert.Equal(t, 15, cfg.BoardSize)
	assert.Zero(t, cfg.IdleTimeout)
	assert.Equal(t, 4096, cfg.MaxLineBytes)
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("GOMOKU_SERVER_PORT", "7000")
	t.Setenv("GOMOKU_BOARD_SIZE", "19")
	t.Setenv("GOMOKU_IDLE_TIMEOUT", "1m")

	cfg, err := ParseConfig(newFlagSet(), []string{"-board-size", "9", "-host", "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr())
	assert.Equal(t, 9, cfg.BoardSize)
	assert.Equal(t, time.Minute, cfg.IdleTimeout)
}

func TestParseConfigPositionalPort(t *testing.T) {
	t.Setenv("GOMOKU_SERVER_PORT", "7000")

	cfg, err := ParseConfig(newFlagSet(), []string{"9999"})
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Port)
}

func TestParseConfigErrors(t *testing.T) {
	cases := map[string][]string{
		"bad port":      {"abc"},
		"port range":    {"70000"},
		"too many args": {"1", "2"},
		"small board":   {"-board-size", "4"},
		"negative idle": {"-idle-timeout", "-1s"},
		"unknown flag":  {"-nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig(newFlagSet(), args)
			assert.Error(t, err)
		})
	}
}
