// Package server parses server command flags and runs the matchmaking server.
package server

import (
	"context"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/hlin91/gomoku/gomoku"
	entrypoint "github.com/hlin91/gomoku/internal/platform/cmd"
)

// Config holds server command configuration.
type Config struct {
	Host         string        `env:"SERVER_HOST"    envDefault:"0.0.0.0"`
	Port         int           `env:"SERVER_PORT"    envDefault:"12345"`
	BoardSize    int           `env:"BOARD_SIZE"     envDefault:"15"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT"   envDefault:"0s"`
	MaxLineBytes int           `env:"MAX_LINE_BYTES" envDefault:"4096"`
}

// ParseConfig parses environment, flags and the optional port argument into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet) {
		fs.StringVar(&cfg.Host, "host", cfg.Host, "interface to listen on")
		fs.IntVar(&cfg.BoardSize, "board-size", cfg.BoardSize, "rows and columns of the board")
		fs.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "longest a player may hold the turn (0 waits forever)")
		fs.IntVar(&cfg.MaxLineBytes, "max-line-bytes", cfg.MaxLineBytes, "longest accepted protocol line")
	})
	if err != nil {
		return Config{}, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		port, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			return Config{}, fmt.Errorf("invalid port %q", fs.Arg(0))
		}
		cfg.Port = port
	default:
		return Config{}, fmt.Errorf("usage: %s [flags] [port]", fs.Name())
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.BoardSize < gomoku.MIN_BOARD_SIZE {
		return Config{}, fmt.Errorf("board size must be at least %d", gomoku.MIN_BOARD_SIZE)
	}
	if cfg.IdleTimeout < 0 {
		return Config{}, fmt.Errorf("idle timeout must not be negative")
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Run starts the server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.Run(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		s := gomoku.NewServer(gomoku.Config{
			Addr:         cfg.Addr(),
			BoardSize:    cfg.BoardSize,
			IdleTimeout:  cfg.IdleTimeout,
			MaxLineBytes: cfg.MaxLineBytes,
		})
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
}
