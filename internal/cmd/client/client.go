// Package client parses client command arguments and runs the terminal client.
package client

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hlin91/gomoku/gomoku"
	entrypoint "github.com/hlin91/gomoku/internal/platform/cmd"
)

// Config holds client command configuration.
type Config struct {
	Host    string
	Port    string
	NoClear bool `env:"CLIENT_NO_CLEAR" envDefault:"false"`
}

// ParseConfig parses environment, flags and the host and port arguments into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet) {
		fs.BoolVar(&cfg.NoClear, "no-clear", cfg.NoClear, "do not clear the terminal between redraws")
	})
	if err != nil {
		return Config{}, err
	}
	if fs.NArg() != 2 {
		return Config{}, fmt.Errorf("usage: %s [flags] <host> <port>", fs.Name())
	}
	cfg.Host, cfg.Port = fs.Arg(0), fs.Arg(1)
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid port %q", cfg.Port)
	}
	return cfg, nil
}

// Run connects to the server and plays until the session ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.Run(ctx, entrypoint.ServiceClient, func(ctx context.Context) error {
		c := gomoku.NewClient(os.Stdin, os.Stdout, !cfg.NoClear)
		if err := c.Connect(cfg.Host, cfg.Port); err != nil {
			return err
		}
		return c.Start(ctx)
	})
}
