// Package cmd holds the startup steps shared by the gomoku binaries.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hlin91/gomoku/internal/platform/config"
	"github.com/hlin91/gomoku/internal/platform/otel"
)

const flushTimeout = 5 * time.Second

// Service names reported in traces
const (
	ServiceServer = "gomoku-server"
	ServiceClient = "gomoku-client"
)

// Load fills cfg from the environment, lets bind register flags seeded with
// those values, then parses args. Positional arguments are left on fs.
func Load[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet)) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag set is required")
	}
	if err := config.ParseEnv(cfg); err != nil {
		return err
	}
	if bind != nil {
		bind(fs)
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

// Run starts tracing for service, then runs fn. Spans are flushed after fn
// returns, even when ctx is already cancelled.
func Run(ctx context.Context, service string, fn func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if fn == nil {
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("%s telemetry: %w", service, err)
	}
	defer flush(service, shutdown)
	return fn(ctx)
}

func flush(service string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("%s: flush traces: %v", service, err)
	}
}
