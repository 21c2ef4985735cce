// Package otel turns on OpenTelemetry tracing for the gomoku binaries. The
// server records one span per session; the client records none.
package otel

import (
	"context"
	"fmt"

	"github.com/hlin91/gomoku/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects where spans go. Tracing stays off until an endpoint is set.
type Config struct {
	Enabled     bool    `env:"OTEL_ENABLED"      envDefault:"true"`
	Endpoint    string  `env:"OTEL_ENDPOINT"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"` // Share of sessions traced, 0 to 1
}

func (c Config) active() bool {
	return c.Enabled && c.Endpoint != ""
}

// Setup reads Config from the environment and installs the global tracer
// provider for service. The returned function flushes spans; it does nothing
// when tracing is off.
func Setup(ctx context.Context, service string) (func(context.Context) error, error) {
	nop := func(context.Context) error { return nil }
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return nop, err
	}
	if !cfg.active() {
		return nop, nil
	}
	tp, err := NewProvider(ctx, service, cfg)
	if err != nil {
		return nop, err
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewProvider builds a provider that batches spans to cfg.Endpoint over OTLP/HTTP
func NewProvider(ctx context.Context, service string, cfg Config) (*sdktrace.TracerProvider, error) {
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		return nil, fmt.Errorf("sample ratio %v outside [0, 1]", cfg.SampleRatio)
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(service))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	), nil
}
