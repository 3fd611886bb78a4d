// Package otel wires the matching engine into OpenTelemetry tracing. The
// source runs two services (order-service and matching-engine) under
// separate tracer providers sharing one OTLP connection; this engine is a
// single process, so it collapses to one tracer provider and drops the
// metrics half of the source's setup in favor of pkg/metrics' Prometheus
// collector.
package otel

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ServiceMatchingEngine names the resource attribute attached to every
// exported span.
const ServiceMatchingEngine = "matching-engine"

var (
	engineTracer   trace.Tracer
	tracerProvider *sdktrace.TracerProvider
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceVersion   string
	Endpoint         string
	ConnectTimeout   time.Duration
	CollectorEnabled bool
}

// Init initializes OpenTelemetry with the given configuration and returns a
// cleanup function that shuts everything down.
func Init(cfg Config) (func(), error) {
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "0.1.0"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}

	resource := initResource(cfg.ServiceVersion)
	engineTracer = trace.NewNoopTracerProvider().Tracer(ServiceMatchingEngine)

	if !cfg.CollectorEnabled {
		return func() {}, nil
	}

	var cleanup []func()

	ctx := context.Background()
	conn, err := grpc.DialContext(ctx, cfg.Endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithTimeout(cfg.ConnectTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}
	cleanup = append(cleanup, func() {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing gRPC connection: %v", err)
		}
	})

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(resource),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(1))),
	)
	tracerProvider = tp
	cleanup = append(cleanup, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	engineTracer = tp.Tracer(ServiceMatchingEngine)

	return func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}, nil
}

func initResource(serviceVersion string) *sdkresource.Resource {
	extraResources, err := sdkresource.New(
		context.Background(),
		sdkresource.WithAttributes(
			semconv.ServiceName(ServiceMatchingEngine),
			semconv.ServiceVersion(serviceVersion),
		),
		sdkresource.WithOS(),
		sdkresource.WithProcess(),
		sdkresource.WithHost(),
	)
	if err != nil {
		log.Printf("Failed to create resource: %v", err)
		return sdkresource.Default()
	}

	resource, err := sdkresource.Merge(sdkresource.Default(), extraResources)
	if err != nil {
		log.Printf("Failed to merge resources: %v", err)
		return sdkresource.Default()
	}
	return resource
}

// Tracer returns the matching engine's tracer.
func Tracer() trace.Tracer {
	return engineTracer
}

// TracerProvider returns the configured tracer provider, or the global
// no-op provider if Init was never called with CollectorEnabled.
func TracerProvider() trace.TracerProvider {
	if tracerProvider != nil {
		return tracerProvider
	}
	return otel.GetTracerProvider()
}

// ResetForTesting clears the package-level tracer state.
func ResetForTesting() {
	engineTracer = nil
	tracerProvider = nil
}

// InitForTesting installs tracer as the engine tracer, bypassing Init.
func InitForTesting(tracer trace.Tracer) {
	engineTracer = tracer
}
