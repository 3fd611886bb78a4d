// Command engine is the CLI driver described in §6: it reads one intent per
// line from a file (-input) or stdin, decodes each line with
// pkg/decode.Decoder, and feeds the result to a core.Engine, optionally
// publishing telemetry (Prometheus, OTel tracing) and events (Kafka) and
// dumping the book after every intent.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/arjunvedula/matchcore/config"
	"github.com/arjunvedula/matchcore/pkg/backend/memory"
	"github.com/arjunvedula/matchcore/pkg/core"
	"github.com/arjunvedula/matchcore/pkg/decode"
	"github.com/arjunvedula/matchcore/pkg/inspector"
	"github.com/arjunvedula/matchcore/pkg/logging"
	"github.com/arjunvedula/matchcore/pkg/messaging"
	"github.com/arjunvedula/matchcore/pkg/messaging/kafka"
	"github.com/arjunvedula/matchcore/pkg/metrics"
	"github.com/arjunvedula/matchcore/pkg/otel"
	"github.com/arjunvedula/matchcore/pkg/sink"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Format == "pretty"})
	logger := logging.FromContext(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	var observer core.Observer
	observers := core.MultiObserver{}

	if cfg.Metrics.Enabled {
		collector := metrics.GetCollector()
		observers = append(observers, collector)

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Error().Err(err).Msg("engine: metrics listener stopped")
			}
		}()
		logger.Info().Str("addr", cfg.Metrics.Addr).Msg("engine: serving Prometheus metrics")
	}

	if cfg.Tracing.Enabled {
		shutdown, err := otel.Init(otel.Config{Endpoint: cfg.Tracing.Endpoint, CollectorEnabled: true})
		if err != nil {
			logger.Fatal().Err(err).Msg("engine: failed to init tracing")
		}
		defer shutdown()
		observers = append(observers, otel.NewObserver(ctx))
	}

	if len(observers) > 0 {
		observer = observers
	}

	collector := sink.NewCollector()
	var eventSink core.EventSink = collector

	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(ctx, cfg.Kafka.BrokerAddr, cfg.Kafka.Topic)
		defer publisher.Close()
		kafkaSink := messaging.Sink{Publisher: publisher, Logger: logger}
		eventSink = sink.Fanout{collector, kafkaSink}
		logger.Info().Str("broker", cfg.Kafka.BrokerAddr).Str("topic", cfg.Kafka.Topic).Msg("engine: publishing events to Kafka")
	}

	backend := memory.New()
	engine := core.NewEngine(backend, eventSink, core.WithObserver(observer))
	decoder := decode.New(logger)
	insp := inspector.New(os.Stdout, false)

	in := os.Stdin
	if cfg.Input.Path != "" {
		f, err := os.Open(cfg.Input.Path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.Input.Path).Msg("engine: failed to open input")
		}
		defer f.Close()
		in = f
	}

	scanner := bufio.NewScanner(in)
	var processed, errors int
scanLines:
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			break scanLines
		default:
		}

		intent, ok := decoder.Line(scanner.Text())
		if !ok {
			continue
		}

		if err := engine.Process(intent); err != nil {
			errors++
			logger.Error().Err(err).Int32("order_id", intent.OrderID).Msg("engine: process failed")
		}
		processed++

		if cfg.Metrics.Enabled {
			metrics.GetCollector().RecordDepth(backend)
		}
		if cfg.Debug.DumpBook {
			insp.Dump(backend)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("engine: error reading input")
	}

	for _, e := range collector.Events() {
		fmt.Println(e.String())
	}

	logger.Info().Int("processed", processed).Int("errors", errors).Msg("engine: done")
	if errors > 0 {
		os.Exit(1)
	}
}
