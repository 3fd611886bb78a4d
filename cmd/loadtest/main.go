// Command loadtest drives an in-process matching Engine with a generated
// intent stream, reporting latency percentiles the way the source's gRPC
// load generator does — HdrHistogram-backed, reported on a fixed interval —
// but against a local core.Engine instead of a network client.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/arjunvedula/matchcore/config"
	"github.com/arjunvedula/matchcore/pkg/backend/memory"
	"github.com/arjunvedula/matchcore/pkg/core"
	"github.com/arjunvedula/matchcore/pkg/generator"
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
		log.Fatalf("failed to load config: %v", err)
	}

	logging.Setup(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Format == "pretty"})
	zlog := logging.FromContext(context.Background())

	runID := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		log.Println("received interrupt, stopping load test")
		cancel()
	}()

	var observer core.Observer
	observers := core.MultiObserver{}

	if cfg.Metrics.Enabled {
		observers = append(observers, metrics.GetCollector())

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Printf("run=%s metrics listener stopped: %v", runID, err)
			}
		}()
		log.Printf("run=%s serving Prometheus metrics on %s", runID, cfg.Metrics.Addr)
	}

	if cfg.Tracing.Enabled {
		shutdown, err := otel.Init(otel.Config{Endpoint: cfg.Tracing.Endpoint, CollectorEnabled: true})
		if err != nil {
			log.Fatalf("run=%s failed to init tracing: %v", runID, err)
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
		eventSink = sink.Fanout{collector, messaging.Sink{Publisher: publisher, Logger: zlog}}
		log.Printf("run=%s publishing events to kafka broker=%s topic=%s", runID, cfg.Kafka.BrokerAddr, cfg.Kafka.Topic)
	}

	engine := core.NewEngine(memory.New(), eventSink, core.WithObserver(observer))
	gen := generator.NewRandom(cfg.LoadTest.Seed, cfg.LoadTest.Center, cfg.LoadTest.Spread, 10)
	limiter := rate.NewLimiter(rate.Limit(cfg.LoadTest.RatePerS), cfg.LoadTest.RatePerS)

	recorder := hdrhistogram.NewRecorder(1, 10_000_000, 3)
	var processed, errors int

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := recorder.Histogram()
				p50 := time.Duration(snap.ValueAtQuantile(50)) * time.Microsecond
				p99 := time.Duration(snap.ValueAtQuantile(99)) * time.Microsecond
				log.Printf("run=%s processed=%d errors=%d p50=%v p99=%v", runID, processed, errors, p50, p99)
				if cfg.Metrics.Enabled {
					metrics.GetCollector().RecordDepth(engine.Backend())
				}
			}
		}
	}()

	start := time.Now()
	log.Printf("run=%s starting load test: %d intents at %d/s", runID, cfg.LoadTest.Count, cfg.LoadTest.RatePerS)

	for i := 0; i < cfg.LoadTest.Count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		intent := gen.Next()
		reqStart := time.Now()
		err := engine.Process(intent)
		recorder.RecordValue(time.Since(reqStart).Microseconds())

		processed++
		if err != nil {
			errors++
		}
	}

	duration := time.Since(start)
	fmt.Printf("run=%s completed in %v: processed=%d errors=%d events=%d\n",
		runID, duration, processed, errors, len(collector.Events()))

	if errors > 0 {
		os.Exit(1)
	}
}
