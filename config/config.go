// Package config loads the engine's runtime configuration from flags and an
// optional YAML file, in the source's own flag+yaml.v3 style.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Input struct {
		// Path to a newline-delimited intent file (§6). Empty means read
		// from stdin.
		Path string `yaml:"path"`
	} `yaml:"input"`

	Debug struct {
		// DumpBook enables the Book Inspector's per-intent dump on the
		// debug channel (§4.7). Off by default.
		DumpBook bool `yaml:"dump_book"`
	} `yaml:"debug"`

	Kafka struct {
		BrokerAddr string `yaml:"broker_addr"`
		Topic      string `yaml:"topic"`
		Enabled    bool   `yaml:"enabled"`
	} `yaml:"kafka"`

	Metrics struct {
		Addr    string `yaml:"addr"`
		Enabled bool   `yaml:"enabled"`
	} `yaml:"metrics"`

	Tracing struct {
		Endpoint string `yaml:"endpoint"`
		Enabled  bool   `yaml:"enabled"`
	} `yaml:"tracing"`

	LoadTest struct {
		Seed     uint64  `yaml:"seed"`
		Center   float64 `yaml:"center"`
		Spread   float64 `yaml:"spread"`
		RatePerS int     `yaml:"rate_per_s"`
		Count    int     `yaml:"count"`
	} `yaml:"load_test"`
}

var (
	configFile = flag.String("config", "", "Path to config file (YAML)")
	inputPath  = flag.String("input", "", "Path to a newline-delimited intent file (empty = stdin)")
	logLevel   = flag.String("log_level", "info", "Log level: debug, info, warn, error")
	logFormat  = flag.String("log_format", "pretty", "Log format: json, pretty")
	dumpBook   = flag.Bool("dump_book", false, "Dump the book state to the debug channel after every intent")
)

// LoadConfig loads configuration from command line flags and, if -config is
// given, overlays a YAML file on top of the flag-derived defaults.
func LoadConfig() (*Config, error) {
	flag.Parse()

	cfg := &Config{}
	cfg.Log.Level = *logLevel
	cfg.Log.Format = *logFormat
	cfg.Input.Path = *inputPath
	cfg.Debug.DumpBook = *dumpBook
	cfg.Kafka.BrokerAddr = "localhost:9092"
	cfg.Kafka.Topic = "matchcore-events"
	cfg.Metrics.Addr = ":9090"
	cfg.Tracing.Endpoint = "localhost:4317"
	cfg.LoadTest.Seed = 1
	cfg.LoadTest.Center = 100
	cfg.LoadTest.Spread = 5
	cfg.LoadTest.RatePerS = 1000
	cfg.LoadTest.Count = 10000

	if *configFile != "" {
		yamlFile, err := os.ReadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		log.Printf("Loaded configuration from %s", *configFile)
	}

	return cfg, nil
}
