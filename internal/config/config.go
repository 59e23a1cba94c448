// Package config loads the demo programs' configuration: a YAML file with
// XTAIL_* environment variable overrides layered on top.
//
// The core library's only configuration surface is the production flag;
// everything here exists for the example binaries and stays outside the
// library contract.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/trickstertwo/xtail"
	slogadapter "github.com/trickstertwo/xtail/adapter/slog"
	"github.com/trickstertwo/xtail/adapter/stream"
	zapadapter "github.com/trickstertwo/xtail/adapter/zap"
	zerologadapter "github.com/trickstertwo/xtail/adapter/zerolog"
	"github.com/trickstertwo/xtail/metrics/prom"
)

// Config is the root configuration for the demo programs. All values load
// from YAML and can be overridden by environment variables.
type Config struct {
	// Production overrides the detected runtime mode when present.
	Production *bool         `yaml:"production"`
	Capacity   int           `yaml:"capacity"`
	Sink       SinkConfig    `yaml:"sink"`
	Console    ConsoleConfig `yaml:"console"`
	Metrics    MetricsConfig `yaml:"metrics"`
}

// SinkConfig selects and shapes the output backend.
type SinkConfig struct {
	// Backend is one of: writer, stream, zap, zerolog, slog.
	Backend string `yaml:"backend"`

	// Format is text or json; zap and zerolog also accept console for
	// their pretty encoders.
	Format string `yaml:"format"`

	// TimestampField names the structured timestamp key. Default "ts".
	TimestampField string `yaml:"timestamp_field"`

	// Channels route severities for the writer and stream backends. The
	// structured backends write every level to the info channel.
	Channels ChannelsConfig `yaml:"channels"`
}

// ChannelsConfig names the destination of each severity band:
// stdout, stderr, or discard.
type ChannelsConfig struct {
	Info    string `yaml:"info"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
}

// ConsoleConfig shapes the TUI demo.
type ConsoleConfig struct {
	Title      string `yaml:"title"`
	PollMillis int    `yaml:"poll_ms"`
}

// MetricsConfig enables the Prometheus counters.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// The loading order is:
//  1. Default values
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern XTAIL_SECTION_KEY, for example
// XTAIL_SINK_BACKEND or XTAIL_CAPACITY.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with the demo defaults: the built-in writer
// sink on stdout/stderr, history capacity 1000, metrics off.
func Default() *Config {
	return &Config{
		Capacity: xtail.DefaultCapacity,
		Sink: SinkConfig{
			Backend:        "writer",
			Format:         "text",
			TimestampField: "ts",
			Channels: ChannelsConfig{
				Info:    "stdout",
				Warning: "stdout",
				Error:   "stderr",
			},
		},
		Console: ConsoleConfig{
			Title:      "xtail",
			PollMillis: 250,
		},
		Metrics: MetricsConfig{
			Namespace: "xtail",
		},
	}
}

// applyEnvOverrides applies XTAIL_* environment variables on top of cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("XTAIL_PRODUCTION"); v != "" {
		if on, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Production = &on
		}
	}
	if v := os.Getenv("XTAIL_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Capacity = n
		}
	}
	if v := os.Getenv("XTAIL_SINK_BACKEND"); v != "" {
		cfg.Sink.Backend = v
	}
	if v := os.Getenv("XTAIL_SINK_FORMAT"); v != "" {
		cfg.Sink.Format = v
	}
	if v := os.Getenv("XTAIL_METRICS_NAMESPACE"); v != "" {
		cfg.Metrics.Namespace = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Sink.Backend) {
	case "", "writer", "stream", "zap", "zerolog", "slog":
	default:
		errs = append(errs, fmt.Sprintf("sink.backend %q is not one of writer, stream, zap, zerolog, slog", c.Sink.Backend))
	}

	switch strings.ToLower(c.Sink.Format) {
	case "", "text", "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("sink.format %q is not one of text, json, console", c.Sink.Format))
	}

	for _, ch := range []struct{ name, value string }{
		{"sink.channels.info", c.Sink.Channels.Info},
		{"sink.channels.warning", c.Sink.Channels.Warning},
		{"sink.channels.error", c.Sink.Channels.Error},
	} {
		if _, err := channelWriter(ch.value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", ch.name, err))
		}
	}

	if c.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	if c.Console.PollMillis < 0 {
		errs = append(errs, "console.poll_ms must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// PollInterval returns the console poll interval as a Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Console.PollMillis) * time.Millisecond
}

// Build constructs a logger from the configuration. The caller decides
// whether to install it process-wide with xtail.SetGlobal.
func (c *Config) Build() (*xtail.Logger, error) {
	sink, err := c.buildSink()
	if err != nil {
		return nil, err
	}

	b := xtail.NewBuilder().
		WithSink(sink).
		WithCapacity(c.Capacity)
	if c.Production != nil {
		b = b.WithProduction(*c.Production)
	}
	if c.Metrics.Enabled {
		b = b.WithMetrics(prom.New(c.Metrics.Namespace, nil))
	}
	return b.Build()
}

func (c *Config) buildSink() (xtail.Sink, error) {
	info, err := channelWriter(c.Sink.Channels.Info)
	if err != nil {
		return nil, err
	}
	warning, err := channelWriter(c.Sink.Channels.Warning)
	if err != nil {
		return nil, err
	}
	errW, err := channelWriter(c.Sink.Channels.Error)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(c.Sink.Backend) {
	case "", "writer":
		return xtail.NewWriterSink(xtail.WriterSinkConfig{
			Info:    info,
			Warning: warning,
			Error:   errW,
		}), nil

	case "stream":
		format := stream.FormatText
		if strings.EqualFold(c.Sink.Format, "json") {
			format = stream.FormatJSON
		}
		factory := &stream.LevelWriterFactory{
			Default: info,
			LevelWriter: map[xtail.Level]io.Writer{
				xtail.LevelWarning: warning,
				xtail.LevelError:   errW,
				xtail.LevelFatal:   errW,
			},
		}
		return stream.NewWithWriterFactory(factory, stream.Options{Format: format}), nil

	case "zap":
		return c.zapSink(info), nil

	case "zerolog":
		return c.zerologSink(info), nil

	case "slog":
		return c.slogSink(info), nil
	}

	return nil, fmt.Errorf("unknown sink backend %q", c.Sink.Backend)
}

// channelWriter maps a channel name to its writer.
func channelWriter(name string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "discard":
		return io.Discard, nil
	}
	return nil, fmt.Errorf("unknown channel %q", name)
}

// zapSink mirrors adapter/zap's Use defaults without installing a global.
func (c *Config) zapSink(w io.Writer) xtail.Sink {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "", // xtail injects its own timestamp field
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	var enc zapcore.Encoder
	if strings.EqualFold(c.Sink.Format, "console") {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	al := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	zl := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), al))
	return zapadapter.NewWithTimestampKey(zl, &al, c.Sink.TimestampField)
}

func (c *Config) zerologSink(w io.Writer) xtail.Sink {
	if strings.EqualFold(c.Sink.Format, "console") {
		// Align the console's leading timestamp column with the ts key.
		zerolog.TimestampFieldName = c.Sink.TimestampField
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339Nano}
	}
	zl := zerolog.New(w).Level(zerolog.DebugLevel)
	return zerologadapter.NewWithTimestampKey(zl, c.Sink.TimestampField)
}

func (c *Config) slogSink(w io.Writer) xtail.Sink {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelDebug)
	opts := &slog.HandlerOptions{Level: lv}

	var h slog.Handler
	if strings.EqualFold(c.Sink.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slogadapter.NewWithTimestampKey(slog.New(h), lv, c.Sink.TimestampField)
}
