// SPDX-License-Identifier: MIT

// Package config loads planb settings from defaults, an optional YAML file,
// PLANB_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/planb/altroute"
	"github.com/katalvlaran/planb/mapdata"
)

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// EnvPrefix prefixes every environment override, e.g. PLANB_MAP_PATH.
const EnvPrefix = "PLANB_"

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = "planb.yaml"

// Config is the full planb configuration.
type Config struct {
	Map    MapConfig    `koanf:"map"`
	APSP   APSPConfig   `koanf:"apsp"`
	Server ServerConfig `koanf:"server"`
	Alt    AltConfig    `koanf:"alt"`
	Fetch  FetchConfig  `koanf:"fetch"`
	Log    LogConfig    `koanf:"log"`
}

// MapConfig selects the universe dump.
type MapConfig struct {
	Path         string `koanf:"path"`
	KeepGateless bool   `koanf:"keep_gateless"`
}

// APSPConfig tunes the all-pairs table build.
type APSPConfig struct {
	// Workers is the build parallelism; 0 means GOMAXPROCS.
	Workers int `koanf:"workers"`

	// Eager builds the table at startup instead of on first use.
	Eager bool `koanf:"eager"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// AltConfig holds the alternative-route defaults.
type AltConfig struct {
	MaxRoutes int     `koanf:"max_routes"`
	Sharing   float64 `koanf:"sharing"`
	LocalOpt  float64 `koanf:"local_opt"`
	UBStretch float64 `koanf:"ub_stretch"`
}

// FetchConfig configures the ESI downloader.
type FetchConfig struct {
	Endpoint string  `koanf:"endpoint"`
	Rate     float64 `koanf:"rate"`
	Workers  int     `koanf:"workers"`
	Retries  int     `koanf:"retries"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"map":           "map.path",
	"keep-gateless": "map.keep_gateless",
	"workers":       "apsp.workers",
	"eager":         "apsp.eager",
	"addr":          "server.addr",
	"max":           "alt.max_routes",
	"sharing":       "alt.sharing",
	"local-opt":     "alt.local_opt",
	"ub-stretch":    "alt.ub_stretch",
	"endpoint":      "fetch.endpoint",
	"rate":          "fetch.rate",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

func defaults() map[string]any {
	alt := altroute.DefaultOptions()
	return map[string]any{
		"map.path":                   mapdata.DefaultPath,
		"map.keep_gateless":          false,
		"apsp.workers":               0,
		"apsp.eager":                 false,
		"server.addr":                ":8080",
		"server.read_header_timeout": 5 * time.Second,
		"server.shutdown_timeout":    10 * time.Second,
		"alt.max_routes":             alt.MaxRoutes,
		"alt.sharing":                alt.Sharing,
		"alt.local_opt":              alt.LocalOpt,
		"alt.ub_stretch":             alt.UBStretch,
		"fetch.endpoint":             mapdata.DefaultEndpoint,
		"fetch.rate":                 mapdata.DefaultRate,
		"fetch.workers":              mapdata.DefaultWorkers,
		"fetch.retries":              mapdata.DefaultRetries,
		"log.level":                  "info",
		"log.format":                 "text",
	}
}

// Load builds a Config. cfgFile may be empty, in which case DefaultFile is
// read when present. Only flags that were set on the command line override
// lower layers; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			cfgFile = DefaultFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", cfgFile, err)
		}
	}

	// PLANB_SERVER_READ_HEADER_TIMEOUT -> server.read_header_timeout
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("config: flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges that the consumers would otherwise reject later.
func (c *Config) Validate() error {
	if c.APSP.Workers < 0 {
		return fmt.Errorf("%w: apsp.workers %d < 0", ErrInvalid, c.APSP.Workers)
	}
	if c.Fetch.Workers < 1 {
		return fmt.Errorf("%w: fetch.workers %d < 1", ErrInvalid, c.Fetch.Workers)
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("%w: fetch.retries %d < 0", ErrInvalid, c.Fetch.Retries)
	}
	if err := c.AltOptions().Validate(); err != nil {
		return fmt.Errorf("%w: alt: %w", ErrInvalid, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}

	return nil
}

// Workers resolves apsp.workers, mapping 0 to GOMAXPROCS.
func (c *Config) Workers() int {
	if c.APSP.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}

	return c.APSP.Workers
}

// AltOptions converts the alt section.
func (c *Config) AltOptions() altroute.Options {
	return altroute.Options{
		MaxRoutes: c.Alt.MaxRoutes,
		Sharing:   c.Alt.Sharing,
		LocalOpt:  c.Alt.LocalOpt,
		UBStretch: c.Alt.UBStretch,
	}
}

// Logger builds the slog logger described by the log section.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	lvl, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: lvl}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, s)
	}

	return lvl, nil
}
