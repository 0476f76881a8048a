// Package config loads the override daemon configuration.
//
// Values are resolved in order: Defaults, the YAML file, an optional dotenv
// file, then the process environment. Environment variables carry the
// PIXELPROPS_ prefix followed by the section and key, for example
// PIXELPROPS_SERVER_LISTEN_ADDR or PIXELPROPS_RECORD_SOURCES.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ruteri/pixelprops/api"
	"github.com/ruteri/pixelprops/interfaces"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "PIXELPROPS_"

type Config struct {
	Server ServerConfig `yaml:"server" env:", prefix=SERVER_"`
	Log    LogConfig    `yaml:"log" env:", prefix=LOG_"`
	Record RecordConfig `yaml:"record" env:", prefix=RECORD_"`
}

type ServerConfig struct {
	ListenAddr   string `yaml:"listen_addr" env:"LISTEN_ADDR, overwrite"`
	MetricsAddr  string `yaml:"metrics_addr" env:"METRICS_ADDR, overwrite"`
	Pprof        bool   `yaml:"pprof" env:"PPROF, overwrite"`
	DrainSeconds int64  `yaml:"drain_seconds" env:"DRAIN_SECONDS, overwrite"`

	ReadTimeoutSeconds     int64 `yaml:"read_timeout_seconds" env:"READ_TIMEOUT_SECONDS, overwrite"`
	WriteTimeoutSeconds    int64 `yaml:"write_timeout_seconds" env:"WRITE_TIMEOUT_SECONDS, overwrite"`
	ShutdownTimeoutSeconds int64 `yaml:"shutdown_timeout_seconds" env:"SHUTDOWN_TIMEOUT_SECONDS, overwrite"`

	// MaxBodyBytes caps guard request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES, overwrite"`
}

type LogConfig struct {
	JSON    bool   `yaml:"json" env:"JSON, overwrite"`
	Debug   bool   `yaml:"debug" env:"DEBUG, overwrite"`
	Service string `yaml:"service" env:"SERVICE, overwrite"`
	UID     bool   `yaml:"uid" env:"UID, overwrite"`
}

// RecordConfig lists baseline build.prop locations, tried in order. An
// empty list starts the daemon with an unknown record.
type RecordConfig struct {
	Sources []string `yaml:"sources" env:"SOURCES, overwrite"`
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:   "127.0.0.1:8080",
			MetricsAddr:  "127.0.0.1:8090",
			DrainSeconds: 45,

			ReadTimeoutSeconds:     60,
			WriteTimeoutSeconds:    30,
			ShutdownTimeoutSeconds: 30,
			MaxBodyBytes:           api.DefaultMaxRequestBodySize,
		},
		Log: LogConfig{
			Service: "pixelprops",
		},
	}
}

// Load reads path over Defaults. An empty path returns Defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays variables found through lookuper. Only variables that
// are set replace configured values.
func ApplyEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	})
	if err != nil {
		return fmt.Errorf("applying environment: %w", err)
	}
	return nil
}

// EnvLookuper resolves the process environment, falling back to dotenvPath
// when given. A missing dotenv file is not an error.
func EnvLookuper(dotenvPath string) (envconfig.Lookuper, error) {
	if dotenvPath == "" {
		return envconfig.OsLookuper(), nil
	}
	values, err := godotenv.Read(dotenvPath)
	if errors.Is(err, fs.ErrNotExist) {
		return envconfig.OsLookuper(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dotenvPath, err)
	}
	return envconfig.MultiLookuper(envconfig.OsLookuper(), envconfig.MapLookuper(values)), nil
}

// Validate reports every invalid setting together.
func (c *Config) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.Server.ListenAddr); err != nil {
		errs = append(errs, fmt.Errorf("server.listen_addr: %w", err))
	}
	if c.Server.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.Server.MetricsAddr); err != nil {
			errs = append(errs, fmt.Errorf("server.metrics_addr: %w", err))
		}
	}
	if c.Server.DrainSeconds < 0 {
		errs = append(errs, errors.New("server.drain_seconds must not be negative"))
	}
	for name, v := range map[string]int64{
		"read_timeout_seconds":     c.Server.ReadTimeoutSeconds,
		"write_timeout_seconds":    c.Server.WriteTimeoutSeconds,
		"shutdown_timeout_seconds": c.Server.ShutdownTimeoutSeconds,
		"max_body_bytes":           c.Server.MaxBodyBytes,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("server.%s must be positive", name))
		}
	}
	for i, src := range c.Record.Sources {
		if err := interfaces.RecordSourceLocation(strings.TrimSpace(src)).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("record.sources[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// DrainDuration returns the configured drain period.
func (c *Config) DrainDuration() time.Duration {
	return time.Duration(c.Server.DrainSeconds) * time.Second
}

// HTTPServer converts the server section for httpserver.New.
func (c *Config) HTTPServer(log *slog.Logger) *api.HTTPServerConfig {
	return &api.HTTPServerConfig{
		ListenAddr:               c.Server.ListenAddr,
		MetricsAddr:              c.Server.MetricsAddr,
		EnablePprof:              c.Server.Pprof,
		Log:                      log,
		DrainDuration:            c.DrainDuration(),
		GracefulShutdownDuration: time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second,
		ReadTimeout:              time.Duration(c.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:             time.Duration(c.Server.WriteTimeoutSeconds) * time.Second,
		MaxRequestBodySize:       c.Server.MaxBodyBytes,
	}
}

// SourceLocations returns the record sources as typed locations.
func (c *Config) SourceLocations() []interfaces.RecordSourceLocation {
	locs := make([]interfaces.RecordSourceLocation, 0, len(c.Record.Sources))
	for _, src := range c.Record.Sources {
		locs = append(locs, interfaces.RecordSourceLocation(strings.TrimSpace(src)))
	}
	return locs
}
