package flags

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruteri/pixelprops/api"
	"github.com/ruteri/pixelprops/common"
	"github.com/ruteri/pixelprops/config"
	"github.com/urfave/cli/v2"
)

// SetupLogger builds a logger from the log flags. Records go to the app's
// error writer so command output stays clean.
func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	var out io.Writer
	if cCtx.App != nil {
		out = cCtx.App.ErrWriter
	}
	return NewLogger(out, &config.LogConfig{
		JSON:    cCtx.Bool(LogJsonFlag.Name),
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		UID:     cCtx.Bool(LogUidFlag.Name),
		Service: cCtx.String("log-service"),
	})
}

// NewLogger builds a logger writing to out, os.Stdout when nil.
func NewLogger(out io.Writer, cfg *config.LogConfig) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Output:  out,
		Debug:   cfg.Debug,
		JSON:    cfg.JSON,
		Service: cfg.Service,
		Version: common.Version,
	})

	if cfg.UID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ApplyOverrides copies explicitly set flags over cfg.
func ApplyOverrides(cCtx *cli.Context, cfg *config.Config) {
	if cCtx.IsSet(ListenAddrFlag.Name) {
		cfg.Server.ListenAddr = cCtx.String(ListenAddrFlag.Name)
	}
	if cCtx.IsSet(MetricsAddrFlag.Name) {
		cfg.Server.MetricsAddr = cCtx.String(MetricsAddrFlag.Name)
	}
	if cCtx.IsSet(PprofFlag.Name) {
		cfg.Server.Pprof = cCtx.Bool(PprofFlag.Name)
	}
	if cCtx.IsSet(DrainSecondsFlag.Name) {
		cfg.Server.DrainSeconds = cCtx.Int64(DrainSecondsFlag.Name)
	}
	if cCtx.IsSet(LogJsonFlag.Name) {
		cfg.Log.JSON = cCtx.Bool(LogJsonFlag.Name)
	}
	if cCtx.IsSet(LogDebugFlag.Name) {
		cfg.Log.Debug = cCtx.Bool(LogDebugFlag.Name)
	}
	if cCtx.IsSet(LogUidFlag.Name) {
		cfg.Log.UID = cCtx.Bool(LogUidFlag.Name)
	}
	if cCtx.IsSet("log-service") {
		cfg.Log.Service = cCtx.String("log-service")
	}
	if cCtx.IsSet(RecordSourceFlag.Name) {
		cfg.Record.Sources = cCtx.StringSlice(RecordSourceFlag.Name)
	}
}

// ConfigureServer builds the server config from cfg.
func ConfigureServer(cfg *config.Config, logger *slog.Logger) *api.HTTPServerConfig {
	return cfg.HTTPServer(logger)
}

var ConfigFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "path to a YAML config file",
	EnvVars: []string{"PIXELPROPS_CONFIG"},
}
var DotenvFlag = &cli.StringFlag{
	Name:  "env-file",
	Value: ".env",
	Usage: "dotenv file consulted after the process environment",
}
var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on for API",
}
var RecordSourceFlag = &cli.StringSliceFlag{
	Name:  "record-source",
	Usage: "baseline build.prop location (file:// or s3://), may be repeated",
}
var ServerURLFlag = &cli.StringFlag{
	Name:    "server",
	Value:   "http://127.0.0.1:8080",
	Usage:   "override daemon base URL",
	EnvVars: []string{"PIXELPROPS_SERVER_URL"},
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var LogFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}
