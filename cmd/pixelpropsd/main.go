package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruteri/pixelprops/api/propshandler"
	"github.com/ruteri/pixelprops/buildrecord"
	"github.com/ruteri/pixelprops/cmd/flags"
	"github.com/ruteri/pixelprops/common"
	"github.com/ruteri/pixelprops/config"
	"github.com/ruteri/pixelprops/httpserver"
	"github.com/ruteri/pixelprops/metrics"
	"github.com/ruteri/pixelprops/profiles"
	"github.com/ruteri/pixelprops/spoof"
	"github.com/ruteri/pixelprops/storage"
	"github.com/urfave/cli/v2"
)

const recordLoadTimeout = 30 * time.Second

var cliFlags = append([]cli.Flag{
	flags.ConfigFlag,
	flags.DotenvFlag,
	flags.ListenAddrFlag,
	flags.RecordSourceFlag,
	flags.LogServiceFlagFn(common.PackageName),
}, flags.CommonFlags...)

func main() {
	app := &cli.App{
		Name:    "pixelpropsd",
		Usage:   "Serve device identity overrides and certificate chain guard checks",
		Version: common.Version,
		Flags:   cliFlags,
		Action:  run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cCtx.String(flags.ConfigFlag.Name))
	if err != nil {
		return nil, err
	}

	lookuper, err := config.EnvLookuper(cCtx.String(flags.DotenvFlag.Name))
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cCtx.Context, cfg, lookuper); err != nil {
		return nil, err
	}

	flags.ApplyOverrides(cCtx, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadRecord(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*buildrecord.Record, error) {
	locations := cfg.SourceLocations()
	if len(locations) == 0 {
		logger.Warn("No record sources configured, starting from an unknown build")
		return buildrecord.NewUnknown(), nil
	}

	src, err := storage.NewSourceFactory(logger).CreateMultiSource(locations)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, recordLoadTimeout)
	defer cancel()
	return storage.LoadRecord(ctx, src)
}

func run(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	logger := flags.NewLogger(nil, &cfg.Log)

	table := profiles.Default()
	if err := table.Validate(buildrecord.Fields()); err != nil {
		logger.Error("Profile table does not match the build record", "err", err)
		return err
	}

	record, err := loadRecord(cCtx.Context, cfg, logger)
	if err != nil {
		logger.Error("Failed to load baseline record", "err", err)
		return err
	}
	logger.Info("Baseline record loaded",
		"fingerprint", record.Build().Fingerprint,
		"date", record.BuildDate())

	metricsSrv, err := metrics.New(common.PackageName, cfg.Server.MetricsAddr)
	if err != nil {
		logger.Error("Failed to create metrics server", "err", err)
		return err
	}

	engine := spoof.NewEngine(record, spoof.NewState(), table, logger)
	handler := propshandler.NewHandler(engine, record, metricsSrv, logger)

	server, err := httpserver.New(flags.ConfigureServer(cfg, logger), metricsSrv, handler)
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}
	server.RunInBackground()

	// Wait for termination signal
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	logger.Info("Server is running, press Ctrl+C to stop")
	<-exit
	logger.Info("Shutdown signal received")

	server.Shutdown()
	logger.Info("Server shutdown complete")
	return nil
}
