package flags

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/ruteri/pixelprops/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	all := append([]cli.Flag{ListenAddrFlag, RecordSourceFlag, LogServiceFlagFn("pixelprops")}, CommonFlags...)
	for _, f := range all {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestApplyOverrides_OnlySetFlags(t *testing.T) {
	cCtx := newContext(t, "--metrics-addr", "", "--log-debug", "--record-source", "file:///a.prop", "--record-source", "s3://b/k")

	cfg := config.Defaults()
	cfg.Server.ListenAddr = "10.0.0.1:80"
	ApplyOverrides(cCtx, cfg)

	assert.Equal(t, "10.0.0.1:80", cfg.Server.ListenAddr)
	assert.Empty(t, cfg.Server.MetricsAddr)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, int64(45), cfg.Server.DrainSeconds)
	assert.Equal(t, []string{"file:///a.prop", "s3://b/k"}, cfg.Record.Sources)
}

func TestConfigureServer(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.DrainSeconds = 3
	cfg.Server.Pprof = true

	srvCfg := ConfigureServer(cfg, NewLogger(io.Discard, &cfg.Log))
	assert.Equal(t, cfg.Server.ListenAddr, srvCfg.ListenAddr)
	assert.Equal(t, 3*time.Second, srvCfg.DrainDuration)
	assert.True(t, srvCfg.EnablePprof)
	assert.NotNil(t, srvCfg.Log)
	assert.Equal(t, 30*time.Second, srvCfg.GracefulShutdownDuration)
	assert.Equal(t, 60*time.Second, srvCfg.ReadTimeout)
	assert.Equal(t, int64(1<<20), srvCfg.MaxRequestBodySize)
}
