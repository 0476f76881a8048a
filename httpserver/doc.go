/*
Package httpserver runs the override daemon's HTTP API.

The server mounts API handlers (see api/propshandler) behind a structured
request logger and adds the operational endpoints:

  - GET /livez - Liveness probe
  - GET /readyz - Readiness probe, 503 while draining
  - GET /drain - Mark the server not ready
  - GET /undrain - Mark the server ready again
  - /debug/* - pprof, when enabled

Prometheus metrics are served on a separate listener when a metrics address
is configured.

Usage:

	cfg := &api.HTTPServerConfig{ListenAddr: ":8080", Log: logger}
	m, _ := metrics.New(common.PackageName, cfg.MetricsAddr)
	srv, err := httpserver.New(cfg, m, propshandler.NewHandler(engine, record, m, logger))
	if err != nil {
		return err
	}
	srv.RunInBackground()
	defer srv.Shutdown()
*/
package httpserver
