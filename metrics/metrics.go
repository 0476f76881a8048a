// Package metrics exposes Prometheus metrics for the override daemon.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Guard outcomes.
const (
	OutcomeProceed = "proceed"
	OutcomeAbort   = "abort"
)

// NoProfile labels applies that selected no profile.
const NoProfile = "none"

// MetricsServer owns a private registry and serves it on /metrics.
type MetricsServer struct {
	registry *prometheus.Registry
	srv      *http.Server

	overridesApplied *prometheus.CounterVec
	guardChecks      *prometheus.CounterVec
	spoofLatched     prometheus.Gauge
}

// New registers the daemon's collectors under namespace. listenAddr may be
// empty when the caller only needs Handler.
func New(namespace, listenAddr string) (*MetricsServer, error) {
	m := &MetricsServer{
		registry: prometheus.NewRegistry(),
		overridesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overrides_applied_total",
			Help:      "Override requests by selected profile.",
		}, []string{"profile"}),
		guardChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_checks_total",
			Help:      "Certificate chain guard checks by outcome.",
		}, []string{"outcome"}),
		spoofLatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spoof_latched",
			Help:      "1 once the attestation service impersonation latch has fired.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.overridesApplied,
		m.guardChecks,
		m.spoofLatched,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	m.srv = &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsServer) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveApply counts an override request.
func (m *MetricsServer) ObserveApply(profile string) {
	if profile == "" {
		profile = NoProfile
	}
	m.overridesApplied.WithLabelValues(profile).Inc()
}

// ObserveGuard counts a guard check.
func (m *MetricsServer) ObserveGuard(aborted bool) {
	outcome := OutcomeProceed
	if aborted {
		outcome = OutcomeAbort
	}
	m.guardChecks.WithLabelValues(outcome).Inc()
}

// SetLatched mirrors the spoof latch.
func (m *MetricsServer) SetLatched(latched bool) {
	if latched {
		m.spoofLatched.Set(1)
	} else {
		m.spoofLatched.Set(0)
	}
}

// Registry returns the underlying registry.
func (m *MetricsServer) Registry() *prometheus.Registry {
	return m.registry
}

// ListenAndServe serves /metrics until Shutdown.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
