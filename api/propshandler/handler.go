package propshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/pixelprops/api"
	"github.com/ruteri/pixelprops/interfaces"
	"github.com/ruteri/pixelprops/metrics"
	"github.com/ruteri/pixelprops/profiles"
	"github.com/ruteri/pixelprops/spoof"
)

// Handler serves override and guard requests against a single build record.
type Handler struct {
	engine  *spoof.Engine
	record  interfaces.AttributeStore
	metrics *metrics.MetricsServer
	log     *slog.Logger
}

// NewHandler creates a new HTTP request handler for the override daemon.
//
// Parameters:
//   - engine: Override engine bound to record
//   - record: Attribute store the engine writes to, exposed read-only
//   - m: Metrics server to record outcomes on, may be nil
//   - log: Structured logger for operational insights
func NewHandler(engine *spoof.Engine, record interfaces.AttributeStore, m *metrics.MetricsServer, log *slog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		record:  record,
		metrics: m,
		log:     log,
	}
}

// RegisterRoutes configures the HTTP router with the daemon endpoints:
//   - POST /api/v1/apply/{package_name} - Apply overrides for a package
//   - POST /api/v1/guard/certificate-chain - Check a certificate chain request
//   - GET /api/v1/record - Current build record
//   - GET /api/v1/profiles - Compiled-in profile table
//   - GET /api/v1/state - Impersonation latch
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/apply/{package_name}", h.HandleApply)
	r.Post("/api/v1/guard/certificate-chain", h.HandleGuard)
	r.Get("/api/v1/record", h.HandleRecord)
	r.Get("/api/v1/profiles", h.HandleProfiles)
	r.Get("/api/v1/state", h.HandleState)
}

// HandleApply applies the overrides selected for the package in the path.
// Packages without a profile still succeed with an empty profile name.
//
// Response: JSON-encoded api.ApplyResponse
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	packageName := chi.URLParam(r, "package_name")
	if packageName == "" {
		http.Error(w, "Missing package name", http.StatusBadRequest)
		return
	}

	h.engine.ApplyOverridesForPackage(packageName)

	profileName := ""
	if p := h.engine.Table().ProfileFor(packageName); p != nil {
		profileName = p.Name
	}
	latched := h.engine.State().IsSet()

	if h.metrics != nil {
		h.metrics.ObserveApply(profileName)
		h.metrics.SetLatched(latched)
	}

	h.log.Info("Applied overrides", "package", packageName, "profile", profileName, "latched", latched)

	writeJSON(w, http.StatusOK, api.ApplyResponse{
		Package:      packageName,
		Profile:      profileName,
		SpoofLatched: latched,
	})
}

// HandleGuard classifies the call stack in the request body.
//
// Status codes:
//   - 200 OK: The request may proceed
//   - 400 Bad Request: Malformed or oversized body
//   - 403 Forbidden: The request must be aborted
func (h *Handler) HandleGuard(w http.ResponseWriter, r *http.Request) {
	var req api.GuardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("Invalid guard request", "err", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	guard := spoof.NewGuard(h.engine.State(), spoof.StaticStack(req.Frames), h.log)
	err := guard.GuardCertificateChainRequest()
	if h.metrics != nil {
		h.metrics.ObserveGuard(err != nil)
	}

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, api.GuardResponse{Status: "proceed"})
	case errors.Is(err, interfaces.ErrUnsupportedOperation):
		h.log.Info("Certificate chain request refused", "frames", len(req.Frames))
		writeJSON(w, http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("Guard failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleRecord returns the current build record.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	snapshot := h.record.Snapshot()
	fields := make(map[string]string, len(snapshot))
	for name, value := range snapshot {
		fields[name] = value.Str()
	}
	writeJSON(w, http.StatusOK, api.RecordResponse{Fields: fields})
}

// HandleProfiles returns the profile table in lookup order.
func (h *Handler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DescribeTable(h.engine.Table()))
}

// HandleState returns the impersonation latch.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.StateResponse{SpoofLatched: h.engine.State().IsSet()})
}

// DescribeTable renders a profile table for display.
func DescribeTable(table *profiles.Table) api.ProfilesResponse {
	resp := api.ProfilesResponse{
		Common: attributeMap(table.Common),
	}
	for _, p := range []struct {
		profile  profiles.Profile
		packages profiles.PackageSet
	}{
		{table.Modern, table.ModernPackages},
		{table.Legacy, table.LegacyPackages},
	} {
		resp.Profiles = append(resp.Profiles, api.ProfileInfo{
			Name:        p.profile.Name,
			Description: p.profile.Description,
			Attributes:  attributeMap(p.profile.Attributes),
			Packages:    p.packages.Sorted(),
		})
	}
	return resp
}

func attributeMap(set profiles.AttributeSet) map[string]string {
	m := make(map[string]string, set.Len())
	for _, attr := range set.Attributes() {
		m[attr.Name] = attr.Value.Str()
	}
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
