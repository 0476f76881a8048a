package api

import (
	"context"

	"github.com/ruteri/pixelprops/interfaces"
)

// OverrideProvider is the host-facing contract of the override daemon.
type OverrideProvider interface {
	// Apply applies the overrides selected for a package.
	Apply(ctx context.Context, packageName string) (*ApplyResponse, error)

	// GuardCertificateChain checks a certificate chain request made with the
	// given call stack. It returns interfaces.ErrUnsupportedOperation when the
	// request must be aborted.
	GuardCertificateChain(ctx context.Context, frames []interfaces.Frame) error
}

// ApplyResponse reports the outcome of an override request.
type ApplyResponse struct {
	// Package is the package the overrides were applied for.
	Package string `json:"package"`

	// Profile is the selected profile name, empty when none applied.
	Profile string `json:"profile,omitempty"`

	// SpoofLatched reports the impersonation latch after the request.
	SpoofLatched bool `json:"spoof_latched"`
}

// GuardRequest carries the call stack of a pending certificate chain request.
type GuardRequest struct {
	Frames []interfaces.Frame `json:"frames"`
}

// GuardResponse is returned when a guarded request may proceed.
type GuardResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is returned for refused or malformed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RecordResponse is the current attribute snapshot keyed by field name.
// Boolean fields render as "true" or "false".
type RecordResponse struct {
	Fields map[string]string `json:"fields"`
}

// StateResponse reports the impersonation latch.
type StateResponse struct {
	SpoofLatched bool `json:"spoof_latched"`
}

// ProfileInfo describes one entry of the profile table.
type ProfileInfo struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Attributes  map[string]string `json:"attributes" yaml:"attributes"`
	Packages    []string          `json:"packages" yaml:"packages"`
}

// ProfilesResponse lists the common attributes and profiles in lookup order.
type ProfilesResponse struct {
	Common   map[string]string `json:"common" yaml:"common"`
	Profiles []ProfileInfo     `json:"profiles" yaml:"profiles"`
}
