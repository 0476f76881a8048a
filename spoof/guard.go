package spoof

import (
	"log/slog"
	"strings"

	"github.com/ruteri/pixelprops/interfaces"
)

// DroidGuardMarker identifies frames of the integrity verification component.
const DroidGuardMarker = "DroidGuard"

// IsAttestationCaller reports whether any frame belongs to the integrity
// verification component.
func IsAttestationCaller(frames []interfaces.Frame) bool {
	for _, f := range frames {
		if strings.Contains(f.Function, DroidGuardMarker) {
			return true
		}
	}
	return false
}

// Guard refuses certificate chain requests from the integrity verification
// component while the attestation service is impersonated.
type Guard struct {
	state *State
	stack interfaces.CallStackProvider
	log   *slog.Logger
}

// NewGuard creates a guard reading the latch and classifying stacks from
// the given provider.
func NewGuard(state *State, stack interfaces.CallStackProvider, log *slog.Logger) *Guard {
	return &Guard{
		state: state,
		stack: stack,
		log:   log,
	}
}

// GuardCertificateChainRequest must be called before a certificate chain is
// retrieved. It returns interfaces.ErrUnsupportedOperation when the request
// has to be aborted.
func (g *Guard) GuardCertificateChainRequest() error {
	if !g.state.IsSet() {
		return nil
	}
	if !IsAttestationCaller(g.stack.CallStack()) {
		return nil
	}
	g.log.Debug("Refusing certificate chain request from integrity verification caller")
	return interfaces.ErrUnsupportedOperation
}
