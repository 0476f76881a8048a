package spoof

import "go.uber.org/atomic"

// State records whether the attestation service is being impersonated.
// The zero value is ready to use and unset.
type State struct {
	latched atomic.Bool
}

// NewState returns an unset latch.
func NewState() *State {
	return &State{}
}

// Set latches the state. It reports whether this call performed the
// false to true transition.
func (s *State) Set() bool {
	return s.latched.CompareAndSwap(false, true)
}

// IsSet reports whether the latch has fired.
func (s *State) IsSet() bool {
	return s.latched.Load()
}
