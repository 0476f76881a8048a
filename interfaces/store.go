package interfaces

// AttributeStore is the live record of device identity fields that overrides
// are applied to. Field identity is by name.
type AttributeStore interface {
	// Get returns the current value of a field, or ErrFieldNotFound.
	Get(name string) (Value, error)

	// SetByName replaces a field's value, coercing it to the field's declared
	// type. Unknown and read-only fields yield ErrFieldNotFound, values that
	// cannot be coerced yield ErrTypeMismatch.
	SetByName(name string, value Value) error

	// BuildDate returns the read-only system build date.
	BuildDate() string

	// Snapshot returns a copy of every field keyed by name.
	Snapshot() map[string]Value
}

// Frame describes one entry of a call stack. Function is the symbolic name
// (package-qualified function, or class name for foreign runtimes) that
// classifiers match against.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// CallStackProvider supplies the current call stack. Order is caller to
// callee or the reverse; consumers must not depend on it.
type CallStackProvider interface {
	CallStack() []Frame
}
