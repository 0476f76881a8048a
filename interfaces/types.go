package interfaces

import (
	"errors"
	"strconv"
)

var (
	// ErrFieldNotFound is returned when the attribute store has no writable
	// field with the requested name.
	ErrFieldNotFound = errors.New("field not found")

	// ErrTypeMismatch is returned when a value cannot be coerced to the
	// declared type of the target field.
	ErrTypeMismatch = errors.New("value does not match field type")

	// ErrUnsupportedOperation is returned by guards that refuse an operation.
	// It carries no payload; callers propagate it as an operation failure.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// ValueKind discriminates the payload of a Value.
type ValueKind int

const (
	// StringValue holds free-form text such as MODEL or FINGERPRINT.
	StringValue ValueKind = iota
	// BoolValue holds a flag such as IS_DEBUGGABLE.
	BoolValue
	// EnumValue holds one of a closed set of strings, e.g. the build TYPE.
	EnumValue
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case StringValue:
		return "string"
	case BoolValue:
		return "bool"
	case EnumValue:
		return "enum"
	default:
		return "unknown"
	}
}

// Value is a typed attribute value: a string, a boolean or an enumerated
// string. The zero Value is the empty string.
type Value struct {
	kind ValueKind
	s    string
	b    bool
}

// String builds a string value.
func String(s string) Value { return Value{kind: StringValue, s: s} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: BoolValue, b: b} }

// Enum builds an enumerated string value.
func Enum(s string) Value { return Value{kind: EnumValue, s: s} }

// Kind reports which payload the value carries.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the textual payload. For boolean values it returns the
// canonical "true"/"false" form.
func (v Value) Str() string {
	if v.kind == BoolValue {
		return strconv.FormatBool(v.b)
	}
	return v.s
}

// Bool returns the boolean payload and whether the value is a boolean.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == BoolValue
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Str()
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// MarshalText encodes the value in its textual form, so snapshots render
// naturally in JSON and YAML.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.Str()), nil
}

// Attribute is a single named override.
type Attribute struct {
	Name  string
	Value Value
}
