// Package interfaces defines the contracts and shared types of the build
// property override system, separating interface definitions from their
// implementations.
//
// # Attribute store
//
// AttributeStore is the live record of device identity fields (brand, model,
// fingerprint, debug flags) that overrides are written to. Fields are
// addressed by name and carry a typed Value. A store may refuse a write with
// ErrFieldNotFound (unknown or read-only field) or ErrTypeMismatch (value
// cannot be coerced to the field's declared type).
//
// # Call stacks
//
// CallStackProvider supplies the current call stack as an ordered list of
// Frame descriptors. Callers classify the stack; they never walk it
// themselves.
//
// # Record sources
//
// RecordSource and RecordSourceFactory load the baseline build.prop a
// process starts from (file://, s3://).
//
// # Errors
//
//   - ErrFieldNotFound: the store has no writable field by that name
//   - ErrTypeMismatch: a value could not be coerced to the field type
//   - ErrUnsupportedOperation: a guarded operation was refused
//   - ErrRecordNotFound: no source holds a baseline record
//   - ErrSourceUnavailable: a record source is not accessible
//   - ErrInvalidLocationURI: a source URI is malformed or unsupported
package interfaces
