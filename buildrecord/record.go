package buildrecord

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ruteri/pixelprops/interfaces"
	"github.com/spf13/cast"
)

// Unknown is the value the platform reports for properties it could not read.
const Unknown = "unknown"

// Build types accepted by the TYPE field.
const (
	TypeUser      = "user"
	TypeUserdebug = "userdebug"
	TypeEng       = "eng"
)

// Build holds the identity fields of a device build.
type Build struct {
	Board        string
	Bootloader   string
	Brand        string
	Device       string
	Display      string
	Fingerprint  string
	Hardware     string
	Host         string
	ID           string
	Manufacturer string
	Model        string
	Product      string
	Tags         string
	Type         string
	User         string

	IsDebuggable bool
	IsEng        bool
	IsUserdebug  bool
	IsUser       bool

	Date string
}

type field struct {
	kind interfaces.ValueKind
	get  func(b *Build) interfaces.Value
	// set is nil for read-only fields.
	set func(b *Build, v interfaces.Value) error
}

func stringField(ptr func(b *Build) *string) field {
	return field{
		kind: interfaces.StringValue,
		get:  func(b *Build) interfaces.Value { return interfaces.String(*ptr(b)) },
		set: func(b *Build, v interfaces.Value) error {
			*ptr(b) = v.Str()
			return nil
		},
	}
}

func boolField(ptr func(b *Build) *bool) field {
	return field{
		kind: interfaces.BoolValue,
		get:  func(b *Build) interfaces.Value { return interfaces.Bool(*ptr(b)) },
		set: func(b *Build, v interfaces.Value) error {
			if bv, ok := v.Bool(); ok {
				*ptr(b) = bv
				return nil
			}
			bv, err := cast.ToBoolE(v.Str())
			if err != nil {
				return fmt.Errorf("%w: %q is not a bool", interfaces.ErrTypeMismatch, v.Str())
			}
			*ptr(b) = bv
			return nil
		},
	}
}

func enumField(ptr func(b *Build) *string, allowed ...string) field {
	return field{
		kind: interfaces.EnumValue,
		get:  func(b *Build) interfaces.Value { return interfaces.Enum(*ptr(b)) },
		set: func(b *Build, v interfaces.Value) error {
			if v.Kind() == interfaces.BoolValue {
				return fmt.Errorf("%w: bool assigned to enum", interfaces.ErrTypeMismatch)
			}
			for _, a := range allowed {
				if v.Str() == a {
					*ptr(b) = a
					return nil
				}
			}
			return fmt.Errorf("%w: %q not one of %v", interfaces.ErrTypeMismatch, v.Str(), allowed)
		},
	}
}

func readOnlyField(ptr func(b *Build) *string) field {
	f := stringField(ptr)
	f.set = nil
	return f
}

var fields = map[string]field{
	"BOARD":        stringField(func(b *Build) *string { return &b.Board }),
	"BOOTLOADER":   stringField(func(b *Build) *string { return &b.Bootloader }),
	"BRAND":        stringField(func(b *Build) *string { return &b.Brand }),
	"DEVICE":       stringField(func(b *Build) *string { return &b.Device }),
	"DISPLAY":      stringField(func(b *Build) *string { return &b.Display }),
	"FINGERPRINT":  stringField(func(b *Build) *string { return &b.Fingerprint }),
	"HARDWARE":     stringField(func(b *Build) *string { return &b.Hardware }),
	"HOST":         stringField(func(b *Build) *string { return &b.Host }),
	"ID":           stringField(func(b *Build) *string { return &b.ID }),
	"MANUFACTURER": stringField(func(b *Build) *string { return &b.Manufacturer }),
	"MODEL":        stringField(func(b *Build) *string { return &b.Model }),
	"PRODUCT":      stringField(func(b *Build) *string { return &b.Product }),
	"TAGS":         stringField(func(b *Build) *string { return &b.Tags }),
	"TYPE":         enumField(func(b *Build) *string { return &b.Type }, TypeUser, TypeUserdebug, TypeEng),
	"USER":         stringField(func(b *Build) *string { return &b.User }),

	"IS_DEBUGGABLE": boolField(func(b *Build) *bool { return &b.IsDebuggable }),
	"IS_ENG":        boolField(func(b *Build) *bool { return &b.IsEng }),
	"IS_USERDEBUG":  boolField(func(b *Build) *bool { return &b.IsUserdebug }),
	"IS_USER":       boolField(func(b *Build) *bool { return &b.IsUser }),

	"DATE": readOnlyField(func(b *Build) *string { return &b.Date }),
}

// Fields returns every known field name in sorted order, read-only ones included.
func Fields() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Writable reports whether name is a field SetByName can change.
func Writable(name string) bool {
	f, ok := fields[name]
	return ok && f.set != nil
}

// KindOf returns the declared kind of a field.
func KindOf(name string) (interfaces.ValueKind, bool) {
	f, ok := fields[name]
	return f.kind, ok
}

// Record is a concurrency-safe interfaces.AttributeStore.
type Record struct {
	mu sync.RWMutex
	b  Build
}

var _ interfaces.AttributeStore = (*Record)(nil)

// New creates a record holding a copy of b.
func New(b Build) *Record {
	return &Record{b: b}
}

// NewUnknown creates a record the way the platform reports a build whose
// properties could not be read.
func NewUnknown() *Record {
	return New(Build{
		Board:        Unknown,
		Bootloader:   Unknown,
		Brand:        Unknown,
		Device:       Unknown,
		Display:      Unknown,
		Fingerprint:  Unknown,
		Hardware:     Unknown,
		Host:         Unknown,
		ID:           Unknown,
		Manufacturer: Unknown,
		Model:        Unknown,
		Product:      Unknown,
		Tags:         Unknown,
		Type:         TypeUser,
		User:         Unknown,
		IsUser:       true,
		Date:         Unknown,
	})
}

// Get returns the current value of a field.
func (r *Record) Get(name string) (interfaces.Value, error) {
	f, ok := fields[name]
	if !ok {
		return interfaces.Value{}, fmt.Errorf("%w: %s", interfaces.ErrFieldNotFound, name)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return f.get(&r.b), nil
}

// SetByName replaces a field's value, coercing it to the declared type.
func (r *Record) SetByName(name string, value interfaces.Value) error {
	f, ok := fields[name]
	if !ok || f.set == nil {
		return fmt.Errorf("%w: %s", interfaces.ErrFieldNotFound, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := f.set(&r.b, value); err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	return nil
}

// BuildDate returns the read-only build date.
func (r *Record) BuildDate() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.b.Date
}

// Snapshot returns every field keyed by name.
func (r *Record) Snapshot() map[string]interfaces.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]interfaces.Value, len(fields))
	for name, f := range fields {
		out[name] = f.get(&r.b)
	}
	return out
}

// Build returns a copy of the underlying fields.
func (r *Record) Build() Build {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.b
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	return New(r.Build())
}

// Change is a field whose value differs between two snapshots.
type Change struct {
	Name string
	Old  interfaces.Value
	New  interfaces.Value
}

// Diff lists the fields whose values differ between before and after,
// sorted by name. Fields present in only one snapshot are reported with a
// zero value on the other side.
func Diff(before, after map[string]interfaces.Value) []Change {
	var changes []Change
	seen := make(map[string]struct{}, len(before))
	for name, old := range before {
		seen[name] = struct{}{}
		if cur, ok := after[name]; !ok || !old.Equal(cur) {
			changes = append(changes, Change{Name: name, Old: old, New: after[name]})
		}
	}
	for name, cur := range after {
		if _, ok := seen[name]; !ok {
			changes = append(changes, Change{Name: name, New: cur})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Name < changes[j].Name })
	return changes
}
