// Package profiles holds the compiled-in device profile table: the common
// attributes every override applies, the reference device profiles and the
// package sets that select them.
package profiles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ruteri/pixelprops/interfaces"
)

const (
	// PackageGMS is the attestation service package. It receives the modern
	// profile without MODEL and latches the spoof state instead.
	PackageGMS = "com.google.android.gms"

	// PackageSettingsIntelligence is the settings search indexer. It gets a
	// FINGERPRINT equal to the build date so its index is rebuilt per build.
	PackageSettingsIntelligence = "com.google.android.settings.intelligence"
)

// AttributeSet is an ordered, immutable group of overrides.
type AttributeSet struct {
	attrs []interfaces.Attribute
}

// NewAttributeSet copies attrs into a new set.
func NewAttributeSet(attrs ...interfaces.Attribute) AttributeSet {
	return AttributeSet{attrs: append([]interfaces.Attribute(nil), attrs...)}
}

// Attributes returns a copy of the attributes in application order.
func (s AttributeSet) Attributes() []interfaces.Attribute {
	return append([]interfaces.Attribute(nil), s.attrs...)
}

// Names returns the attribute names in application order.
func (s AttributeSet) Names() []string {
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.Name
	}
	return names
}

// Get returns the value for name within the set.
func (s AttributeSet) Get(name string) (interfaces.Value, bool) {
	for _, a := range s.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return interfaces.Value{}, false
}

// Len returns the number of attributes.
func (s AttributeSet) Len() int { return len(s.attrs) }

// Profile is a named attribute set emulating one reference device.
type Profile struct {
	Name        string
	Description string
	Attributes  AttributeSet
}

// PackageSet is a set of package identifiers.
type PackageSet map[string]struct{}

// NewPackageSet builds a set from package names.
func NewPackageSet(pkgs ...string) PackageSet {
	s := make(PackageSet, len(pkgs))
	for _, p := range pkgs {
		s[p] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s PackageSet) Contains(pkg string) bool {
	_, ok := s[pkg]
	return ok
}

// Sorted returns the members in lexical order.
func (s PackageSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Table binds package sets to profiles. Modern membership is checked before
// legacy membership, so a package listed in both gets the modern profile.
type Table struct {
	Common         AttributeSet
	Modern         Profile
	Legacy         Profile
	ModernPackages PackageSet
	LegacyPackages PackageSet
}

// ProfileFor returns the profile selected for pkg, or nil.
func (t *Table) ProfileFor(pkg string) *Profile {
	switch {
	case pkg == "":
		return nil
	case t.ModernPackages.Contains(pkg):
		return &t.Modern
	case t.LegacyPackages.Contains(pkg):
		return &t.Legacy
	default:
		return nil
	}
}

// Profiles returns the profiles in lookup order.
func (t *Table) Profiles() []Profile {
	return []Profile{t.Modern, t.Legacy}
}

// Names returns the profile names in lookup order.
func (t *Table) Names() []string {
	return []string{t.Modern.Name, t.Legacy.Name}
}

// Validate checks that every attribute names a known store field and that
// the package sets are disjoint. All violations are reported together.
func (t *Table) Validate(knownFields []string) error {
	known := make(map[string]struct{}, len(knownFields))
	for _, f := range knownFields {
		known[f] = struct{}{}
	}

	var msgs []string
	check := func(owner string, set AttributeSet) {
		for _, name := range set.Names() {
			if _, ok := known[name]; !ok {
				msgs = append(msgs, fmt.Sprintf("%s: unknown field %s", owner, name))
			}
		}
	}
	check("common", t.Common)
	check(t.Modern.Name, t.Modern.Attributes)
	check(t.Legacy.Name, t.Legacy.Attributes)

	for _, pkg := range t.ModernPackages.Sorted() {
		if t.LegacyPackages.Contains(pkg) {
			msgs = append(msgs, fmt.Sprintf("package %s is in both %s and %s sets", pkg, t.Modern.Name, t.Legacy.Name))
		}
	}

	if len(msgs) != 0 {
		return fmt.Errorf("invalid profile table:\n  %s", strings.Join(msgs, "\n  "))
	}
	return nil
}
