package buildrecord

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"
)

// Property keys are tried in order; the first one present wins. Partitioned
// builds publish product properties under ro.product.<partition>.*.
var propKeys = map[string][]string{
	"BOARD":        {"ro.product.board"},
	"BOOTLOADER":   {"ro.bootloader"},
	"BRAND":        {"ro.product.brand", "ro.product.system.brand", "ro.product.vendor.brand"},
	"DEVICE":       {"ro.product.device", "ro.product.system.device", "ro.product.vendor.device"},
	"DISPLAY":      {"ro.build.display.id"},
	"FINGERPRINT":  {"ro.build.fingerprint", "ro.system.build.fingerprint", "ro.vendor.build.fingerprint"},
	"HARDWARE":     {"ro.hardware"},
	"HOST":         {"ro.build.host"},
	"ID":           {"ro.build.id"},
	"MANUFACTURER": {"ro.product.manufacturer", "ro.product.system.manufacturer", "ro.product.vendor.manufacturer"},
	"MODEL":        {"ro.product.model", "ro.product.system.model", "ro.product.vendor.model"},
	"PRODUCT":      {"ro.product.name", "ro.product.system.name", "ro.product.vendor.name"},
	"TAGS":         {"ro.build.tags"},
	"TYPE":         {"ro.build.type"},
	"USER":         {"ro.build.user"},
	"DATE":         {"ro.build.date"},
}

// FromBuildProp parses a build.prop file into a record. Missing properties
// read as Unknown, except ro.build.type which defaults to user as in
// NewUnknown. An unsupported build type is an error. The debug flags are derived from ro.build.type and
// ro.debuggable, and a missing fingerprint is assembled from its parts.
func FromBuildProp(data []byte) (*Record, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse build.prop: %w", err)
	}

	lookup := func(name string) string {
		for _, key := range propKeys[name] {
			if v, ok := props.Get(key); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return Unknown
	}

	b := Build{
		Board:        lookup("BOARD"),
		Bootloader:   lookup("BOOTLOADER"),
		Brand:        lookup("BRAND"),
		Device:       lookup("DEVICE"),
		Display:      lookup("DISPLAY"),
		Fingerprint:  lookup("FINGERPRINT"),
		Hardware:     lookup("HARDWARE"),
		Host:         lookup("HOST"),
		ID:           lookup("ID"),
		Manufacturer: lookup("MANUFACTURER"),
		Model:        lookup("MODEL"),
		Product:      lookup("PRODUCT"),
		Tags:         lookup("TAGS"),
		Type:         lookup("TYPE"),
		User:         lookup("USER"),
		Date:         lookup("DATE"),
	}

	if b.Type == Unknown {
		b.Type = TypeUser
	}
	switch b.Type {
	case TypeUser, TypeUserdebug, TypeEng:
	default:
		return nil, fmt.Errorf("unsupported ro.build.type %q", b.Type)
	}

	b.IsDebuggable = props.GetString("ro.debuggable", "0") == "1"
	b.IsEng = b.Type == TypeEng
	b.IsUserdebug = b.Type == TypeUserdebug
	b.IsUser = b.Type == TypeUser

	if b.Fingerprint == Unknown {
		b.Fingerprint = deriveFingerprint(b,
			props.GetString("ro.build.version.release", Unknown),
			props.GetString("ro.build.version.incremental", Unknown))
	}

	return New(b), nil
}

// deriveFingerprint assembles brand/product/device:release/id/incremental:type/tags.
func deriveFingerprint(b Build, release, incremental string) string {
	return fmt.Sprintf("%s/%s/%s:%s/%s/%s:%s/%s",
		b.Brand, b.Product, b.Device, release, b.ID, incremental, b.Type, b.Tags)
}
