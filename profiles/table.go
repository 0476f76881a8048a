package profiles

import "github.com/ruteri/pixelprops/interfaces"

var commonProps = NewAttributeSet(
	interfaces.Attribute{Name: "BRAND", Value: interfaces.String("google")},
	interfaces.Attribute{Name: "MANUFACTURER", Value: interfaces.String("Google")},
	interfaces.Attribute{Name: "IS_DEBUGGABLE", Value: interfaces.Bool(false)},
	interfaces.Attribute{Name: "IS_ENG", Value: interfaces.Bool(false)},
	interfaces.Attribute{Name: "IS_USERDEBUG", Value: interfaces.Bool(false)},
	interfaces.Attribute{Name: "IS_USER", Value: interfaces.Bool(true)},
	interfaces.Attribute{Name: "TYPE", Value: interfaces.Enum("user")},
)

// Pixel 7 Pro
var cheetah = Profile{
	Name:        "cheetah",
	Description: "Pixel 7 Pro",
	Attributes: NewAttributeSet(
		interfaces.Attribute{Name: "DEVICE", Value: interfaces.String("cheetah")},
		interfaces.Attribute{Name: "PRODUCT", Value: interfaces.String("cheetah")},
		interfaces.Attribute{Name: "MODEL", Value: interfaces.String("Pixel 7 Pro")},
		interfaces.Attribute{Name: "FINGERPRINT", Value: interfaces.String("google/cheetah/cheetah:13/TD1A.220804.031/9071314:user/release-keys")},
	),
}

// Pixel XL
var marlin = Profile{
	Name:        "marlin",
	Description: "Pixel XL",
	Attributes: NewAttributeSet(
		interfaces.Attribute{Name: "DEVICE", Value: interfaces.String("marlin")},
		interfaces.Attribute{Name: "PRODUCT", Value: interfaces.String("marlin")},
		interfaces.Attribute{Name: "MODEL", Value: interfaces.String("Pixel XL")},
		interfaces.Attribute{Name: "FINGERPRINT", Value: interfaces.String("google/marlin/marlin:10/QP1A.191005.007.A3/5972272:user/release-keys")},
	),
}

var cheetahPackages = []string{
	"com.google.android.apps.customization.pixel",
	"com.google.android.apps.fitness",
	"com.google.android.apps.gcs",
	"com.google.android.apps.nexuslauncher",
	"com.google.android.apps.messaging",
	"com.google.android.apps.safetyhub",
	"com.google.android.apps.tachyon",
	"com.google.android.apps.turbo",
	"com.google.android.apps.turboadapter",
	"com.google.android.apps.wallpaper",
	"com.google.android.apps.wallpaper.pixel",
	"com.google.android.apps.wellbeing",
	"com.google.android.as",
	"com.google.android.configupdater",
	"com.google.android.dialer",
	"com.google.android.ext.services",
	PackageGMS,
	"com.google.android.gms.location.history",
	"com.google.android.googlequicksearchbox",
	"com.google.android.gsf",
	"com.google.android.inputmethod.latin",
	"com.google.android.soundpicker",
	"com.google.intelligence.sense",
	"com.google.pixel.dynamicwallpapers",
	"com.google.pixel.livewallpaper",
}

var marlinPackages = []string{
	"com.google.android.apps.photos", // unlimited photos
	// Samsung wearable managers crash on non-Samsung builds
	"com.samsung.accessory.berrymgr",
	"com.samsung.accessory.fridaymgr",
	"com.samsung.accessory.neobeanmgr",
	"com.samsung.android.app.watchmanager",
	"com.samsung.android.geargplugin",
	"com.samsung.android.gearnplugin",
	"com.samsung.android.modenplugin",
	"com.samsung.android.neatplugin",
	"com.samsung.android.waterplugin",
}

// Default returns the canonical table. Package sets are rebuilt on every
// call; attribute sets are immutable and shared.
func Default() *Table {
	return &Table{
		Common:         commonProps,
		Modern:         cheetah,
		Legacy:         marlin,
		ModernPackages: NewPackageSet(cheetahPackages...),
		LegacyPackages: NewPackageSet(marlinPackages...),
	}
}
