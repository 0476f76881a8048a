package profiles

import (
	"testing"

	"github.com/ruteri/pixelprops/buildrecord"
	"github.com/ruteri/pixelprops/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	require.NoError(t, Default().Validate(buildrecord.Fields()))
}

func TestDefault_Contents(t *testing.T) {
	table := Default()

	assert.Equal(t, []string{"BRAND", "MANUFACTURER", "IS_DEBUGGABLE", "IS_ENG", "IS_USERDEBUG", "IS_USER", "TYPE"}, table.Common.Names())
	assert.Equal(t, []string{"DEVICE", "PRODUCT", "MODEL", "FINGERPRINT"}, table.Modern.Attributes.Names())
	assert.Equal(t, []string{"DEVICE", "PRODUCT", "MODEL", "FINGERPRINT"}, table.Legacy.Attributes.Names())

	model, ok := table.Modern.Attributes.Get("MODEL")
	require.True(t, ok)
	assert.Equal(t, interfaces.String("Pixel 7 Pro"), model)

	model, ok = table.Legacy.Attributes.Get("MODEL")
	require.True(t, ok)
	assert.Equal(t, interfaces.String("Pixel XL"), model)

	assert.Len(t, table.ModernPackages, 25)
	assert.Len(t, table.LegacyPackages, 10)
	assert.True(t, table.ModernPackages.Contains(PackageGMS))
	assert.False(t, table.ModernPackages.Contains(PackageSettingsIntelligence))
	assert.False(t, table.LegacyPackages.Contains(PackageSettingsIntelligence))
}

func TestTable_ProfileFor(t *testing.T) {
	table := Default()

	tests := []struct {
		pkg  string
		want string
	}{
		{PackageGMS, "cheetah"},
		{"com.google.android.apps.nexuslauncher", "cheetah"},
		{"com.google.android.apps.photos", "marlin"},
		{"com.samsung.android.waterplugin", "marlin"},
		{"com.example.unrelated", ""},
		{PackageSettingsIntelligence, ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			p := table.ProfileFor(tt.pkg)
			if tt.want == "" {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestTable_FirstMatchWins(t *testing.T) {
	table := Default()
	table.LegacyPackages["com.google.android.dialer"] = struct{}{}

	p := table.ProfileFor("com.google.android.dialer")
	require.NotNil(t, p)
	assert.Equal(t, "cheetah", p.Name)

	err := table.Validate(buildrecord.Fields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "com.google.android.dialer")

	// Fresh tables are unaffected.
	assert.False(t, Default().LegacyPackages.Contains("com.google.android.dialer"))
}

func TestTable_ValidateUnknownField(t *testing.T) {
	table := Default()
	table.Legacy = Profile{
		Name: "bogus",
		Attributes: NewAttributeSet(
			interfaces.Attribute{Name: "SERIAL_NUMBER", Value: interfaces.String("x")},
		),
	}

	err := table.Validate(buildrecord.Fields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus: unknown field SERIAL_NUMBER")
}

func TestAttributeSet_Immutable(t *testing.T) {
	src := []interfaces.Attribute{{Name: "MODEL", Value: interfaces.String("a")}}
	set := NewAttributeSet(src...)
	src[0].Value = interfaces.String("b")

	attrs := set.Attributes()
	attrs[0].Value = interfaces.String("c")

	v, ok := set.Get("MODEL")
	require.True(t, ok)
	assert.Equal(t, interfaces.String("a"), v)
	assert.Equal(t, 1, set.Len())
}

func TestTable_Names(t *testing.T) {
	assert.Equal(t, []string{"cheetah", "marlin"}, Default().Names())
}
