package buildrecord

import (
	"errors"
	"sync"
	"testing"

	"github.com/ruteri/pixelprops/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_SetByName(t *testing.T) {
	r := NewUnknown()

	require.NoError(t, r.SetByName("MODEL", interfaces.String("Pixel 7 Pro")))
	require.NoError(t, r.SetByName("IS_DEBUGGABLE", interfaces.Bool(true)))
	require.NoError(t, r.SetByName("TYPE", interfaces.Enum(TypeUserdebug)))

	b := r.Build()
	assert.Equal(t, "Pixel 7 Pro", b.Model)
	assert.True(t, b.IsDebuggable)
	assert.Equal(t, TypeUserdebug, b.Type)

	model, err := r.Get("MODEL")
	require.NoError(t, err)
	assert.Equal(t, interfaces.String("Pixel 7 Pro"), model)

	typ, err := r.Get("TYPE")
	require.NoError(t, err)
	assert.Equal(t, interfaces.EnumValue, typ.Kind())
}

func TestRecord_Coercion(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   interfaces.Value
		want    interfaces.Value
		wantErr error
	}{
		{"bool from string", "IS_ENG", interfaces.String("true"), interfaces.Bool(true), nil},
		{"bool from numeric string", "IS_USER", interfaces.String("0"), interfaces.Bool(false), nil},
		{"bool from garbage", "IS_USER", interfaces.String("maybe"), interfaces.Bool(true), interfaces.ErrTypeMismatch},
		{"string from bool", "TAGS", interfaces.Bool(false), interfaces.String("false"), nil},
		{"enum from string", "TYPE", interfaces.String("eng"), interfaces.Enum("eng"), nil},
		{"enum out of range", "TYPE", interfaces.Enum("debug"), interfaces.Enum("user"), interfaces.ErrTypeMismatch},
		{"enum from bool", "TYPE", interfaces.Bool(true), interfaces.Enum("user"), interfaces.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewUnknown()
			err := r.SetByName(tt.field, tt.value)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}

			got, err := r.Get(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_UnknownAndReadOnlyFields(t *testing.T) {
	r := NewUnknown()

	err := r.SetByName("SERIAL_NUMBER", interfaces.String("x"))
	assert.True(t, errors.Is(err, interfaces.ErrFieldNotFound))

	err = r.SetByName("DATE", interfaces.String("Mon Jan 1 00:00:00 UTC 2024"))
	assert.True(t, errors.Is(err, interfaces.ErrFieldNotFound))
	assert.Equal(t, Unknown, r.BuildDate())

	_, err = r.Get("SERIAL_NUMBER")
	assert.True(t, errors.Is(err, interfaces.ErrFieldNotFound))

	assert.False(t, Writable("DATE"))
	assert.True(t, Writable("MODEL"))
	assert.False(t, Writable("SERIAL_NUMBER"))
}

func TestRecord_SnapshotCoversFields(t *testing.T) {
	r := New(Build{Brand: "google", Date: "Thu Aug 4 2022", IsUser: true, Type: TypeUser})
	snap := r.Snapshot()

	assert.Len(t, snap, len(Fields()))
	assert.Equal(t, interfaces.String("google"), snap["BRAND"])
	assert.Equal(t, interfaces.String("Thu Aug 4 2022"), snap["DATE"])
	assert.Equal(t, interfaces.Bool(true), snap["IS_USER"])

	kind, ok := KindOf("IS_USER")
	assert.True(t, ok)
	assert.Equal(t, interfaces.BoolValue, kind)
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	r := NewUnknown()
	c := r.Clone()
	require.NoError(t, c.SetByName("BRAND", interfaces.String("google")))

	assert.Equal(t, Unknown, r.Build().Brand)
	assert.Equal(t, "google", c.Build().Brand)
}

func TestRecord_ConcurrentAccess(t *testing.T) {
	r := NewUnknown()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = r.SetByName("MODEL", interfaces.String("Pixel XL"))
			} else {
				_ = r.Snapshot()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, "Pixel XL", r.Build().Model)
}

func TestDiff(t *testing.T) {
	r := NewUnknown()
	before := r.Snapshot()

	require.NoError(t, r.SetByName("MODEL", interfaces.String("Pixel XL")))
	require.NoError(t, r.SetByName("BRAND", interfaces.String("google")))
	require.NoError(t, r.SetByName("IS_USER", interfaces.Bool(true)))

	changes := Diff(before, r.Snapshot())
	require.Len(t, changes, 2)
	assert.Equal(t, "BRAND", changes[0].Name)
	assert.Equal(t, Unknown, changes[0].Old.Str())
	assert.Equal(t, "google", changes[0].New.Str())
	assert.Equal(t, "MODEL", changes[1].Name)

	assert.Empty(t, Diff(before, before))

	partial := Diff(map[string]interfaces.Value{"A": interfaces.String("x")}, map[string]interfaces.Value{"B": interfaces.Bool(false)})
	require.Len(t, partial, 2)
	assert.Equal(t, "A", partial[0].Name)
	assert.Equal(t, "B", partial[1].Name)
	assert.Equal(t, "false", partial[1].New.Str())
}
