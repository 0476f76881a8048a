package interfaces

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Kinds(t *testing.T) {
	s := String("Pixel 7 Pro")
	assert.Equal(t, StringValue, s.Kind())
	assert.Equal(t, "Pixel 7 Pro", s.Str())
	_, isBool := s.Bool()
	assert.False(t, isBool)

	b := Bool(true)
	assert.Equal(t, BoolValue, b.Kind())
	assert.Equal(t, "true", b.Str())
	v, isBool := b.Bool()
	assert.True(t, isBool)
	assert.True(t, v)

	e := Enum("user")
	assert.Equal(t, EnumValue, e.Kind())
	assert.Equal(t, "user", e.String())

	assert.True(t, String("user").Equal(String("user")))
	assert.False(t, String("user").Equal(Enum("user")))
}

func TestValue_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Value{
		"IS_USER": Bool(true),
		"MODEL":   String("Pixel XL"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"IS_USER":"true","MODEL":"Pixel XL"}`, string(out))
}

func TestRecordSourceLocation_Validate(t *testing.T) {
	tests := []struct {
		uri     string
		wantErr bool
	}{
		{"file:///system/build.prop", false},
		{"s3://props-bucket/devices/cheetah/build.prop?region=eu-west-1", false},
		{"ipfs://localhost:5001", true},
		{"://broken", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			err := RecordSourceLocation(tt.uri).Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidLocationURI))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
