package spoof

import (
	"github.com/ruteri/pixelprops/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockAttributeStore implements interfaces.AttributeStore for testing
type MockAttributeStore struct {
	mock.Mock
}

func (m *MockAttributeStore) Get(name string) (interfaces.Value, error) {
	args := m.Called(name)
	return args.Get(0).(interfaces.Value), args.Error(1)
}

func (m *MockAttributeStore) SetByName(name string, value interfaces.Value) error {
	args := m.Called(name, value)
	return args.Error(0)
}

func (m *MockAttributeStore) BuildDate() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAttributeStore) Snapshot() map[string]interfaces.Value {
	args := m.Called()
	return args.Get(0).(map[string]interfaces.Value)
}
