package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockCacheStore is a testify mock for port.CacheStore.
type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Save(key string, value any) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockCacheStore) Load(key string, out any) bool {
	args := m.Called(key, out)
	return args.Bool(0)
}

func (m *MockCacheStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheStore) Reset() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
