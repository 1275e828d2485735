package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockVerifier is a testify mock for port.CredentialVerifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(identifier, secret string) bool {
	args := m.Called(identifier, secret)
	return args.Bool(0)
}
