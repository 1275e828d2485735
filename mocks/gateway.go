package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock for port.RemoteGateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Request(ctx context.Context, action string, payload any) (json.RawMessage, error) {
	args := m.Called(ctx, action, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
