package port

import (
	"context"
	"encoding/json"
)

// RemoteGateway speaks the action-based protocol of the remote spreadsheet
// store: one endpoint, request body {action, payload}, response body
// {status, data?, message?}. Implementations return the raw data document on
// success and a *domain.RemoteError on any failure. The gateway never
// mutates local state; callers own all state changes.
type RemoteGateway interface {
	Request(ctx context.Context, action string, payload any) (json.RawMessage, error)
}
