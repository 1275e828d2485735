package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoMatchingEntry    = errors.New("no indian entry matches this invoice number")
	ErrInvalidEntityType  = errors.New("invalid business entity type")
	ErrInvalidCondition   = errors.New("invalid rate condition")
	ErrBackupFormat       = errors.New("backup document is malformed")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// RemoteError marks a failed call against the remote spreadsheet store:
// transport failure, malformed response, or a non-success status. Remote
// failures are retryable from the caller's perspective and never fatal.
type RemoteError struct {
	Action string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote action %q: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("remote action %q failed", e.Action)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// NewRemoteError wraps err as a RemoteError for the given action.
func NewRemoteError(action string, err error) *RemoteError {
	return &RemoteError{Action: action, Err: err}
}

// IsRemote reports whether err is (or wraps) a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
