package models

import "errors"

// TransportError reports a remote call that could not complete
type TransportError struct {
	Detail  string
	Timeout bool
}

// Error implements the error interface for TransportError
func (e *TransportError) Error() string {
	return e.Detail
}

// ErrPermissionDenied is returned when the media library refuses a write
var ErrPermissionDenied = errors.New("media library permission denied")
