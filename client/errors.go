package client

import (
	"errors"
	"fmt"
)

// ErrorCode represents the type of error that occurred.
type ErrorCode int

const (
	// ErrUnknown is an unknown error.
	ErrUnknown ErrorCode = iota
	// ErrNetwork is returned when the request could not be completed at the
	// transport level, including context cancellation.
	ErrNetwork
	// ErrNotFound is returned when a paste doesn't exist.
	ErrNotFound
	// ErrUnauthorized is returned when the modification token was rejected.
	ErrUnauthorized
	// ErrMalformed is returned when a successful response body could not be decoded.
	ErrMalformed
	// ErrServer is returned for any other non-success status.
	ErrServer
	// ErrInvalidArgument is returned for arguments rejected before sending.
	ErrInvalidArgument
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNetwork:
		return "network"
	case ErrNotFound:
		return "not found"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrMalformed:
		return "malformed response"
	case ErrServer:
		return "server"
	case ErrInvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

// Error represents an error from the pasty API.
type Error struct {
	Code ErrorCode
	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int
	// Body is the raw response body for non-success statuses.
	Body    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pasty: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("pasty: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigError is returned by New when the client configuration is invalid.
type ConfigError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pasty: invalid base url %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("pasty: invalid base url %q: %s", e.URL, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsNotFound returns true if the error indicates the paste was not found.
func IsNotFound(err error) bool {
	return hasCode(err, ErrNotFound)
}

// IsUnauthorized returns true if the error indicates the modification token
// was rejected.
func IsUnauthorized(err error) bool {
	return hasCode(err, ErrUnauthorized)
}

// IsNetwork returns true if the error happened at the transport level.
func IsNetwork(err error) bool {
	return hasCode(err, ErrNetwork)
}

// IsMalformed returns true if the response body could not be decoded.
func IsMalformed(err error) bool {
	return hasCode(err, ErrMalformed)
}

// IsServer returns true for unexpected non-success statuses.
func IsServer(err error) bool {
	return hasCode(err, ErrServer)
}

// IsConfig returns true if the error is a *ConfigError.
func IsConfig(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
