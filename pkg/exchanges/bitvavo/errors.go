package bitvavo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by New when the key or secret cannot
	// be used for signing. No request is ever sent with such credentials.
	ErrInvalidCredentials = errors.New("bitvavo: invalid credentials")
	// ErrClientClosed is returned by calls on a credentialed client after Close.
	ErrClientClosed = errors.New("bitvavo: client closed")
	// ErrNoResult is returned when a filtered list unexpectedly comes back empty.
	ErrNoResult = errors.New("bitvavo: no result")
)

// TransportError is a failure to complete the HTTP round trip.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bitvavo: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CodecError is malformed or unexpected JSON, on the success path or in an
// error body. The wrapped error names the offending field or value.
type CodecError struct {
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("bitvavo: decode: %v", e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// ExchangeError is a request the exchange understood and rejected.
type ExchangeError struct {
	Status  int
	Code    int64
	Message string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("bitvavo: %d: %s", e.Code, e.Message)
}

// ValidationError is an outbound request rejected before it was sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bitvavo: invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsExchangeError reports whether err carries an exchange error with the given code.
func IsExchangeError(err error, code int64) bool {
	var ex *ExchangeError
	return errors.As(err, &ex) && ex.Code == code
}
