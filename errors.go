package stripekit

import (
	"errors"
	"fmt"
)

// TransportError is returned when a request could not be completed, for
// example on a DNS, connection, or TLS failure, or when the context of the
// request was cancelled. A response from Stripe, whatever its status code,
// is never a TransportError.
type TransportError struct {
	Method Method
	URL    string
	Err    error
}

var (
	// ErrMissingSecret is returned when the secret for the Client's current
	// mode is empty. No request is sent when this happens.
	ErrMissingSecret = errors.New("missing secret for mode")

	// ErrEventExists is returned by a Store when a webhook event has already
	// been logged.
	ErrEventExists = errors.New("event exists")
)

func (e *TransportError) Error() string {
	return fmt.Sprintf("stripekit: %s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError reports whether the given error is, or wraps, a
// TransportError.
func IsTransportError(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}
