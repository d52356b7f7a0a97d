package cdp

import (
	"errors"
	"fmt"
)

// ErrClosed indicates the underlying stream ended or failed. Errors
// returned from pump operations after a transport failure match this
// sentinel via errors.Is, and also wrap the underlying cause.
var ErrClosed = errors.New("connection closed")

// HandlerError wraps an error returned by an event handler. Handler
// failures are fatal to the operation that was pumping when the event
// arrived; they are never swallowed.
type HandlerError struct {
	Method string
	Err    error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler for %s: %v", e.Method, e.Err)
}

// Unwrap returns the handler's original error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
