// Package cdp implements a client for JSON request/response-plus-event
// protocols carried over a single websocket stream, such as the Chrome
// DevTools Protocol. The client is cooperative: one pump loop reads
// messages, correlates command responses by id, and dispatches events to
// subscribed handlers in registration order. All waiting operations
// (Call, Listen, ListenUntil, WaitFor) are parameterizations of that one
// loop, so they share identical ordering and logging behavior.
package cdp

import (
	"context"

	"github.com/coder/websocket"
)

// Conn defines the interface for a WebSocket connection.
// This abstraction enables testing with scripted connections.
type Conn interface {
	// Read reads a message from the connection.
	// Returns message type, payload, and any error.
	Read(ctx context.Context) (websocket.MessageType, []byte, error)

	// Write writes a message to the connection.
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error

	// Close closes the connection with a status code and reason.
	Close(code websocket.StatusCode, reason string) error
}
