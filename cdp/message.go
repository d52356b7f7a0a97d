package cdp

import (
	"encoding/json"
	"fmt"
)

// Request represents an outgoing protocol command.
type Request struct {
	ID     int64  `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Response represents a command response.
type Response struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// Event represents an unsolicited event notification.
type Event struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Error represents a remote protocol error carried in a response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("cdp error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("cdp error %d: %s", e.Code, e.Message)
}

// message is used internally to determine message type during parsing.
type message struct {
	ID     int64           `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

// parseMessage classifies a raw incoming message.
// Returns (response, nil, nil) for command responses.
// Returns (nil, event, nil) for events.
// Returns (nil, nil, error) for anything unusable: invalid JSON, a message
// with neither id nor method, or an id-bearing message carrying neither
// result nor error. Callers discard the last category rather than failing.
func parseMessage(data []byte) (*Response, *Event, error) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, nil, fmt.Errorf("parse message: %w", err)
	}

	// Messages with an id are responses to commands. Command ids start at 1,
	// so a zero id means the field was absent.
	if msg.ID != 0 {
		if msg.Result == nil && msg.Error == nil {
			return nil, nil, fmt.Errorf("response %d carries neither result nor error", msg.ID)
		}
		return &Response{
			ID:     msg.ID,
			Result: msg.Result,
			Error:  msg.Error,
		}, nil, nil
	}

	// Messages with a method but no id are events.
	if msg.Method != "" {
		return nil, &Event{
			Method: msg.Method,
			Params: msg.Params,
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown message format: %s", string(data))
}
