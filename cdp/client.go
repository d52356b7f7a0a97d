package cdp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
)

// Handler receives a matching event's parameters. A non-nil return fails
// the operation that was pumping when the event arrived.
type Handler func(params json.RawMessage) error

// Matcher reports whether an event satisfies a WaitForMatch condition.
type Matcher func(method string, params json.RawMessage) bool

// pendingCall is the settle slot for one in-flight command.
type pendingCall struct {
	settled bool
	result  json.RawMessage
	err     error
}

// watcher is a one-shot condition installed by WaitFor/WaitForMatch.
// Watchers observe events without consuming them; registered handlers
// still fire for everything seen while waiting.
type watcher struct {
	match  Matcher
	done   bool
	params json.RawMessage
}

// Client is a protocol client over a single connection.
//
// A Client is cooperative, not concurrent: the pump loop runs on the
// goroutine that invoked the current operation, and the correlation table
// and event registry are mutated only from within it. Handlers may
// reenter the client (for example call Call), which recursively pumps the
// same connection and unwinds on its own stop condition. Do not use one
// Client from multiple goroutines.
type Client struct {
	conn Conn
	log  zerolog.Logger

	nextID   int64
	pending  map[int64]*pendingCall
	handlers map[string][]Handler
	watchers []*watcher

	closed  bool
	pumpErr error // terminal transport error, sticky
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for raw wire traffic.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new client with the given connection.
func NewClient(conn Conn, opts ...Option) *Client {
	c := &Client{
		conn:     conn,
		log:      zerolog.Nop(),
		pending:  make(map[int64]*pendingCall),
		handlers: make(map[string][]Handler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to a protocol endpoint and returns a new client.
func Dial(ctx context.Context, wsURL string, opts ...Option) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to endpoint: %w", err)
	}
	return NewClient(conn, opts...), nil
}

// Call sends a command and pumps until its response arrives, returning
// the result payload or the remote error. Events and unrelated responses
// received in the meantime are processed normally, so handler side
// effects are observable during a call. Bound the wait via ctx.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	c.nextID++
	id := c.nextID

	req := Request{ID: id, Method: method, Params: params}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	call := &pendingCall{}
	c.pending[id] = call

	c.log.Info().Msg("SEND ► " + string(data))
	if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
		delete(c.pending, id)
		return nil, fmt.Errorf("send request: %w", err)
	}

	if err := c.pumpUntil(ctx, func() bool { return call.settled }); err != nil {
		delete(c.pending, id)
		return nil, err
	}
	if call.err != nil {
		return nil, call.err
	}
	return call.result, nil
}

// On registers a handler for events matching the given method. Multiple
// handlers may share a method; each incoming event invokes all of them in
// registration order. Handlers persist for the client's lifetime and fire
// whenever any operation is pumping.
func (c *Client) On(method string, handler Handler) {
	c.handlers[method] = append(c.handlers[method], handler)
}

// Listen pumps indefinitely. It returns only on a handler error, a
// transport failure, or ctx cancellation.
func (c *Client) Listen(ctx context.Context) error {
	return c.pumpUntil(ctx, func() bool { return false })
}

// ListenUntil pumps until pred returns true. The predicate is evaluated
// after every fully processed message, never mid-message.
func (c *Client) ListenUntil(ctx context.Context, pred func() bool) error {
	return c.pumpUntil(ctx, pred)
}

// WaitFor pumps until the next event with the given method arrives and
// returns its parameters. Responses and differently-named events seen in
// the meantime are processed normally.
func (c *Client) WaitFor(ctx context.Context, method string) (json.RawMessage, error) {
	return c.WaitForMatch(ctx, func(m string, _ json.RawMessage) bool {
		return m == method
	})
}

// WaitForMatch pumps until an event satisfies match and returns that
// event's parameters.
func (c *Client) WaitForMatch(ctx context.Context, match Matcher) (json.RawMessage, error) {
	w := &watcher{match: match}
	c.watchers = append(c.watchers, w)
	defer c.removeWatcher(w)

	if err := c.pumpUntil(ctx, func() bool { return w.done }); err != nil {
		return nil, err
	}
	return w.params, nil
}

// Close closes the connection. Safe to call more than once.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close(websocket.StatusNormalClosure, "client closing")
}

// pumpUntil is the single waiting primitive: read one message, classify
// it, dispatch it, and stop once the predicate holds after a processed
// message. Every public waiting operation runs through here so that all
// of them observe identical ordering and logging.
func (c *Client) pumpUntil(ctx context.Context, stop func() bool) error {
	if c.pumpErr != nil {
		return c.pumpErr
	}

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return c.failPending(err)
		}

		c.log.Info().Msg("◀ RECV " + string(data))

		resp, evt, err := parseMessage(data)
		if err != nil {
			// Protocol noise, not application failure.
			c.log.Debug().Err(err).Msg("discarding message")
			continue
		}

		switch {
		case resp != nil:
			call, ok := c.pending[resp.ID]
			if !ok {
				// Stale, duplicate, or foreign id.
				continue
			}
			delete(c.pending, resp.ID)
			call.settled = true
			if resp.Error != nil {
				call.err = resp.Error
			} else {
				call.result = resp.Result
			}

		case evt != nil:
			for _, handler := range c.handlers[evt.Method] {
				if err := handler(evt.Params); err != nil {
					return &HandlerError{Method: evt.Method, Err: err}
				}
			}
			for _, w := range c.watchers {
				if !w.done && w.match(evt.Method, evt.Params) {
					w.done = true
					w.params = evt.Params
				}
			}
		}

		if stop() {
			return nil
		}
	}
}

// failPending fails every outstanding call with the transport error and
// marks the client unusable for further pumping.
func (c *Client) failPending(cause error) error {
	err := fmt.Errorf("%w: %w", ErrClosed, cause)
	c.pumpErr = err
	for id, call := range c.pending {
		call.settled = true
		call.err = err
		delete(c.pending, id)
	}
	return err
}

func (c *Client) removeWatcher(w *watcher) {
	for i, cand := range c.watchers {
		if cand == w {
			c.watchers = append(c.watchers[:i], c.watchers[i+1:]...)
			return
		}
	}
}
