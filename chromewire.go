// Package chromewire connects to a browser's remote-debugging endpoint
// and returns a protocol client for it. It composes target discovery
// (package browser) with the wire client (package cdp).
package chromewire

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chromewire/chromewire/browser"
	"github.com/chromewire/chromewire/cdp"
)

// Defaults for the browser's remote-debugging endpoint.
const (
	DefaultHost = "localhost"
	DefaultPort = 9222
)

// Options configures a connection. The zero value attaches to the first
// page target on localhost:9222 with wire logging disabled.
type Options struct {
	Host string
	Port int

	// NewTab creates a fresh tab instead of attaching to an existing page.
	NewTab bool
	// TargetURL is the URL a new tab opens; ignored unless NewTab is set.
	TargetURL string

	// Logger receives raw wire traffic. Nil disables wire logging.
	Logger *zerolog.Logger
}

// Connect resolves a target and dials its websocket endpoint.
// One client corresponds to one connection; close it when done.
func Connect(ctx context.Context, opts Options) (*cdp.Client, error) {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}

	resolver := &browser.Resolver{
		Host:      opts.Host,
		Port:      opts.Port,
		NewTab:    opts.NewTab,
		TargetURL: opts.TargetURL,
	}
	wsURL, err := resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	client, err := cdp.Dial(ctx, wsURL, cdp.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	return client, nil
}
