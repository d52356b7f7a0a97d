package cli

import (
	"context"

	"github.com/chromewire/chromewire"
	"github.com/chromewire/chromewire/cdp"
)

// connect dials the endpoint selected by the persistent flags.
func connect(ctx context.Context) (*cdp.Client, error) {
	logger := newLogger()
	return chromewire.Connect(ctx, chromewire.Options{
		Host:   host,
		Port:   port,
		NewTab: newTab,
		Logger: &logger,
	})
}
