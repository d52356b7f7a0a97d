package browser

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultMaxAttempts bounds how many times Resolve polls the discovery
	// endpoint while no page target exists yet (a browser still starting
	// up lists no targets at first).
	DefaultMaxAttempts = 5

	// BlankPage is navigated to when a new tab is created without an
	// explicit URL.
	BlankPage = "about:blank"

	retryInterval = 250 * time.Millisecond
)

// Resolver produces the websocket URL of exactly one debuggable target.
//
// The default path polls the discovery endpoint and selects the first
// page-type target, retrying while the target list has no page in it.
// With NewTab set it creates a fresh tab instead and uses its descriptor
// directly, without retrying.
type Resolver struct {
	Host string
	Port int

	// NewTab creates a new tab instead of attaching to an existing page.
	NewTab bool
	// TargetURL is the URL the new tab opens; defaults to BlankPage.
	TargetURL string

	// MaxAttempts overrides DefaultMaxAttempts when positive.
	MaxAttempts int

	limiter *rate.Limiter
}

// Resolve returns the stream URL to connect to.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.NewTab {
		targetURL := r.TargetURL
		if targetURL == "" {
			targetURL = BlankPage
		}
		target, err := CreateTarget(ctx, r.Host, r.Port, targetURL)
		if err != nil {
			return "", err
		}
		return streamURL(target)
	}

	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	if r.limiter == nil {
		r.limiter = rate.NewLimiter(rate.Every(retryInterval), 1)
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := r.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("retry wait: %w", err)
			}
		}

		targets, err := FetchTargets(ctx, r.Host, r.Port)
		if err != nil {
			// Unreachable endpoint is surfaced immediately; only an
			// empty or page-less target list is retried.
			return "", err
		}

		if target := FindPageTarget(targets); target != nil {
			return streamURL(target)
		}
	}

	return "", fmt.Errorf("no page target found after %d attempts", attempts)
}

// streamURL extracts the websocket URL from a descriptor; a descriptor
// without one is a protocol error.
func streamURL(target *Target) (string, error) {
	if target.WebSocketURL == "" {
		return "", fmt.Errorf("target %q has no webSocketDebuggerUrl", target.ID)
	}
	return target.WebSocketURL, nil
}
