package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen <event>...",
	Short: "Stream matching events until interrupted",
	Example: `  chromewire listen Page.loadEventFired
  chromewire listen Network.requestWillBeSent Network.responseReceived`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client, err := connect(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		// Most event domains stay silent until enabled, e.g. Page.enable.
		for _, method := range args {
			if domain := eventDomain(method); domain != "" {
				if _, err := client.Call(ctx, domain+".enable", nil); err != nil {
					return fmt.Errorf("enable %s events: %w", domain, err)
				}
			}
		}

		enc := json.NewEncoder(os.Stdout)
		for _, method := range args {
			method := method
			client.On(method, func(params json.RawMessage) error {
				return enc.Encode(map[string]any{
					"method": method,
					"params": params,
				})
			})
		}

		err = client.Listen(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

// eventDomain returns the domain part of a dotted event name, or "" when
// the name has no domain.
func eventDomain(method string) string {
	for i, r := range method {
		if r == '.' {
			return method[:i]
		}
	}
	return ""
}
