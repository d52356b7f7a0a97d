package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait <event>",
	Short: "Block until one occurrence of an event and print its parameters",
	Example: `  chromewire wait Page.loadEventFired
  chromewire wait Inspector.detached`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client, err := connect(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		if domain := eventDomain(args[0]); domain != "" {
			if _, err := client.Call(ctx, domain+".enable", nil); err != nil {
				return fmt.Errorf("enable %s events: %w", domain, err)
			}
		}

		params, err := client.WaitFor(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, params)
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
}
