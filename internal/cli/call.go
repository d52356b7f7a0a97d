package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var callTimeout time.Duration

var callCmd = &cobra.Command{
	Use:   "call <method> [params-json]",
	Short: "Send one command and print its result",
	Example: `  chromewire call Browser.getVersion
  chromewire call Page.navigate '{"url":"https://example.com"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseParams(args)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), callTimeout)
		defer cancel()

		client, err := connect(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		result, err := client.Call(ctx, args[0], params)
		if err != nil {
			return err
		}

		return printJSON(os.Stdout, result)
	},
}

func init() {
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 30*time.Second, "Command timeout")
	rootCmd.AddCommand(callCmd)
}

// parseParams validates the optional params argument and returns it as a
// raw payload, or nil when absent.
func parseParams(args []string) (any, error) {
	if len(args) < 2 {
		return nil, nil
	}
	raw := json.RawMessage(args[1])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("params is not valid JSON: %s", args[1])
	}
	return raw, nil
}

// printJSON writes a payload indented, tolerating empty results.
func printJSON(w io.Writer, payload json.RawMessage) error {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	var buf any
	if err := json.Unmarshal(payload, &buf); err != nil {
		return fmt.Errorf("parse result: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buf)
}
