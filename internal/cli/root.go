// Package cli implements the chromewire command surface.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chromewire/chromewire"
)

// Version is set at build time.
var Version = "dev"

var (
	host       string
	port       int
	newTab     bool
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "chromewire",
	Short:         "DevTools protocol client",
	Long:          "chromewire issues commands and watches events on a browser's remote-debugging endpoint.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", chromewire.DefaultHost, "Discovery endpoint host")
	rootCmd.PersistentFlags().IntVar(&port, "port", chromewire.DefaultPort, "Discovery endpoint port")
	rootCmd.PersistentFlags().BoolVar(&newTab, "new-tab", false, "Create a new tab instead of attaching to an existing page")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log raw wire traffic to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (default is text)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger returns the wire logger: disabled unless --verbose, console
// format when stderr is a terminal, JSON lines otherwise.
func newLogger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
