// Package cli provides the command-line interface for the REAPER LuaDoc generator.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "reaper-luadoc",
		Short:         "Generate LuaDoc type definitions from the REAPER API documentation",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newGenerateCommand(&verbose))
	rootCmd.AddCommand(newListCommand(&verbose))
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// newLogger writes text logs to w. Only warnings are shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
