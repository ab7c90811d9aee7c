package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root flptool command with all subcommands
// attached.
func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "flptool",
		Short:         "Inspect and re-save FL Studio project files",
		Long:          "flptool decodes FL Studio .flp/.fst files into their event stream,\nprints project metadata and re-serializes them with backup rotation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newInfoCmd(),
		newEventsCmd(),
		newResaveCmd(),
		newBundleCmd(),
	)

	return cmd
}
