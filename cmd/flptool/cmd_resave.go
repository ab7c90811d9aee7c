package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/flpkit/flp"
)

// newResaveCmd creates the "flptool resave" subcommand.
func newResaveCmd() *cobra.Command {
	var output string
	var strict bool

	cmd := &cobra.Command{
		Use:   "resave <file>",
		Short: "Decode and re-save a project, rotating a .bak backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			project, err := flp.ParseFile(args[0])
			if err != nil {
				return err
			}

			opts := flp.SaveOptions{Warn: slog.Warn}
			if strict || cfg.Strict {
				opts.Policy = flp.PolicyStrict
			}
			// An empty output falls back to the input path.
			return project.SaveWith(output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (defaults to the input file)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on empty model collections instead of warning")

	return cmd
}
