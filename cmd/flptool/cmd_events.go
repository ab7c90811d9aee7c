package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flpkit/flp"
	"github.com/flpkit/flp/flpfile"
)

// newEventsCmd creates the "flptool events" subcommand.
func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "Dump the decoded event stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := flp.ParseFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			events := project.Events()
			for i := range events {
				ev := &events[i]
				fmt.Fprintf(w, "%5d  %3d  %-22s %s\n", ev.Index, uint8(ev.ID), ev.ID, describePayload(ev))
			}
			return nil
		},
	}
	return cmd
}

func describePayload(ev *flpfile.Event) string {
	switch ev.Kind {
	case flpfile.KindBool:
		return fmt.Sprintf("bool  %v", ev.Int != 0)
	case flpfile.KindU8, flpfile.KindI8, flpfile.KindU16, flpfile.KindI16, flpfile.KindU32, flpfile.KindI32:
		return fmt.Sprintf("int   %d", ev.Int)
	case flpfile.KindASCII, flpfile.KindText:
		return fmt.Sprintf("text  %q", ev.Text)
	default:
		return fmt.Sprintf("data  %d bytes", len(ev.Data))
	}
}
