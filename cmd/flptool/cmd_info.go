package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"github.com/flpkit/flp"
)

// newInfoCmd creates the "flptool info" subcommand.
func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print project metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			project, err := flp.ParseFile(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "file:      %s (%s)\n", args[0], humanize.Bytes(uint64(st.Size())))
			fmt.Fprintf(w, "format:    %s\n", project.Format())
			if v, err := project.Version(); err == nil {
				fmt.Fprintf(w, "saved by:  FL Studio %s\n", v)
			}
			if name, ok := project.Licensee(); ok && name != "" {
				fmt.Fprintf(w, "licensee:  %s\n", name)
			}
			if title, ok := project.Title(); ok && title != "" {
				fmt.Fprintf(w, "title:     %s\n", title)
			}
			if artists, ok := project.Artists(); ok && artists != "" {
				fmt.Fprintf(w, "artists:   %s\n", artists)
			}
			if genre, ok := project.Genre(); ok && genre != "" {
				fmt.Fprintf(w, "genre:     %s\n", genre)
			}
			if bpm, ok := project.Tempo(); ok {
				fmt.Fprintf(w, "tempo:     %.3f BPM\n", bpm)
			}
			fmt.Fprintf(w, "ppq:       %d\n", project.PPQ())
			if created, err := project.CreatedOn(); err == nil {
				fmt.Fprintf(w, "created:   %s\n", created.Format("2006-01-02"))
			}
			if spent, err := project.TimeSpent(); err == nil {
				fmt.Fprintf(w, "worked on: %s\n", durafmt.Parse(spent).LimitFirstN(2))
			}
			fmt.Fprintf(w, "channels:  %d\n", project.ChannelCount())
			fmt.Fprintf(w, "patterns:  %d\n", len(project.Patterns().All()))
			fmt.Fprintf(w, "inserts:   %d\n", len(project.Mixer().Inserts()))
			return nil
		},
	}
	return cmd
}
