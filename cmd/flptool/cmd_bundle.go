package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flpkit/flp"
)

// newBundleCmd creates the "flptool bundle" subcommand: it packs a
// project together with the samples its channels reference into a zip
// archive, the way FL's own "export as zipped loop package" does.
func newBundleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "bundle <file>",
		Short: "Pack a project and its referenced samples into a zip",
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

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".zip"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			zw := zip.NewWriter(f)

			if err := addFile(zw, args[0], filepath.Base(args[0])); err != nil {
				return err
			}
			for _, ch := range project.Channels().Channels() {
				if ch.Kind() == flp.ChannelOther {
					continue
				}
				path, ok := ch.SamplePath()
				if !ok || path == "" {
					continue
				}
				resolved := resolveSample(path, cfg.SamplesDir)
				if resolved == "" {
					slog.Warn("sample not found, skipping", "channel", ch.IID(), "path", path)
					continue
				}
				name := filepath.Join("samples", filepath.Base(resolved))
				if err := addFile(zw, resolved, name); err != nil {
					return err
				}
			}
			if err := zw.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "archive path (defaults to <file>.zip)")

	return cmd
}

// resolveSample returns the first existing location for a stored
// sample path: the path itself, or its basename under samplesDir.
func resolveSample(path, samplesDir string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if samplesDir != "" {
		alt := filepath.Join(samplesDir, filepath.Base(path))
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

func addFile(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
