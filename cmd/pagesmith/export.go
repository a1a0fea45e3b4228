package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
)

type exportOptions struct {
	output        string
	includeHidden bool
	title         string
	description   string
}

func newExportCmd(app *AppContext) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the page as one self-contained HTML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, s, err := app.Open(cmd, "export")
			if err != nil {
				return err
			}
			defer s.Close()

			var buf bytes.Buffer
			if err := s.Export(&buf, opts.sessionOptions(cmd)); err != nil {
				return newCommandError("export", "rendering HTML", err, "")
			}

			if opts.output == "" || opts.output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if dir := filepath.Dir(opts.output); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return newCommandError("export", "creating "+dir, err, "Check directory permissions.")
				}
			}
			if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
				return newCommandError("export", "writing "+opts.output, err, "Check directory permissions.")
			}
			s.Logger.Info(ctx, "page exported", "path", opts.output, "bytes", buf.Len())
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.includeHidden, "include-hidden", false, "Include hidden blocks")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title (default from config)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Meta description (default from config)")
	return cmd
}

// sessionOptions only overrides include_hidden when the flag was given.
func (o *exportOptions) sessionOptions(cmd *cobra.Command) session.ExportOptions {
	out := session.ExportOptions{Title: o.title, Description: o.description}
	if cmd.Flags().Changed("include-hidden") {
		v := o.includeHidden
		out.IncludeHidden = &v
	}
	return out
}
