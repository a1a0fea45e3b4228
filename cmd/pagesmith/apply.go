package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/config"
)

func newApplyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <script.yaml>",
		Short: "Run an edit script against the page",
		Long: `Run a YAML edit script. Operations run in order in one session; the first
failure stops the run and nothing is saved. Example:

  version: "1.0"
  operations:
    - op: load_template
      template: portfolio-basic
    - op: set
      id: "@0"
      values:
        title: Jane Doe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := config.ParseScript(args[0])
			if err != nil {
				return newCommandError("apply script", "parsing "+args[0], err, "Fix the reported line and run the script again.")
			}

			ctx, s, err := app.Open(cmd, "apply")
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.Apply(ctx, script)
			for _, step := range report.Steps {
				printStep(cmd, step)
			}
			if err != nil {
				return newCommandError("apply script", args[0], err, suggestFor(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%d operations applied, %d blocks on the page", len(report.Steps), s.Builder.Len())
			if report.Saved {
				fmt.Fprintln(out, ", saved.")
			} else {
				fmt.Fprintln(out, ", not saved (save: false).")
			}
			return nil
		},
	}

	return cmd
}
