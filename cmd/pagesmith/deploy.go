package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDeployCmd(app *AppContext) *cobra.Command {
	opts := &exportOptions{}
	var message string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Export the page and commit it to the deploy repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, s, err := app.Open(cmd, "deploy")
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Publish(ctx, message, opts.sessionOptions(cmd))
			if err != nil {
				return newCommandError("deploy", "committing to "+s.Config().Deploy.Repo, err,
					"Check deploy.repo in your config points at a writable directory.")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deployment: %s\n", res.DeploymentID)
			fmt.Fprintf(out, "Commit:     %s\n", res.Commit)
			fmt.Fprintf(out, "URL:        %s\n", res.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Note added to the commit message")
	cmd.Flags().BoolVar(&opts.includeHidden, "include-hidden", false, "Include hidden blocks")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title (default from config)")
	cmd.AddCommand(newDeployHistoryCmd(app))
	return cmd
}

func newDeployHistoryCmd(app *AppContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous deployments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, s, err := app.Open(cmd, "deploy.history")
			if err != nil {
				return err
			}
			defer s.Close()

			deployments, err := s.Deploy.History(ctx, limit)
			if err != nil {
				return newCommandError("list deployments", "reading "+s.Config().Deploy.Repo, err, "")
			}
			if len(deployments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No deployments yet. Run 'pagesmith deploy'.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DEPLOYMENT\tCOMMIT\tWHEN\tMESSAGE")
			for _, d := range deployments {
				fmt.Fprintf(w, "%s\t%.8s\t%s\t%s\n", d.DeploymentID, d.Commit, humanize.Time(d.When), d.Message)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum entries (0 for all)")
	return cmd
}
