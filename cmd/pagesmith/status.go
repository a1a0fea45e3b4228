package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type statusOptions struct {
	diff      bool
	revisions bool
	restore   int64
}

func newStatusCmd(app *AppContext) *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarise the page and its unsaved changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			open := app.Open
			if opts.revisions || opts.restore > 0 {
				open = app.OpenForRecovery
			}
			ctx, s, err := open(cmd, "status")
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()

			if opts.restore > 0 {
				if err := s.RestoreRevision(ctx, opts.restore); err != nil {
					return newCommandError("restore revision", fmt.Sprintf("loading revision %d", opts.restore), err,
						"List page revisions with 'pagesmith status --revisions' (sqlite storage only).")
				}
				if err := saveAndLog(ctx, s, "restore revision"); err != nil {
					return err
				}
				fmt.Fprintf(out, "Restored revision %d (%d blocks).\n", opts.restore, s.Builder.Len())
				return nil
			}

			if opts.revisions {
				revs, ok, err := s.Revisions(ctx)
				if err != nil {
					return newCommandError("list revisions", "reading storage", err, "")
				}
				if !ok {
					return newCommandError("list revisions", "reading storage", errors.New("this storage driver keeps no revisions"),
						"Set storage.driver: sqlite in your config to keep revisions.")
				}
				if len(revs) == 0 {
					fmt.Fprintln(out, "No revisions yet.")
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSAVED\tSIZE")
				for _, r := range revs {
					fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, humanize.Time(r.CreatedAt), humanize.Bytes(uint64(r.Size)))
				}
				return w.Flush()
			}

			st, err := s.Status(ctx)
			if err != nil {
				return newCommandError("read status", "comparing with storage", err, "Check that the storage path is readable.")
			}

			fmt.Fprintf(out, "Blocks:   %d (%d hidden)\n", st.Components, st.Hidden)
			fmt.Fprintf(out, "Theme:    %s\n", st.Theme)
			switch {
			case !st.Stored:
				fmt.Fprintln(out, "Storage:  nothing saved yet")
			case st.Stats.Empty():
				fmt.Fprintln(out, "Storage:  up to date")
			default:
				fmt.Fprintf(out, "Storage:  differs from saved page (%s lines)\n", st.Stats)
			}
			if opts.diff && st.Diff != "" {
				fmt.Fprintln(out)
				fmt.Fprint(out, st.Diff)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a unified diff of the saved layout against the current one")
	cmd.Flags().BoolVar(&opts.revisions, "revisions", false, "List saved revisions")
	cmd.Flags().Int64Var(&opts.restore, "restore", 0, "Restore the page from a revision id and save it")
	return cmd
}
