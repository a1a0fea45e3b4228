package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
	"github.com/alexisbeaulieu97/pagesmith/internal/config"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
)

const refHelp = `Blocks are addressed by id or by "@N", a zero-based position where
negative numbers count from the end.`

func newPageCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Show and edit the page",
		Long:  "Show and edit the page. Every edit is saved immediately.\n\n" + refHelp,
	}

	cmd.AddCommand(
		newPageShowCmd(app),
		newPageAddCmd(app),
		newPageSetCmd(app),
		newPageTargetCmd(app, "delete", "Remove a block", config.OpDelete),
		newPageMoveCmd(app),
		newPageTargetCmd(app, "duplicate", "Append a copy of a block", config.OpDuplicate),
		newPageTargetCmd(app, "hide", "Hide a block from the page and export", config.OpHide),
		newPageTargetCmd(app, "unhide", "Show a hidden block again", config.OpShow),
		newPageClearCmd(app),
		newPageLoadTemplateCmd(app),
	)
	return cmd
}

type pageShowOptions struct {
	jsonOutput bool
}

func newPageShowCmd(app *AppContext) *cobra.Command {
	opts := &pageShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the page outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := app.Open(cmd, "page.show")
			if err != nil {
				return err
			}
			defer s.Close()

			list := s.Builder.Components()
			if opts.jsonOutput {
				data, err := page.MarshalList(list)
				if err != nil {
					return err
				}
				var out bytes.Buffer
				if err := json.Indent(&out, data, "", "  "); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.String())
				return nil
			}
			return renderOutline(cmd, list, s.Builder.State().SelectedID)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the stored JSON layout")
	return cmd
}

func renderOutline(cmd *cobra.Command, list []page.PlacedComponent, selected string) error {
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "The page is empty. Add a block with 'pagesmith page add <type>' or start from 'pagesmith templates'.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tTYPE\tVISIBLE\tSUMMARY")
	for i, c := range list {
		visible := "yes"
		if !c.IsVisible {
			visible = "no"
		}
		id := c.ID
		if id == selected {
			id += " *"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, id, c.Type, visible, c.Summary())
	}
	return w.Flush()
}

type pageAddOptions struct {
	hidden bool
}

func newPageAddCmd(app *AppContext) *cobra.Command {
	opts := &pageAddOptions{}

	cmd := &cobra.Command{
		Use:   "add <type> [field=value...]",
		Short: "Append a block with default content",
		Long: `Append a block. Fields use dotted paths into the block's properties,
for example: pagesmith page add hero title="Jane Doe" socialLinks.github=https://github.com/jane`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			op := config.Operation{Op: config.OpAdd, Add: &config.AddOp{Type: args[0], Values: values, Hidden: opts.hidden}}
			return runPageOps(cmd, app, "add a block", op)
		},
	}

	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "Add the block hidden")
	return cmd
}

func newPageSetCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <ref> field=value...",
		Short: "Change fields of a block",
		Long:  "Change fields of a block using dotted paths, e.g. plans.0.price=49.\n\n" + refHelp,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			op := config.Operation{Op: config.OpSet, ID: args[0], Update: &config.UpdateOp{Values: values}}
			return runPageOps(cmd, app, "update a block", op)
		},
	}
}

func newPageTargetCmd(app *AppContext, use, short string, kind config.OpKind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <ref>",
		Short: short,
		Long:  short + ".\n\n" + refHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPageOps(cmd, app, use+" a block", config.Operation{Op: kind, ID: args[0]})
		},
	}
}

func newPageMoveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move the block at one position to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return newCommandError("move a block", "reading <from>", err, "Positions are zero-based integers; see 'pagesmith page show'.")
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return newCommandError("move a block", "reading <to>", err, "Positions are zero-based integers; see 'pagesmith page show'.")
			}
			op := config.Operation{Op: config.OpMove, Move: &config.MoveOp{From: &from, To: &to}}
			return runPageOps(cmd, app, "move a block", op)
		},
	}
}

func newPageClearCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPageOps(cmd, app, "clear the page", config.Operation{Op: config.OpClear})
		},
	}
}

func newPageLoadTemplateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "load-template <id>",
		Short: "Replace the page with a starter template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := config.Operation{Op: config.OpLoadTemplate, LoadTemplate: &config.TemplateOp{Template: args[0]}}
			return runPageOps(cmd, app, "load a template", op)
		},
	}
}

// runPageOps applies ops in one session, saves, and reports each step.
func runPageOps(cmd *cobra.Command, app *AppContext, operation string, ops ...config.Operation) error {
	ctx, s, err := app.Open(cmd, "page")
	if err != nil {
		return err
	}
	defer s.Close()

	runner := s.NewRunner()
	for _, op := range ops {
		step, _, err := runner.Run(ctx, op)
		if err != nil {
			return newCommandError(operation, describeOp(op), err, suggestFor(err))
		}
		printStep(cmd, step)
	}
	return saveAndLog(ctx, s, operation)
}

func saveAndLog(ctx context.Context, s *session.Session, operation string) error {
	if err := save(ctx, s, operation); err != nil {
		return err
	}
	s.Logger.Info(ctx, "page saved", "blocks", s.Builder.Len())
	return nil
}

func printStep(cmd *cobra.Command, step session.StepResult) {
	if step.Target != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", step.Op, step.Detail, step.Target)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", step.Op, step.Detail)
}

func describeOp(op config.Operation) string {
	if op.ID != "" {
		return fmt.Sprintf("%s %s", op.Op, op.ID)
	}
	return string(op.Op)
}

func parseAssignments(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, newCommandError("parse fields", fmt.Sprintf("reading %q", arg), fmt.Errorf("expected field=value"),
				`Quote values with spaces, e.g. title="Jane Doe".`)
		}
		out[k] = v
	}
	return out, nil
}
