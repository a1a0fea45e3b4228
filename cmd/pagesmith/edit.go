package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/pagesmith/internal/tui/editor"
)

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newEditCmd(app *AppContext) *cobra.Command {
	var ascii bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive page editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return newCommandError("open the editor", "checking the terminal", errors.New("stdin and stdout must be a terminal"),
					"Use 'pagesmith page' commands or 'pagesmith apply' in scripts and pipes.")
			}

			ctx, s, err := app.Open(cmd, "edit")
			if err != nil {
				return err
			}
			defer s.Close()

			var opts []editor.Option
			if ascii {
				opts = append(opts, editor.WithASCII())
			}
			program := tea.NewProgram(editor.NewModel(ctx, s, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				s.Logger.Error(ctx, "editor failed", "error", err)
				return fmt.Errorf("failed to run editor: %w", err)
			}

			if s.Builder.State().IsDirty {
				fmt.Fprintln(cmd.ErrOrStderr(), "Closed with unsaved changes; they were discarded.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ascii, "ascii", false, "Use plain-text icons")
	return cmd
}
