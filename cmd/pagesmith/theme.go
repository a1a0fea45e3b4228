package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
	"github.com/alexisbeaulieu97/pagesmith/internal/theme"
	"github.com/alexisbeaulieu97/pagesmith/internal/tui/components"
)

func newThemeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Pick and customise the page palette",
	}

	cmd.AddCommand(
		newThemeListCmd(app),
		&cobra.Command{
			Use:   "set <name>",
			Short: "Activate a palette",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runThemeChange(cmd, app, "set the theme", func(s *session.Session) (string, error) {
					if err := s.Theme.SetTheme(args[0]); err != nil {
						return "", err
					}
					return "Theme: " + args[0], nil
				})
			},
		},
		&cobra.Command{
			Use:   "color <key> <hex>",
			Short: "Override one colour of the active palette",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runThemeChange(cmd, app, "set a colour", func(s *session.Session) (string, error) {
					if err := s.Theme.UpdateCustomColor(args[0], args[1]); err != nil {
						return "", err
					}
					return fmt.Sprintf("%s = %s", args[0], args[1]), nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Drop every colour override",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runThemeChange(cmd, app, "reset colours", func(s *session.Session) (string, error) {
					s.Theme.ResetCustomColors()
					return "Colour overrides cleared", nil
				})
			},
		},
		&cobra.Command{
			Use:   "save <name>",
			Short: "Store the active palette, overrides included, under a new name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runThemeChange(cmd, app, "save the theme", func(s *session.Session) (string, error) {
					if err := s.Theme.SaveCustomTheme(args[0]); err != nil {
						return "", err
					}
					return "Saved theme " + args[0], nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a saved palette",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runThemeChange(cmd, app, "delete the theme", func(s *session.Session) (string, error) {
					if !s.Theme.DeleteCustomTheme(args[0]) {
						return "", fmt.Errorf("%q is built in or does not exist", args[0])
					}
					return "Deleted theme " + args[0], nil
				})
			},
		},
		&cobra.Command{
			Use:   "css",
			Short: "Print the active palette as CSS custom properties",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, s, err := app.Open(cmd, "theme.css")
				if err != nil {
					return err
				}
				defer s.Close()
				fmt.Fprintf(cmd.OutOrStdout(), ":root {\n")
				for _, v := range s.Theme.Variables() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s;\n", v.Name, v.Value)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "}\n")
				return nil
			},
		},
	)
	return cmd
}

func newThemeListCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := app.Open(cmd, "theme.list")
			if err != nil {
				return err
			}
			defer s.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tCOLOURS")
			for _, name := range s.Theme.Names() {
				palette, _ := s.Theme.Palette(name)
				kind := "custom"
				if theme.IsBuiltin(name) {
					kind = "built-in"
				}
				label := name
				if name == s.Theme.CurrentTheme() {
					label += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", label, kind, components.Swatch(theme.Keys[:5], palette))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if overrides := s.Theme.CustomColors(); len(overrides) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d colour overrides active; 'pagesmith theme reset' clears them.\n", len(overrides))
			}
			return nil
		},
	}
}

// runThemeChange applies one theme mutation and persists it.
func runThemeChange(cmd *cobra.Command, app *AppContext, operation string, change func(*session.Session) (string, error)) error {
	ctx, s, err := app.Open(cmd, "theme")
	if err != nil {
		return err
	}
	defer s.Close()

	msg, err := change(s)
	if err != nil {
		return newCommandError(operation, cmd.CommandPath(), err, themeSuggestion(err))
	}
	if err := saveTheme(ctx, s, operation); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func saveTheme(ctx context.Context, s *session.Session, operation string) error {
	if err := s.Theme.Save(ctx); err != nil {
		return newCommandError(operation, "saving the theme", err, "Check that the storage path is writable.")
	}
	return nil
}

func themeSuggestion(err error) string {
	switch {
	case errors.Is(err, theme.ErrUnknownTheme):
		return "Run 'pagesmith theme list' to see the available palettes."
	case errors.Is(err, theme.ErrUnknownColorKey):
		return fmt.Sprintf("Colour keys are: %v.", theme.Keys)
	case errors.Is(err, theme.ErrProtectedTheme):
		return "Built-in palettes cannot be overwritten; pick another name."
	default:
		return ""
	}
}
