package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
	"github.com/alexisbeaulieu97/pagesmith/internal/config"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
)

// AppContext resolves configuration and opens sessions for commands.
type AppContext struct {
	flags *rootFlags
}

func newAppContext(flags *rootFlags) *AppContext {
	return &AppContext{flags: flags}
}

// Config loads the effective configuration, honouring --config and --verbose.
func (a *AppContext) Config() (*config.AppConfig, error) {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return nil, newCommandError("load configuration", a.describeConfig(), err,
			"Fix the reported field or run 'pagesmith config init' to write a fresh file.")
	}
	if a.flags.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// Open loads configuration, tags the command context with a correlation id
// and opens an editing session. Callers must Close the session.
func (a *AppContext) Open(cmd *cobra.Command, name string) (context.Context, *session.Session, error) {
	return a.open(cmd, name, false)
}

// OpenForRecovery opens a session without loading the stored page, so
// revisions stay reachable when the page itself no longer decodes.
func (a *AppContext) OpenForRecovery(cmd *cobra.Command, name string) (context.Context, *session.Session, error) {
	return a.open(cmd, name, true)
}

func (a *AppContext) open(cmd *cobra.Command, name string, skipPage bool) (context.Context, *session.Session, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, uuid.NewString())

	s, err := session.Open(ctx, session.Options{Config: cfg, LogWriter: cmd.ErrOrStderr(), SkipPageRestore: skipPage})
	if err != nil {
		return nil, nil, newCommandError("open the page", "restoring saved state from "+cfg.Storage.Path, err,
			"Check storage.driver and storage.path in your config. On sqlite storage, list revisions with 'pagesmith status --revisions' and recover one with 'pagesmith status --restore <id>'.")
	}
	s.Logger.Debug(ctx, "command started", "command", name)
	return ctx, s, nil
}

func (a *AppContext) describeConfig() string {
	if a.flags.configPath != "" {
		return "reading " + a.flags.configPath
	}
	return "reading the default config"
}

// save persists the session and wraps failures for display.
func save(ctx context.Context, s *session.Session, operation string) error {
	if err := s.Save(ctx); err != nil {
		return newCommandError(operation, "saving the page", err, "Check that the storage path is writable.")
	}
	return nil
}
