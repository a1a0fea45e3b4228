// Package session wires configuration, storage and the editing stores into
// one unit of work shared by the CLI commands and the terminal editor.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexisbeaulieu97/pagesmith/internal/assets"
	"github.com/alexisbeaulieu97/pagesmith/internal/builder"
	"github.com/alexisbeaulieu97/pagesmith/internal/config"
	"github.com/alexisbeaulieu97/pagesmith/internal/deploy"
	"github.com/alexisbeaulieu97/pagesmith/internal/dnd"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/export"
	"github.com/alexisbeaulieu97/pagesmith/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/pagesmith/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
	"github.com/alexisbeaulieu97/pagesmith/internal/templates"
	"github.com/alexisbeaulieu97/pagesmith/internal/theme"
)

// Drop zones registered on every session's coordinator.
const (
	ZoneTrash     = "trash"
	ZoneDuplicate = "duplicate"
)

// ErrNotPageRevision is returned when a revision id belongs to other data,
// such as the theme.
var ErrNotPageRevision = errors.New("not a page revision")

// Options configures Open.
type Options struct {
	Config *config.AppConfig
	// Logger overrides the logger built from Config.Log.
	Logger ports.Logger
	// LogWriter receives log output when Logger is nil. Defaults to stderr.
	LogWriter io.Writer
	// Storage overrides the backend named by Config.Storage. The session
	// does not close an injected backend.
	Storage     ports.KeyValueStore
	Clock       func() time.Time
	IDGenerator func() string
	// SkipPageRestore opens with an empty page instead of loading the stored
	// one, so a page that no longer decodes can still be replaced from a
	// revision. The theme is restored either way.
	SkipPageRestore bool
}

// Session is an open editing session.
type Session struct {
	cfg *config.AppConfig

	Logger  ports.Logger
	Events  *events.LoggingPublisher
	Storage ports.KeyValueStore
	Builder *builder.Store
	Theme   *theme.Store
	DnD     *dnd.Coordinator
	Assets  *assets.Store
	Deploy  *deploy.Deployer

	now         func() time.Time
	newID       func() string
	ownsStorage bool
}

// Open builds a session and restores persisted page and theme state.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default("")
	}

	log := opts.Logger
	if log == nil {
		zl, err := logger.New(logger.Options{
			Level:         cfg.Log.Level,
			HumanReadable: cfg.Log.Human,
			Writer:        opts.LogWriter,
			Component:     "pagesmith",
		})
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
		log = zl
	}

	kv := opts.Storage
	owns := false
	if kv == nil {
		var err error
		kv, err = storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		owns = true
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	newID := opts.IDGenerator
	if newID == nil {
		newID = builder.NewComponentID
	}

	publisher := events.NewLoggingPublisher(log)

	builderOpts := []builder.Option{
		builder.WithLogger(log.With("component", "builder")),
		builder.WithPublisher(publisher),
		builder.WithStorage(kv),
		builder.WithHistoryLimit(cfg.History.Limit),
		builder.WithClock(now),
		builder.WithIDGenerator(newID),
	}
	store := builder.NewStore(builderOpts...)

	s := &Session{
		cfg:     cfg,
		Logger:  log,
		Events:  publisher,
		Storage: kv,
		Builder: store,
		Theme: theme.NewStore(
			theme.WithStorage(kv),
			theme.WithPublisher(publisher),
			theme.WithLogger(log.With("component", "theme")),
		),
		DnD: dnd.NewCoordinator(store,
			dnd.WithLogger(log.With("component", "dnd")),
			dnd.WithPublisher(publisher),
		),
		Assets: assets.NewStore(cfg.Uploads.Dir,
			assets.WithMaxBytes(cfg.Uploads.MaxBytes),
			assets.WithClock(now),
			assets.WithLogger(log.With("component", "assets")),
		),
		Deploy: deploy.New(deploy.Config{
			Repo:    cfg.Deploy.Repo,
			BaseURL: cfg.Deploy.BaseURL,
			Author:  cfg.Deploy.Author,
			Email:   cfg.Deploy.Email,
			Branch:  cfg.Deploy.Branch,
		}, deploy.WithClock(now), deploy.WithLogger(log.With("component", "deploy"))),
		now:         now,
		newID:       newID,
		ownsStorage: owns,
	}
	s.registerZones()

	if !opts.SkipPageRestore {
		if _, err := s.Builder.Restore(ctx); err != nil {
			s.Close()
			return nil, err
		}
	}
	restored, err := s.Theme.Restore(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	if !restored && cfg.Theme.Default != "" && cfg.Theme.Default != s.Theme.CurrentTheme() {
		if err := s.Theme.SetTheme(cfg.Theme.Default); err != nil {
			log.Warn(ctx, "configured default theme is unknown", "theme", cfg.Theme.Default)
		}
	}

	log.Debug(ctx, "session opened",
		"storage", cfg.Storage.Driver,
		"components", s.Builder.Len(),
		"theme", s.Theme.CurrentTheme(),
	)
	return s, nil
}

// Config returns the effective configuration.
func (s *Session) Config() *config.AppConfig { return s.cfg }

// Close releases the storage backend when the session opened it.
func (s *Session) Close() error {
	if s == nil || !s.ownsStorage || s.Storage == nil {
		return nil
	}
	return s.Storage.Close()
}

// Save persists the page and the theme.
func (s *Session) Save(ctx context.Context) error {
	if err := s.Builder.Save(ctx); err != nil {
		return err
	}
	return s.Theme.Save(ctx)
}

// LoadTemplate replaces the page with a starter template.
func (s *Session) LoadTemplate(id string) error {
	components, err := templates.Build(id, s.newID)
	if err != nil {
		return err
	}
	s.Builder.LoadPage(components)
	s.Builder.MarkDirty()
	return nil
}

// ExportOptions tunes Export.
type ExportOptions struct {
	IncludeHidden *bool
	Title         string
	Description   string
}

// Export renders the current page with the active theme.
func (s *Session) Export(w io.Writer, opts ExportOptions) error {
	includeHidden := s.cfg.Export.IncludeHidden
	if opts.IncludeHidden != nil {
		includeHidden = *opts.IncludeHidden
	}
	meta := export.Metadata{
		Title:       firstNonEmpty(opts.Title, s.cfg.Export.Title),
		Description: firstNonEmpty(opts.Description, s.cfg.Export.Description),
		Lang:        s.cfg.Export.Lang,
	}
	return export.Render(w, s.Builder.Components(), meta, export.Options{
		IncludeHidden: includeHidden,
		Theme:         s.Theme.Variables(),
	})
}

// Publish exports the page and commits it to the deploy repository.
func (s *Session) Publish(ctx context.Context, note string, opts ExportOptions) (deploy.Result, error) {
	var buf bytes.Buffer
	if err := s.Export(&buf, opts); err != nil {
		return deploy.Result{}, fmt.Errorf("export: %w", err)
	}
	return s.Deploy.Deploy(ctx, buf.Bytes(), note)
}

// Upload stores an image file and returns its public URL.
func (s *Session) Upload(ctx context.Context, path string) (assets.Result, error) {
	return s.Assets.SaveFile(ctx, path)
}

// Revisions lists stored page revisions when the backend keeps them.
func (s *Session) Revisions(ctx context.Context) ([]storage.Revision, bool, error) {
	rs, ok := s.Storage.(revisionSource)
	if !ok {
		return nil, false, nil
	}
	revs, err := rs.Revisions(ctx, builder.StorageKey)
	return revs, true, err
}

// RestoreRevision loads a stored revision into the page as an unsaved change.
func (s *Session) RestoreRevision(ctx context.Context, id int64) error {
	rs, ok := s.Storage.(revisionSource)
	if !ok {
		return errors.New("storage backend does not keep revisions")
	}
	data, err := rs.RevisionData(ctx, builder.StorageKey, id)
	if errors.Is(err, storage.ErrRevisionKey) {
		return fmt.Errorf("%w: %d", ErrNotPageRevision, id)
	}
	if err != nil {
		return err
	}
	list, err := builder.DecodePage(data)
	if err != nil {
		return err
	}
	s.Builder.LoadPage(list)
	s.Builder.MarkDirty()
	return nil
}

type revisionSource interface {
	Revisions(ctx context.Context, key string) ([]storage.Revision, error)
	RevisionData(ctx context.Context, key string, id int64) ([]byte, error)
}

func (s *Session) registerZones() {
	s.DnD.RegisterZone(dnd.NewZone(ZoneTrash, nil, func(_ context.Context, c page.PlacedComponent) error {
		s.Builder.DeleteComponent(c.ID)
		return nil
	}))
	s.DnD.RegisterZone(dnd.NewZone(ZoneDuplicate, nil, func(_ context.Context, c page.PlacedComponent) error {
		if _, ok := s.Builder.DuplicateComponent(c.ID); !ok {
			return fmt.Errorf("component %s vanished", c.ID)
		}
		return nil
	}))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
