// Package deploy publishes an exported page by committing it to a local git
// repository, which any static host can serve or mirror.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/alexisbeaulieu97/pagesmith/internal/ids"
	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
)

const (
	// IndexFile is the document written at the repository root.
	IndexFile     = "index.html"
	DefaultBranch = "main"

	defaultAuthor = "pagesmith"
	defaultEmail  = "pagesmith@localhost"
	subjectPrefix = "deploy: "
)

// ErrEmptyDocument is returned when there is nothing to publish.
var ErrEmptyDocument = errors.New("deploy: document is empty")

// Config locates the target repository and signs commits.
type Config struct {
	Repo    string
	BaseURL string
	Author  string
	Email   string
	Branch  string
}

// Result describes one deployment.
type Result struct {
	DeploymentID string
	URL          string
	Commit       string
	Path         string
}

// Deployment is a past deployment read from the repository log.
type Deployment struct {
	DeploymentID string
	Commit       string
	Message      string
	When         time.Time
}

// Deployer commits exports into Config.Repo.
type Deployer struct {
	cfg    Config
	now    func() time.Time
	logger ports.Logger
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithLogger sets the structured logger.
func WithLogger(l ports.Logger) Option {
	return func(d *Deployer) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock overrides the time source used for ids and signatures.
func WithClock(now func() time.Time) Option {
	return func(d *Deployer) {
		if now != nil {
			d.now = now
		}
	}
}

// New returns a Deployer for cfg.
func New(cfg Config, opts ...Option) *Deployer {
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.Author == "" {
		cfg.Author = defaultAuthor
	}
	if cfg.Email == "" {
		cfg.Email = defaultEmail
	}
	d := &Deployer{cfg: cfg, now: time.Now, logger: logger.NewNoOp()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy writes document to IndexFile and commits it. The repository is
// initialised on first use. note, when set, becomes the commit body.
func (d *Deployer) Deploy(ctx context.Context, document []byte, note string) (Result, error) {
	if len(document) == 0 {
		return Result{}, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	repo, err := d.open()
	if err != nil {
		return Result{}, err
	}

	path := filepath.Join(d.cfg.Repo, IndexFile)
	if err := writeFileAtomic(path, document); err != nil {
		return Result{}, fmt.Errorf("deploy: write %s: %w", IndexFile, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Result{}, fmt.Errorf("deploy: worktree: %w", err)
	}
	if _, err := wt.Add(IndexFile); err != nil {
		return Result{}, fmt.Errorf("deploy: stage: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := d.now()
	id := ids.Stamped("deploy", now)
	message := subjectPrefix + id
	if strings.TrimSpace(note) != "" {
		message += "\n\n" + strings.TrimSpace(note)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:            &object.Signature{Name: d.cfg.Author, Email: d.cfg.Email, When: now},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("deploy: commit: %w", err)
	}

	result := Result{
		DeploymentID: id,
		URL:          d.url(path),
		Commit:       hash.String(),
		Path:         path,
	}
	d.logger.Info(ctx, "page deployed",
		"deployment_id", id,
		"commit", hash.String(),
		"repo", d.cfg.Repo,
		"bytes", len(document),
	)
	return result, nil
}

// History lists deployments newest first, at most limit (0 for all).
func (d *Deployer) History(ctx context.Context, limit int) ([]Deployment, error) {
	repo, err := git.PlainOpen(d.cfg.Repo)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("deploy: open %s: %w", d.cfg.Repo, err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("deploy: head: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("deploy: log: %w", err)
	}
	defer iter.Close()

	var out []Deployment
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("deploy: log: %w", err)
		}
		subject, body, _ := strings.Cut(c.Message, "\n")
		if !strings.HasPrefix(subject, subjectPrefix) {
			continue
		}
		out = append(out, Deployment{
			DeploymentID: strings.TrimPrefix(subject, subjectPrefix),
			Commit:       c.Hash.String(),
			Message:      strings.TrimSpace(body),
			When:         c.Author.When,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (d *Deployer) open() (*git.Repository, error) {
	if err := os.MkdirAll(d.cfg.Repo, 0o755); err != nil {
		return nil, fmt.Errorf("deploy: create %s: %w", d.cfg.Repo, err)
	}

	repo, err := git.PlainOpen(d.cfg.Repo)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("deploy: open %s: %w", d.cfg.Repo, err)
	}

	repo, err = git.PlainInitWithOptions(d.cfg.Repo, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(d.cfg.Branch)},
	})
	if err != nil {
		return nil, fmt.Errorf("deploy: init %s: %w", d.cfg.Repo, err)
	}
	d.logger.Info(context.Background(), "initialised deploy repository", "repo", d.cfg.Repo, "branch", d.cfg.Branch)
	return repo, nil
}

func (d *Deployer) url(path string) string {
	if d.cfg.BaseURL != "" {
		return strings.TrimRight(d.cfg.BaseURL, "/") + "/"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
