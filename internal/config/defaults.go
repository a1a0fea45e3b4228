package config

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the per-user state directory under $HOME.
	DirName = ".pagesmith"
	// FileName is the configuration file inside DirName.
	FileName = "config.yaml"

	DefaultHistoryLimit   = 50
	DefaultUploadMaxBytes = 5 * 1024 * 1024
)

// HomeDir returns the pagesmith state directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// DefaultPath returns ~/.pagesmith/config.yaml.
func DefaultPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Default returns the configuration used when no file exists, rooted at base.
func Default(base string) *AppConfig {
	cfg := &AppConfig{}
	ApplyDefaults(cfg, base)
	return cfg
}

// ApplyDefaults fills unset fields. Relative paths are resolved against base.
func ApplyDefaults(cfg *AppConfig, base string) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "file"
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Driver {
		case "sqlite":
			cfg.Storage.Path = "pagesmith.db"
		case "file":
			cfg.Storage.Path = "data"
		}
	}
	if cfg.History.Limit == 0 {
		cfg.History.Limit = DefaultHistoryLimit
	}
	if cfg.Export.Title == "" {
		cfg.Export.Title = "My Personal Brand"
	}
	if cfg.Export.Lang == "" {
		cfg.Export.Lang = "en"
	}
	if cfg.Deploy.Repo == "" {
		cfg.Deploy.Repo = "site"
	}
	if cfg.Deploy.Author == "" {
		cfg.Deploy.Author = "pagesmith"
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "uploads"
	}
	if cfg.Uploads.MaxBytes == 0 {
		cfg.Uploads.MaxBytes = DefaultUploadMaxBytes
	}
	if cfg.Theme.Default == "" {
		cfg.Theme.Default = "modern"
	}

	cfg.Storage.Path = resolve(base, cfg.Storage.Path)
	cfg.Deploy.Repo = resolve(base, cfg.Deploy.Repo)
	cfg.Uploads.Dir = resolve(base, cfg.Uploads.Dir)
}

func resolve(base, path string) string {
	if path == "" || base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
