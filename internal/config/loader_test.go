package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

func TestDefaultValidates(t *testing.T) {
	t.Parallel()

	cfg := Default("/srv/pagesmith")
	require.NoError(t, Validate(cfg))
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "file", cfg.Storage.Driver)
	require.Equal(t, "/srv/pagesmith/data", cfg.Storage.Path)
	require.Equal(t, DefaultHistoryLimit, cfg.History.Limit)
	require.Equal(t, "/srv/pagesmith/uploads", cfg.Uploads.Dir)
	require.EqualValues(t, DefaultUploadMaxBytes, cfg.Uploads.MaxBytes)
	require.Equal(t, "/srv/pagesmith/site", cfg.Deploy.Repo)
	require.Equal(t, "modern", cfg.Theme.Default)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *AppConfig, err error)
	}{
		{
			name: "full configuration is parsed",
			contents: `log:
  level: DEBUG
  human: true
storage:
  driver: sqlite
  path: state/pages.db
history:
  limit: 10
export:
  include_hidden: true
  title: Portfolio
deploy:
  repo: /tmp/site
  base_url: https://me.example.com
  branch: main
uploads:
  max_bytes: 1024
theme:
  default: dark
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				require.NoError(t, err)
				require.Equal(t, "debug", cfg.Log.Level)
				require.True(t, cfg.Log.Human)
				require.Equal(t, "sqlite", cfg.Storage.Driver)
				require.True(t, filepath.IsAbs(cfg.Storage.Path))
				require.Equal(t, "pages.db", filepath.Base(cfg.Storage.Path))
				require.Equal(t, 10, cfg.History.Limit)
				require.True(t, cfg.Export.IncludeHidden)
				require.Equal(t, "/tmp/site", cfg.Deploy.Repo)
				require.EqualValues(t, 1024, cfg.Uploads.MaxBytes)
				require.Equal(t, "dark", cfg.Theme.Default)
			},
		},
		{
			name:     "empty file yields defaults",
			contents: "",
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				require.NoError(t, err)
				require.Equal(t, "file", cfg.Storage.Driver)
			},
		},
		{
			name: "malformed yaml reports line",
			contents: `log:
  level: info
storage: [a, b
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				var parseErr *pserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Greater(t, parseErr.Line, 0)
			},
		},
		{
			name: "unknown key is rejected",
			contents: `storag:
  driver: file
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				var parseErr *pserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 1, parseErr.Line)
			},
		},
		{
			name: "bad driver is a validation error",
			contents: `storage:
  driver: redis
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				var validationErr *pserrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "storage.driver", validationErr.Field)
			},
		},
		{
			name: "history limit out of range",
			contents: `history:
  limit: 1000
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				var validationErr *pserrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "history.limit", validationErr.Field)
			},
		},
		{
			name: "unknown log level",
			contents: `log:
  level: loud
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				var validationErr *pserrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "log.level", validationErr.Field)
			},
		},
		{
			name: "base url must be a url",
			contents: `deploy:
  base_url: not a url
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				var validationErr *pserrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "deploy.base_url", validationErr.Field)
			},
		},
		{
			name: "branch names are checked",
			contents: `deploy:
  branch: feature..x
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				var validationErr *pserrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "deploy.branch", validationErr.Field)
			},
		},
		{
			name: "memory driver needs no path",
			contents: `storage:
  driver: memory
`,
			assert: func(t *testing.T, cfg *AppConfig, err error) {
				require.NoError(t, err)
				require.Empty(t, cfg.Storage.Path)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			cfg, err := Load(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *pserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default("/home/me/.pagesmith")
	data, err := Marshal(cfg)
	require.NoError(t, err)

	again, err := Parse("config.yaml", data, "/elsewhere")
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestYamlishFieldName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "base_url", toSnake("BaseURL"))
	require.Equal(t, "max_bytes", toSnake("MaxBytes"))
	require.Equal(t, "operations[3]", toSnake("Operations[3]"))
	require.Equal(t, "load_template", toSnake("LoadTemplate"))
}
