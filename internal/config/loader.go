package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads the configuration at path. An empty path means the default
// location, which may be absent: defaults are returned in that case. Relative
// paths inside the file resolve against the file's directory.
func Load(path string) (*AppConfig, error) {
	explicit := path != ""
	if !explicit {
		def, err := DefaultPath()
		if err != nil {
			return nil, pserrors.NewParseError("config", 0, err)
		}
		path = def
	}

	base := filepath.Dir(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg := Default(base)
			return cfg, nil
		}
		return nil, pserrors.NewParseError(path, 0, err)
	}

	return Parse(path, data, base)
}

// Parse decodes a configuration document, applies defaults and validates it.
func Parse(path string, data []byte, base string) (*AppConfig, error) {
	var cfg AppConfig
	if len(strings.TrimSpace(string(data))) > 0 {
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, pserrors.NewParseError(path, extractLine(err), err)
		}
	}

	ApplyDefaults(&cfg, base)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct rules.
func Validate(cfg *AppConfig) error {
	if cfg == nil {
		return pserrors.NewValidationError("config", "configuration is nil", nil)
	}
	return convertValidationError(validatorInstance().Struct(cfg))
}

// Marshal renders cfg as YAML, used by `pagesmith config init`.
func Marshal(cfg *AppConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
