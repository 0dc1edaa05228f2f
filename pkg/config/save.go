package config

import (
	"bytes"

	"github.com/arthur-debert/crules/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Marshal serializes cfg in the format implied by the extension of path:
// TOML for .toml, YAML otherwise.
func Marshal(cfg *Config, path string) ([]byte, error) {
	if isTOML(path) {
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode TOML configuration")
		}
		return data, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode YAML configuration")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode YAML configuration")
	}
	return buf.Bytes(), nil
}
