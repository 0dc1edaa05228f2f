package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "CRULES_"

// DotenvFile is read from the working directory for CRULES_* overrides
const DotenvFile = ".env"

// LoadOptions controls where configuration is read from. Empty fields skip
// the corresponding layer.
type LoadOptions struct {
	// ConfigFile is the persisted settings document
	ConfigFile string
	// WorkDir is searched for a .env file
	WorkDir string
	// SkipEnv ignores the process environment
	SkipEnv bool
}

// Load builds the configuration from all layers. A malformed settings
// document is reported and skipped so crules keeps working on defaults.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Path defaults depend on the XDG location and cannot be embedded
	pathDefaults := map[string]interface{}{
		"global_rules_path":  paths.GlobalRulesPath(),
		"language_rules_dir": paths.LangRulesDir(),
	}
	if err := k.Load(confmap.Provider(pathDefaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load path defaults")
	}

	// 2. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 3. Persisted settings document
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err == nil {
			userK := koanf.New(".")
			if err := userK.Load(file.Provider(opts.ConfigFile), parserFor(opts.ConfigFile)); err != nil {
				logger.Warn().Err(err).Str("path", opts.ConfigFile).Msg("Error loading config file, using defaults")
			} else {
				if err := k.Merge(userK); err != nil {
					return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge %s", opts.ConfigFile)
				}
				logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded configuration")
			}
		}
	}

	// 4. .env in the working directory
	if opts.WorkDir != "" {
		dotenvPath := filepath.Join(opts.WorkDir, DotenvFile)
		if _, err := os.Stat(dotenvPath); err == nil {
			values, err := godotenv.Read(dotenvPath)
			if err != nil {
				logger.Warn().Err(err).Str("path", dotenvPath).Msg("Failed to read .env file")
			} else if overrides := envOverrides(values); len(overrides) > 0 {
				if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
					return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load .env overrides")
				}
			}
		}
	}

	// 5. Process environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	postProcessConfig(&cfg)
	return &cfg, nil
}

// envKey maps CRULES_LEGACY_MODE to legacy_mode
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func envOverrides(values map[string]string) map[string]interface{} {
	out := make(map[string]interface{})
	for key, value := range values {
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		out[envKey(key)] = value
	}
	return out
}

func parserFor(path string) koanf.Parser {
	if isTOML(path) {
		return toml.Parser()
	}
	return yaml.Parser()
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
