package config

import (
	"strings"

	"github.com/arthur-debert/crules/pkg/paths"
)

// Config holds every setting crules reads. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	// GlobalRulesPath is the global rules document prepended to every output
	GlobalRulesPath string `koanf:"global_rules_path" yaml:"global_rules_path" toml:"global_rules_path"`
	// LanguageRulesDir contains the cursor.<id> files
	LanguageRulesDir string `koanf:"language_rules_dir" yaml:"language_rules_dir" toml:"language_rules_dir"`
	// ProjectRulesDir is the managed directory written in directory mode
	ProjectRulesDir string `koanf:"project_rules_dir" yaml:"project_rules_dir" toml:"project_rules_dir"`
	// Delimiter separates blocks in legacy output
	Delimiter string `koanf:"delimiter" yaml:"delimiter" toml:"delimiter"`
	// FileExtension is the extension of managed rule files, including the dot
	FileExtension string `koanf:"file_extension" yaml:"file_extension" toml:"file_extension"`
	// LegacyMode selects the single concatenated output file
	LegacyMode bool `koanf:"legacy_mode" yaml:"legacy_mode" toml:"legacy_mode"`
	// BackupExisting backs up rule files before overwriting them
	BackupExisting bool `koanf:"backup_existing" yaml:"backup_existing" toml:"backup_existing"`
	// OutputFile is the legacy output, relative to the working directory
	OutputFile string `koanf:"output_file" yaml:"output_file" toml:"output_file"`
	// IgnoreFile is the version-control ignore file, relative to the working directory
	IgnoreFile string `koanf:"ignore_file" yaml:"ignore_file" toml:"ignore_file"`
}

// Default returns the configuration crules uses when nothing overrides it
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipEnv: true})
	if err != nil {
		// The embedded defaults are part of the binary; failing to parse
		// them is a build defect.
		panic(err)
	}
	return cfg
}

func postProcessConfig(cfg *Config) {
	cfg.GlobalRulesPath = paths.ExpandHome(cfg.GlobalRulesPath)
	cfg.LanguageRulesDir = paths.ExpandHome(cfg.LanguageRulesDir)
	cfg.ProjectRulesDir = paths.ExpandHome(cfg.ProjectRulesDir)

	if cfg.FileExtension != "" && !strings.HasPrefix(cfg.FileExtension, ".") {
		cfg.FileExtension = "." + cfg.FileExtension
	}
}
