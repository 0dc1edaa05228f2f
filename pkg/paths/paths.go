package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for crules
	EnvConfigDir = "CRULES_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvStateHome is the XDG state base directory
	EnvStateHome = "XDG_STATE_HOME"
)

// Default directories and files
const (
	// VendorDirName and AppDirName form the config directory below
	// $XDG_CONFIG_HOME, shared with the editor's own settings tree.
	VendorDirName = "Cursor"
	AppDirName    = "cursor-rules"

	// StateDirName is the directory below $XDG_STATE_HOME
	StateDirName = "crules"

	// ConfigFileName is the persisted settings document
	ConfigFileName = "config.yaml"

	// ConfigFileNameTOML is the alternative settings document
	ConfigFileNameTOML = "config.toml"

	// GlobalRulesFileName is the global rules document inside the config dir
	GlobalRulesFileName = "cursorrules"

	// LangRulesDirName holds the cursor.<id> files
	LangRulesDirName = "lang_rules"

	// LangRulePrefix is the prefix of every language rule file
	LangRulePrefix = "cursor."

	// LegacyOutputFile is the single concatenated output
	LegacyOutputFile = ".cursorrules"

	// ProjectRulesDir is the managed directory for directory mode
	ProjectRulesDir = ".cursor"

	// RulesSubdir is the subdirectory of ProjectRulesDir holding rule files
	RulesSubdir = "rules"

	// RuleFileExtension is the extension of managed rule files
	RuleFileExtension = ".mdc"

	// IgnoreFileName is the version-control ignore file
	IgnoreFileName = ".gitignore"

	// BackupSuffix is appended to backed-up files and directories
	BackupSuffix = ".bak"

	// LogFileName is the name of the log file
	LogFileName = "crules.log"
)

// ConfigDir returns the crules config directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, VendorDirName, AppDirName)
}

// ConfigFilePath returns the persisted settings document. An existing
// config.yaml wins, then an existing config.toml; otherwise the YAML name is
// returned.
func ConfigFilePath() string {
	dir := ConfigDir()
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	tomlPath := filepath.Join(dir, ConfigFileNameTOML)
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return yamlPath
}

// GlobalRulesPath returns the default global rules document
func GlobalRulesPath() string {
	return filepath.Join(ConfigDir(), GlobalRulesFileName)
}

// LangRulesDir returns the default language rules directory
func LangRulesDir() string {
	return filepath.Join(ConfigDir(), LangRulesDirName)
}

// StateDir returns the directory for crules state such as the log file.
// XDG_STATE_HOME is read on every call so it can change after startup.
func StateDir() string {
	if dir := os.Getenv(EnvStateHome); dir != "" {
		return filepath.Join(dir, StateDirName)
	}
	return filepath.Join(xdg.StateHome, StateDirName)
}

// LogFilePath returns the crules log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// LangRuleFile returns the path of the rule file for id inside dir
func LangRuleFile(dir, id string) string {
	return filepath.Join(dir, LangRulePrefix+id)
}

// BackupPath returns the sibling backup path for path
func BackupPath(path string) string {
	return path + BackupSuffix
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
