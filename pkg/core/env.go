package core

import (
	"path/filepath"

	"github.com/arthur-debert/crules/pkg/config"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/rules"
	"github.com/arthur-debert/crules/pkg/templates"
	"github.com/spf13/afero"
)

// Env carries the dependencies shared by every command
type Env struct {
	FS     afero.Fs
	Config *config.Config
	Diags  *logging.Diagnostics
	// Confirmer answers overwrite questions; nil declines them
	Confirmer rules.Confirmer
	Templates templates.Provider
	// WorkDir anchors the relative output paths of the configuration
	WorkDir string
	// ConfigDir and ConfigFile are where setup materializes its files
	ConfigDir  string
	ConfigFile string
}

func (e *Env) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || e.WorkDir == "" {
		return path
	}
	return filepath.Join(e.WorkDir, path)
}

// OutputPath returns the legacy output file
func (e *Env) OutputPath() string {
	return e.resolve(e.Config.OutputFile)
}

// IgnorePath returns the version-control ignore file
func (e *Env) IgnorePath() string {
	return e.resolve(e.Config.IgnoreFile)
}

// ManagedDir returns the managed directory used in directory mode
func (e *Env) ManagedDir() *rules.ManagedDir {
	return rules.NewManagedDir(e.FS, e.Diags, e.resolve(e.Config.ProjectRulesDir), e.Config.FileExtension, e.Confirmer)
}

func (e *Env) resolver() *rules.Resolver {
	return rules.NewResolver(e.FS, e.Diags)
}
