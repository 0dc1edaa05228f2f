package core

import (
	"path/filepath"

	"github.com/arthur-debert/crules/pkg/config"
	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/arthur-debert/crules/pkg/ui/display"
)

// GenerateConfig returns the commented default configuration. With write it
// is also saved as config.yaml in the config directory; an existing file is
// only replaced with force.
func GenerateConfig(env *Env, write, force bool) (*display.Document, error) {
	doc := &display.Document{ID: "config", Content: config.GenerateConfigContent()}
	if !write {
		return doc, nil
	}

	doc.Path = filepath.Join(env.ConfigDir, paths.ConfigFileName)
	if filesystem.IsFile(env.FS, doc.Path) && !force {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s already exists", doc.Path).
			WithDetail("suggestion", "use --force to replace it")
	}

	if err := env.FS.MkdirAll(env.ConfigDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", env.ConfigDir)
	}
	if err := filesystem.WriteFileAtomic(env.FS, doc.Path, []byte(doc.Content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", doc.Path)
	}
	env.Diags.Infof("Wrote default configuration to %s", doc.Path)
	return doc, nil
}
