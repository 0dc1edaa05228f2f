package rules

import (
	"github.com/arthur-debert/crules/pkg/config"
	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/arthur-debert/crules/pkg/templates"
	"github.com/spf13/afero"
)

// SetupOptions describes where setup materializes the user's rule sources
type SetupOptions struct {
	ConfigDir   string
	GlobalPath  string
	LanguageDir string
	// ConfigFile receives Config as a persisted settings document
	ConfigFile string
	Config     *config.Config
	// Force replaces files that already exist
	Force bool
}

// SetupResult lists what setup did with each file it considered
type SetupResult struct {
	Created []string
	Updated []string
	Skipped []string
	Failed  []string
}

// Bootstrapper seeds the config directory from bundled templates
type Bootstrapper struct {
	fs        afero.Fs
	templates templates.Provider
	sink      logging.Sink
}

// NewBootstrapper creates a bootstrapper seeding from provider
func NewBootstrapper(fsys afero.Fs, provider templates.Provider, sink logging.Sink) *Bootstrapper {
	return &Bootstrapper{fs: fsys, templates: provider, sink: sink}
}

// Setup creates the config and language directories, then seeds the bundled
// language rules, the global rules document and the settings document.
// Directory creation failures are fatal; a file that cannot be written is
// recorded in Failed and the rest continue.
func (b *Bootstrapper) Setup(opts SetupOptions) (*SetupResult, error) {
	result := &SetupResult{}

	for _, dir := range []string{opts.ConfigDir, opts.LanguageDir} {
		if dir == "" {
			continue
		}
		if err := b.fs.MkdirAll(dir, 0755); err != nil {
			b.sink.Errorf("Failed to create directory %s: %v", dir, err)
			return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}

	b.seedLanguages(opts, result)

	if opts.GlobalPath != "" {
		content, err := b.templates.Get(templates.GlobalName)
		if err != nil {
			b.sink.Warnf("No bundled global rules: %v", err)
			result.Failed = append(result.Failed, opts.GlobalPath)
		} else {
			b.place(opts.GlobalPath, []byte(content), opts.Force, result)
		}
	}

	if opts.ConfigFile != "" {
		cfg := opts.Config
		if cfg == nil {
			cfg = config.Default()
		}
		data, err := config.Marshal(cfg, opts.ConfigFile)
		if err != nil {
			b.sink.Warnf("Failed to encode configuration: %v", err)
			result.Failed = append(result.Failed, opts.ConfigFile)
		} else {
			b.place(opts.ConfigFile, data, opts.Force, result)
		}
	}

	b.sink.Infof("Setup complete: %d created, %d updated, %d skipped, %d failed",
		len(result.Created), len(result.Updated), len(result.Skipped), len(result.Failed))
	return result, nil
}

func (b *Bootstrapper) seedLanguages(opts SetupOptions, result *SetupResult) {
	if opts.LanguageDir == "" {
		return
	}

	ids, err := b.templates.Languages()
	if err != nil {
		b.sink.Warnf("Failed to list bundled language rules: %v", err)
		return
	}

	for _, id := range ids {
		target := paths.LangRuleFile(opts.LanguageDir, id)
		content, err := b.templates.Get(id)
		if err != nil {
			b.sink.Warnf("Failed to read bundled rules for %s: %v", id, err)
			result.Failed = append(result.Failed, target)
			continue
		}
		b.place(target, []byte(content), opts.Force, result)
	}
}

// place writes data to target when it is absent, or always with force
func (b *Bootstrapper) place(target string, data []byte, force bool, result *SetupResult) {
	existed := filesystem.IsFile(b.fs, target)
	if existed && !force {
		b.sink.Infof("Keeping existing %s", target)
		result.Skipped = append(result.Skipped, target)
		return
	}

	if err := filesystem.WriteFileAtomic(b.fs, target, data, 0644); err != nil {
		b.sink.Warnf("Failed to write %s: %v", target, err)
		result.Failed = append(result.Failed, target)
		return
	}

	if existed {
		b.sink.Infof("Replaced %s", target)
		result.Updated = append(result.Updated, target)
		return
	}
	b.sink.Infof("Created %s", target)
	result.Created = append(result.Created, target)
}
