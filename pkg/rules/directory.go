package rules

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// ManagedDir is the directory crules owns in directory mode:
// <root>/rules/<id><ext>.
type ManagedDir struct {
	fs        afero.Fs
	sink      logging.Sink
	root      string
	ext       string
	resolver  *Resolver
	confirmer Confirmer
}

// DirectoryOptions describes one directory-mode run
type DirectoryOptions struct {
	GlobalPath  string
	LanguageDir string
	Languages   []string
	Force       bool
	// Backup copies the rules directory aside before files are replaced
	Backup bool
	// IgnoreFile receives the managed rule-file pattern; empty skips it
	IgnoreFile string
}

// DirectoryResult reports what a directory-mode run did
type DirectoryResult struct {
	// Written lists the rule files written, in write order
	Written    []string
	BackupPath string
	Cancelled  bool
	// IgnoreAdded lists the entries appended to the ignore file
	IgnoreAdded []string
}

// RuleFile is a rule file found in the managed directory
type RuleFile struct {
	ID   string
	Path string
	Source
}

// NewManagedDir creates a handle for the managed directory at root. ext is
// the rule-file extension including its dot. confirmer may be nil.
func NewManagedDir(fsys afero.Fs, sink logging.Sink, root, ext string, confirmer Confirmer) *ManagedDir {
	return &ManagedDir{
		fs:        fsys,
		sink:      sink,
		root:      root,
		ext:       ext,
		resolver:  NewResolver(fsys, sink),
		confirmer: confirmer,
	}
}

// Root returns the managed directory
func (m *ManagedDir) Root() string {
	return m.root
}

// RulesDir returns the directory holding rule files
func (m *ManagedDir) RulesDir() string {
	return filepath.Join(m.root, paths.RulesSubdir)
}

// Path returns the rule file for id
func (m *ManagedDir) Path(id string) string {
	return filepath.Join(m.RulesDir(), id+m.ext)
}

// IgnorePattern returns the glob covering every rule file, in slash form
func (m *ManagedDir) IgnorePattern() string {
	return filepath.ToSlash(filepath.Join(m.RulesDir(), "*"+m.ext))
}

// EnsureStructure creates the managed directory and its rules directory.
// Existing directories are left alone.
func (m *ManagedDir) EnsureStructure() error {
	if err := m.fs.MkdirAll(m.RulesDir(), 0755); err != nil {
		m.sink.Errorf("Failed to create %s: %v", m.RulesDir(), err)
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", m.RulesDir())
	}
	m.sink.Infof("Ensured %s structure exists", m.root)
	return nil
}

// WriteSource writes src to its rule file, replacing only that file. The
// file is swapped in whole, so a failure leaves the previous version.
func (m *ManagedDir) WriteSource(src Source) error {
	if err := paths.ValidateIdentifier(src.ID); err != nil {
		m.sink.Errorf("Failed to create rule file %s: %v", src.ID, err)
		return err
	}

	data, err := src.Render()
	if err != nil {
		m.sink.Errorf("Failed to create rule file %s: %v", src.ID, err)
		return errors.Wrapf(err, errors.ErrInternal, "failed to render %s", src.ID)
	}

	path := m.Path(src.ID)
	if err := filesystem.WriteFileAtomic(m.fs, path, data, 0644); err != nil {
		m.sink.Errorf("Failed to create rule file %s: %v", src.ID, err)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	m.sink.Infof("Created rule file: %s", path)
	return nil
}

// WriteAll writes the global source and one source per language. Every
// input is read before anything is written. Writing stops at the first
// failure and files already written stay in place; there is no rollback.
func (m *ManagedDir) WriteAll(opts DirectoryOptions) (*DirectoryResult, error) {
	result := &DirectoryResult{}

	if err := m.resolver.CheckRequired(opts.GlobalPath, opts.LanguageDir, opts.Languages); err != nil {
		return result, err
	}

	sources, err := m.loadSources(opts)
	if err != nil {
		return result, err
	}

	existing := m.existingTargets(sources)
	if len(existing) > 0 && !opts.Force {
		ok, err := confirmOverwrite(m.confirmer, m.sink, m.RulesDir(), fmt.Sprintf(
			"%d rule file(s) in %s will be overwritten. Continue?", len(existing), m.RulesDir()))
		if err != nil {
			return result, errors.Wrap(err, errors.ErrInternal, "failed to read confirmation")
		}
		if !ok {
			m.sink.Infof("Operation cancelled by user")
			result.Cancelled = true
			return result, nil
		}
	}

	if opts.Backup && len(existing) > 0 {
		backupPath, err := m.BackupRules()
		if err != nil {
			return result, err
		}
		result.BackupPath = backupPath
	}

	if err := m.EnsureStructure(); err != nil {
		return result, err
	}

	for _, src := range sources {
		if err := m.WriteSource(src); err != nil {
			return result, err
		}
		result.Written = append(result.Written, m.Path(src.ID))
	}

	if opts.IgnoreFile != "" {
		added, err := m.UpdateIgnoreFile(opts.IgnoreFile)
		if err != nil {
			m.sink.Warnf("Failed to update %s: %v", opts.IgnoreFile, err)
		}
		result.IgnoreAdded = added
	}

	return result, nil
}

func (m *ManagedDir) loadSources(opts DirectoryOptions) ([]Source, error) {
	global, err := m.resolver.readSource(opts.GlobalPath)
	if err != nil {
		return nil, err
	}

	sources := []Source{{
		ID:       GlobalID,
		Content:  strings.TrimSpace(global) + "\n",
		Metadata: GlobalMetadata(),
	}}

	for _, id := range opts.Languages {
		content, err := m.resolver.readSource(paths.LangRuleFile(opts.LanguageDir, id))
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{
			ID:       id,
			Content:  strings.TrimSpace(content) + "\n",
			Metadata: LanguageMetadata(id),
		})
	}
	return sources, nil
}

func (m *ManagedDir) existingTargets(sources []Source) []string {
	var existing []string
	for _, src := range sources {
		if filesystem.IsFile(m.fs, m.Path(src.ID)) {
			existing = append(existing, m.Path(src.ID))
		}
	}
	return existing
}

// BackupRules copies the rules directory to <rules>.bak, replacing any
// previous backup.
func (m *ManagedDir) BackupRules() (string, error) {
	backupPath := paths.BackupPath(m.RulesDir())
	if err := filesystem.CopyDir(m.fs, m.RulesDir(), backupPath); err != nil {
		m.sink.Errorf("Failed to back up %s: %v", m.RulesDir(), err)
		return "", errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", m.RulesDir())
	}
	m.sink.Infof("Backed up existing rules to %s", backupPath)
	return backupPath, nil
}

// UpdateIgnoreFile adds the rule-file pattern to the ignore file at path,
// creating the file when needed. Repeated calls add nothing.
func (m *ManagedDir) UpdateIgnoreFile(path string) ([]string, error) {
	ignore := NewIgnoreFile(m.fs, path)
	added, err := ignore.Ensure([]string{ignore.Entry(m.IgnorePattern())}, true)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		m.sink.Infof("Updated %s with cursor rules pattern", path)
	}
	return added, nil
}

// List returns the rule files in the managed directory sorted by id
func (m *ManagedDir) List() ([]RuleFile, error) {
	entries, err := afero.ReadDir(m.fs, m.RulesDir())
	if err != nil {
		if exists, _ := afero.DirExists(m.fs, m.RulesDir()); !exists {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", m.RulesDir())
	}

	var files []RuleFile
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Mode().IsRegular() || !strings.HasSuffix(name, m.ext) {
			continue
		}
		id := strings.TrimSuffix(name, m.ext)
		path := filepath.Join(m.RulesDir(), name)

		data, err := filesystem.ReadFile(m.fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
		}
		src, err := ParseSource(id, data)
		if err != nil {
			m.sink.Warnf("Ignoring front matter of %s: %v", path, err)
		}
		files = append(files, RuleFile{ID: id, Path: path, Source: src})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

// Match returns the rule files whose globs apply to target. Patterns
// containing a slash are matched against the slash-separated path, others
// against the base name.
func (m *ManagedDir) Match(target string) ([]RuleFile, error) {
	files, err := m.List()
	if err != nil {
		return nil, err
	}

	slashed := filepath.ToSlash(filepath.Clean(target))
	base := filepath.Base(target)

	var matched []RuleFile
	for _, file := range files {
		if file.Metadata == nil {
			continue
		}
		for _, pattern := range file.Metadata.Globs {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				m.sink.Warnf("Invalid glob %q in %s: %v", pattern, file.Path, err)
				continue
			}
			subject := base
			if strings.Contains(pattern, "/") {
				subject = slashed
			}
			if g.Match(subject) {
				matched = append(matched, file)
				break
			}
		}
	}
	return matched, nil
}
