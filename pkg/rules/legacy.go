package rules

import (
	"fmt"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/spf13/afero"
)

// LegacyOptions describes one legacy-mode run
type LegacyOptions struct {
	GlobalPath  string
	LanguageDir string
	Languages   []string
	Delimiter   string
	// OutputPath is the concatenated rules file
	OutputPath string
	// IgnoreFile is updated with the output and backup paths when it exists
	IgnoreFile string
	Force      bool
}

// LegacyResult reports what a legacy-mode run did
type LegacyResult struct {
	OutputPath string
	// BackupPath is set when a previous output was backed up
	BackupPath string
	// Cancelled is true when the user declined to overwrite the output
	Cancelled   bool
	IgnoreAdded []string
}

// LegacyWriter writes all rule sources into a single file
type LegacyWriter struct {
	fs        afero.Fs
	sink      logging.Sink
	resolver  *Resolver
	confirmer Confirmer
}

// NewLegacyWriter creates a legacy writer. confirmer may be nil, in which
// case an existing output is only replaced with Force.
func NewLegacyWriter(fsys afero.Fs, sink logging.Sink, confirmer Confirmer) *LegacyWriter {
	return &LegacyWriter{
		fs:        fsys,
		sink:      sink,
		resolver:  NewResolver(fsys, sink),
		confirmer: confirmer,
	}
}

// BackupIfPresent copies an existing output to its .bak sibling. Without
// force the user is asked first; declining returns Abort. The returned path
// is the backup that was written, if any.
func (w *LegacyWriter) BackupIfPresent(outputPath string, force bool) (Decision, string, error) {
	exists, err := afero.Exists(w.fs, outputPath)
	if err != nil {
		return Abort, "", errors.Wrapf(err, errors.ErrFileAccess, "failed to access %s", outputPath)
	}
	if !exists {
		return Continue, "", nil
	}

	if !force {
		ok, err := confirmOverwrite(w.confirmer, w.sink, outputPath,
			fmt.Sprintf("Existing %s found. Overwrite?", outputPath))
		if err != nil {
			return Abort, "", errors.Wrap(err, errors.ErrInternal, "failed to read confirmation")
		}
		if !ok {
			w.sink.Infof("Operation cancelled by user")
			return Abort, "", nil
		}
	}

	backupPath := paths.BackupPath(outputPath)
	if err := filesystem.CopyFile(w.fs, outputPath, backupPath); err != nil {
		w.sink.Errorf("Failed to create backup: %v", err)
		return Abort, "", errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", outputPath)
	}
	w.sink.Infof("Backed up existing rules to %s", backupPath)
	return Continue, backupPath, nil
}

// Write validates the inputs, backs up any previous output, merges the
// sources and replaces the output file. Nothing is written if a source
// cannot be read.
func (w *LegacyWriter) Write(opts LegacyOptions) (*LegacyResult, error) {
	result := &LegacyResult{OutputPath: opts.OutputPath}

	if err := w.resolver.CheckRequired(opts.GlobalPath, opts.LanguageDir, opts.Languages); err != nil {
		return result, err
	}

	decision, backupPath, err := w.BackupIfPresent(opts.OutputPath, opts.Force)
	if err != nil {
		return result, err
	}
	if decision == Abort {
		result.Cancelled = true
		return result, nil
	}
	result.BackupPath = backupPath

	content, err := w.resolver.Combine(opts.GlobalPath, opts.LanguageDir, opts.Languages, opts.Delimiter)
	if err != nil {
		return result, err
	}

	if opts.IgnoreFile != "" {
		ignore := NewIgnoreFile(w.fs, opts.IgnoreFile)
		added, err := ignore.Ensure([]string{
			ignore.Entry(opts.OutputPath),
			ignore.Entry(paths.BackupPath(opts.OutputPath)),
		}, false)
		if err != nil {
			w.sink.Warnf("Failed to update %s: %v", opts.IgnoreFile, err)
		} else if len(added) > 0 {
			w.sink.Infof("Updated %s with %d entries", opts.IgnoreFile, len(added))
			result.IgnoreAdded = added
		}
	}

	if err := filesystem.WriteFileAtomic(w.fs, opts.OutputPath, []byte(content), 0644); err != nil {
		w.sink.Errorf("Failed to write %s: %v", opts.OutputPath, err)
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", opts.OutputPath)
	}

	w.sink.Infof("Successfully created %s", opts.OutputPath)
	return result, nil
}
