package rules

import (
	"iter"
	"maps"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/spf13/afero"
)

// Resolver finds rule sources on disk
type Resolver struct {
	fs   afero.Fs
	sink logging.Sink
}

// NewResolver creates a resolver reading from fsys
func NewResolver(fsys afero.Fs, sink logging.Sink) *Resolver {
	return &Resolver{fs: fsys, sink: sink}
}

// Sources enumerates the cursor.<id> files in dir as (id, path) pairs in
// name order. Each call rescans the directory; a missing directory yields
// nothing.
func (r *Resolver) Sources(dir string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		entries, err := afero.ReadDir(r.fs, dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			if !entry.Mode().IsRegular() || !strings.HasPrefix(name, paths.LangRulePrefix) {
				continue
			}
			id := strings.TrimPrefix(name, paths.LangRulePrefix)
			if id == "" {
				continue
			}
			if !yield(id, filepath.Join(dir, name)) {
				return
			}
		}
	}
}

// ListAvailable maps every available identifier in dir to its file. A
// missing directory is not an error.
func (r *Resolver) ListAvailable(dir string) (map[string]string, error) {
	exists, err := afero.Exists(r.fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to access %s", dir)
	}
	if !exists {
		return map[string]string{}, nil
	}
	if !filesystem.IsDir(r.fs, dir) {
		return nil, errors.Newf(errors.ErrFileAccess, "%s is not a directory", dir)
	}
	return maps.Collect(r.Sources(dir)), nil
}

// Languages returns the sorted identifiers available in dir
func (r *Resolver) Languages(dir string) ([]string, error) {
	available, err := r.ListAvailable(dir)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(available))
	for id := range available {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// CheckRequired verifies that the global rules file and the rule file of
// every requested identifier exist. Every missing file is reported to the
// sink; the returned error lists all of them under the "missing" detail.
func (r *Resolver) CheckRequired(globalPath, dir string, ids []string) error {
	if err := paths.ValidateIdentifiers(ids); err != nil {
		r.sink.Errorf("%v", err)
		return err
	}
	if slices.Contains(ids, GlobalID) {
		err := errors.Newf(errors.ErrInvalidInput, "%q is reserved for the global rules and cannot be used as a language", GlobalID)
		r.sink.Errorf("%v", err)
		return err
	}

	var missing []string
	if !filesystem.IsFile(r.fs, globalPath) {
		r.sink.Errorf("Global rules file not found at %s", globalPath)
		missing = append(missing, globalPath)
	}

	for _, id := range ids {
		langFile := paths.LangRuleFile(dir, id)
		if !filesystem.IsFile(r.fs, langFile) {
			r.sink.Errorf("Language rules file not found at %s", langFile)
			missing = append(missing, langFile)
		}
	}

	if len(missing) > 0 {
		return errors.Newf(errors.ErrNotFound, "%d required rule file(s) not found", len(missing)).
			WithDetail("missing", missing)
	}
	return nil
}

// MissingPaths extracts the missing files from a CheckRequired error
func MissingPaths(err error) []string {
	details := errors.GetErrorDetails(err)
	if details == nil {
		return nil
	}
	missing, _ := details["missing"].([]string)
	return missing
}

// readSource reads a rule file, wrapping failures with the path
func (r *Resolver) readSource(path string) (string, error) {
	data, err := filesystem.ReadFile(r.fs, path)
	if err != nil {
		r.sink.Errorf("Failed to read %s: %v", path, err)
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return string(data), nil
}
