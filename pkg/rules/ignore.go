package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/spf13/afero"
)

// IgnoreHeader introduces the entries crules adds to the ignore file
const IgnoreHeader = "# Cursor specific"

// IgnoreFile is a line-oriented ignore file such as .gitignore
type IgnoreFile struct {
	fs   afero.Fs
	path string
}

// NewIgnoreFile creates a handle for the ignore file at path
func NewIgnoreFile(fsys afero.Fs, path string) *IgnoreFile {
	return &IgnoreFile{fs: fsys, path: path}
}

// Path returns the location of the ignore file
func (f *IgnoreFile) Path() string {
	return f.path
}

// Entry returns the line that ignores target: its path relative to the
// directory holding the ignore file, with forward slashes. Targets that
// cannot be expressed relative to it are returned as given.
func (f *IgnoreFile) Entry(target string) string {
	rel, err := filepath.Rel(filepath.Dir(f.path), filepath.FromSlash(target))
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// Ensure appends every entry that is not already a line of the file, under
// a single header comment. When the file does not exist it is created only
// if create is true. It returns the entries that were added.
func (f *IgnoreFile) Ensure(entries []string, create bool) ([]string, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	switch {
	case os.IsNotExist(err):
		if !create {
			return nil, nil
		}
		data = nil
	case err != nil:
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", f.path)
	}

	content := string(data)
	present := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var added []string
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" || present[entry] {
			continue
		}
		present[entry] = true
		added = append(added, entry)
	}
	if len(added) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	if !present[IgnoreHeader] {
		if content != "" {
			b.WriteString("\n")
		}
		b.WriteString(IgnoreHeader + "\n")
	}
	for _, entry := range added {
		b.WriteString(entry + "\n")
	}

	perm := os.FileMode(0644)
	if info, err := f.fs.Stat(f.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := filesystem.WriteFileAtomic(f.fs, f.path, []byte(b.String()), perm); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to update %s", f.path)
	}
	return added, nil
}
