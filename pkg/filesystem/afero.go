package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Exists reports whether path exists, ignoring the kind of entry
func Exists(fsys afero.Fs, path string) (bool, error) {
	return afero.Exists(fsys, path)
}

// IsFile reports whether path exists and is a regular file
func IsFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory
func IsDir(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}

// ReadFile reads the whole file, refusing directories
func ReadFile(fsys afero.Fs, name string) ([]byte, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(fsys, name)
}

// WriteFileAtomic replaces name with data. The content is written to a
// temporary sibling first and renamed into place, so readers observe either
// the previous file or the complete new one.
func WriteFileAtomic(fsys afero.Fs, name string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(name)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = fsys.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set mode on %s: %w", tmpName, err)
	}
	if err := fsys.Rename(tmpName, name); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// CopyFile copies src to dst, keeping the permission bits and the
// modification time of src.
func CopyFile(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return fsys.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyDir recursively copies the directory src to dst. dst is removed first
// so the result mirrors src exactly.
func CopyDir(fsys afero.Fs, src, dst string) error {
	if !IsDir(fsys, src) {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrNotExist}
	}
	if err := fsys.RemoveAll(dst); err != nil {
		return err
	}

	return afero.Walk(fsys, src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fsys.MkdirAll(target, info.Mode().Perm()|0700)
		}
		return CopyFile(fsys, path, target)
	})
}
