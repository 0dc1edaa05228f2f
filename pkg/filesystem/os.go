package filesystem

import (
	"github.com/spf13/afero"
)

// NewOS creates the OS-backed filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory creates an in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}
