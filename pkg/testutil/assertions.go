package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

// AssertFileContent checks that path exists and holds exactly expected
func AssertFileContent(t *testing.T, fsys afero.Fs, path, expected string) {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if assert.NoError(t, err, "reading %s", path) {
		assert.Equal(t, expected, string(data), "content of %s", path)
	}
}

// AssertFileExists checks that path exists
func AssertFileExists(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	exists, err := afero.Exists(fsys, path)
	assert.NoError(t, err)
	assert.True(t, exists, "expected %s to exist", path)
}

// AssertNoFile checks that path does not exist
func AssertNoFile(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	exists, err := afero.Exists(fsys, path)
	assert.NoError(t, err)
	assert.False(t, exists, "expected %s not to exist", path)
}
