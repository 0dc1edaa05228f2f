package templates

import (
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProvider(t *testing.T) {
	p := Default()

	ids, err := p.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "java", "javascript", "python", "rust", "typescript"}, ids)

	global, err := p.Get(GlobalName)
	require.NoError(t, err)
	assert.Contains(t, global, "# Global rules")

	python, err := p.Get("python")
	require.NoError(t, err)
	assert.Contains(t, python, "Python")
}

func TestFSProvider(t *testing.T) {
	fsys := fstest.MapFS{
		"global.md":   {Data: []byte("G")},
		"lang/zig.md": {Data: []byte("zig rules")},
		"lang/c.md":   {Data: []byte("c rules")},
		"lang/README": {Data: []byte("not a rule")},
		"lang/.md":    {Data: []byte("no identifier")},
		"lang/d.md/x": {Data: []byte("directory")},
	}
	p := New(fsys)

	ids, err := p.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "zig"}, ids)

	got, err := p.Get("zig")
	require.NoError(t, err)
	assert.Equal(t, "zig rules", got)

	_, err = p.Get("cobol")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
}

func TestFSProviderWithoutLanguages(t *testing.T) {
	p := New(fstest.MapFS{"global.md": {Data: []byte("G")}})

	_, err := p.Languages()
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
}
