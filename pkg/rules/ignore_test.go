// Test Type: Unit Test
// Description: Tests for ignore-file entries

package rules_test

import (
	"testing"

	"github.com/arthur-debert/crules/pkg/rules"
	"github.com/arthur-debert/crules/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreFile_Entry(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	ignore := rules.NewIgnoreFile(env.FS, env.ProjectPath(".gitignore"))

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"file_beside_ignore_file", env.ProjectPath(".cursorrules"), ".cursorrules"},
		{"backup", env.ProjectPath(".cursorrules.bak"), ".cursorrules.bak"},
		{"glob_in_subdirectory", env.ProjectPath(".cursor") + "/rules/*.mdc", ".cursor/rules/*.mdc"},
		{"relative_target_kept", "notes.txt", "notes.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ignore.Entry(tt.target))
		})
	}
}

func TestIgnoreFile_EnsureRelativeEntries(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	ignorePath := env.ProjectPath(".gitignore")
	ignore := rules.NewIgnoreFile(env.FS, ignorePath)

	added, err := ignore.Ensure([]string{
		ignore.Entry(env.ProjectPath(".cursorrules")),
		ignore.Entry(env.ProjectPath(".cursorrules")),
	}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{".cursorrules"}, added)
	testutil.AssertFileContent(t, env.FS, ignorePath, "# Cursor specific\n.cursorrules\n")
}
