// Test Type: Unit Test
// Description: Tests for rule source discovery and validation

package rules_test

import (
	"testing"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/arthur-debert/crules/pkg/rules"
	"github.com/arthur-debert/crules/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ListAvailable(t *testing.T) {
	t.Run("finds_prefixed_files_only", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WithRuleSources("G", map[string]string{"python": "P", "go": "GO"})
		env.WriteFile(env.LanguageDir+"/README.md", "not a rule")
		env.WriteFile(env.LanguageDir+"/cursor.", "empty id")
		require.NoError(t, env.FS.MkdirAll(env.LanguageDir+"/cursor.dir", 0755))

		resolver := rules.NewResolver(env.FS, env.Diags)
		available, err := resolver.ListAvailable(env.LanguageDir)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"go":     paths.LangRuleFile(env.LanguageDir, "go"),
			"python": paths.LangRuleFile(env.LanguageDir, "python"),
		}, available)
	})

	t.Run("missing_directory_is_empty", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		resolver := rules.NewResolver(env.FS, env.Diags)
		available, err := resolver.ListAvailable(env.ProjectPath("nope"))
		require.NoError(t, err)
		assert.Empty(t, available)
	})

	t.Run("file_instead_of_directory", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteFile(env.LanguageDir, "oops")

		_, err := rules.NewResolver(env.FS, env.Diags).ListAvailable(env.LanguageDir)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})
}

func TestResolver_Languages(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithRuleSources("G", map[string]string{"rust": "R", "go": "GO", "python": "P"})

	ids, err := rules.NewResolver(env.FS, env.Diags).Languages(env.LanguageDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "python", "rust"}, ids)
}

func TestResolver_SourcesStopsEarly(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithRuleSources("G", map[string]string{"a": "A", "b": "B", "c": "C"})

	var seen []string
	for id := range rules.NewResolver(env.FS, env.Diags).Sources(env.LanguageDir) {
		seen = append(seen, id)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestResolver_CheckRequired(t *testing.T) {
	t.Run("all_present", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WithRuleSources("G", map[string]string{"python": "P"})

		err := rules.NewResolver(env.FS, env.Diags).CheckRequired(env.GlobalPath, env.LanguageDir, []string{"python"})
		assert.NoError(t, err)
		assert.False(t, env.Diags.HasErrors())
	})

	t.Run("no_languages_needs_only_global", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WithRuleSources("G", nil)

		err := rules.NewResolver(env.FS, env.Diags).CheckRequired(env.GlobalPath, env.LanguageDir, nil)
		assert.NoError(t, err)
	})

	t.Run("reports_every_missing_file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WithRuleSources("G", map[string]string{"python": "P"})
		require.NoError(t, env.FS.Remove(env.GlobalPath))

		err := rules.NewResolver(env.FS, env.Diags).
			CheckRequired(env.GlobalPath, env.LanguageDir, []string{"python", "cobol", "rust"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

		assert.Equal(t, []string{
			env.GlobalPath,
			paths.LangRuleFile(env.LanguageDir, "cobol"),
			paths.LangRuleFile(env.LanguageDir, "rust"),
		}, rules.MissingPaths(err))
		assert.Len(t, env.Diags.Filter(logging.LevelError), 3)
	})

	t.Run("rejects_path_like_identifiers", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WithRuleSources("G", nil)

		err := rules.NewResolver(env.FS, env.Diags).CheckRequired(env.GlobalPath, env.LanguageDir, []string{"../etc"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Nil(t, rules.MissingPaths(err))
	})

	t.Run("rejects_global_as_language", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WithRuleSources("G", map[string]string{"global": "not global"})

		err := rules.NewResolver(env.FS, env.Diags).CheckRequired(env.GlobalPath, env.LanguageDir, []string{"go", rules.GlobalID})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Len(t, env.Diags.Filter(logging.LevelError), 1)
	})
}
