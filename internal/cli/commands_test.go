package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/crules/internal/cli"
	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	configDir  string
	projectDir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	root := t.TempDir()
	env := &cliEnv{
		configDir:  filepath.Join(root, "config"),
		projectDir: filepath.Join(root, "project"),
	}
	require.NoError(t, os.MkdirAll(env.projectDir, 0755))

	t.Setenv("CRULES_CONFIG_DIR", env.configDir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("NO_COLOR", "1")
	return env
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"-C", e.projectDir, "--format", "text"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (e *cliEnv) read(t *testing.T, elems ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{e.projectDir}, elems...)...))
	require.NoError(t, err)
	return string(data)
}

func TestSetupAndList(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "--setup")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.FileExists(t, filepath.Join(env.configDir, "cursorrules"))
	assert.FileExists(t, filepath.Join(env.configDir, "config.yaml"))

	out, err = env.run(t, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "- go (cursor.go)\n")
	assert.Contains(t, out, "- python (cursor.python)\n")

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "- rust (cursor.rust)\n")
}

func TestGenerateDirectoryMode(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "setup")
	require.NoError(t, err)

	out, err := env.run(t, "python")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")

	assert.Contains(t, env.read(t, ".cursor", "rules", "global.mdc"), "description: Global cursor rules")
	assert.Contains(t, env.read(t, ".cursor", "rules", "python.mdc"), "description: Rules for python development")
	assert.Equal(t, "# Cursor specific\n.cursor/rules/*.mdc\n", env.read(t, ".gitignore"))

	_, err = env.run(t, "-f", "python")
	require.NoError(t, err)
	assert.Equal(t, "# Cursor specific\n.cursor/rules/*.mdc\n", env.read(t, ".gitignore"))

	out, err = env.run(t, "match", "src/app.python")
	require.NoError(t, err)
	assert.Contains(t, out, "- python")
}

func TestGenerateLegacyMode(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "setup")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(env.projectDir, ".gitignore"), []byte("node_modules\n"), 0644))

	_, err = env.run(t, "--legacy", "go")
	require.NoError(t, err)
	first := env.read(t, ".cursorrules")
	assert.Contains(t, first, "# Rules for go")
	assert.Equal(t, "node_modules\n\n# Cursor specific\n.cursorrules\n.cursorrules.bak\n", env.read(t, ".gitignore"))

	out, err := env.run(t, "--legacy", "go", "python")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.Equal(t, first, env.read(t, ".cursorrules"))

	_, err = env.run(t, "--legacy", "-f", "go", "python")
	require.NoError(t, err)
	assert.Equal(t, first, env.read(t, ".cursorrules.bak"))
	assert.Equal(t, "node_modules\n\n# Cursor specific\n.cursorrules\n.cursorrules.bak\n", env.read(t, ".gitignore"))
	assert.Contains(t, env.read(t, ".cursorrules"), "# Rules for python")
}

func TestErrors(t *testing.T) {
	t.Run("no_languages", func(t *testing.T) {
		env := newCLIEnv(t)

		out, err := env.run(t)
		require.Error(t, err)
		assert.True(t, cli.IsRendered(err))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Contains(t, out, "Error: please specify at least one language")
	})

	t.Run("suggests_setup", func(t *testing.T) {
		env := newCLIEnv(t)

		out, err := env.run(t, "go")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
		assert.Contains(t, out, "Hint: run 'crules --setup'")
	})

	t.Run("conflicting_modes", func(t *testing.T) {
		env := newCLIEnv(t)

		_, err := env.run(t, "--legacy", "--dir", "go")
		require.Error(t, err)
		assert.False(t, cli.IsRendered(err))
	})
}

func TestGenerateRejectsGlobalLanguage(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "setup")
	require.NoError(t, err)

	_, err = env.run(t, "global")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.NoFileExists(t, filepath.Join(env.projectDir, ".cursor", "rules", "global.mdc"))
}

func TestStatusJSON(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "setup")
	require.NoError(t, err)
	_, err = env.run(t, "go")
	require.NoError(t, err)

	out, err := env.run(t, "status", "--format", "json")
	require.NoError(t, err)

	var report display.StatusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "directory", report.Mode)
	assert.True(t, report.GlobalRules.Exists)
	assert.Len(t, report.RuleFiles, 2)
}

func TestShowVersionAndGenConfig(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "setup")
	require.NoError(t, err)

	out, err := env.run(t, "show", "global")
	require.NoError(t, err)
	assert.Contains(t, out, "# Global rules")

	out, err = env.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "crules version dev")

	out, err = env.run(t, "gen-config")
	require.NoError(t, err)
	assert.Contains(t, out, "# crules configuration")
	assert.Contains(t, out, "# legacy_mode: false")

	_, err = env.run(t, "gen-config", "-w")
	require.Error(t, err, "config.yaml was written by setup")

	out, err = env.run(t, "gen-config", "-w", "-f")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration")
}

func TestCompletion(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "crules")

	_, err = env.run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "  modes\n")
	assert.Contains(t, out, "  --force\n")

	out, err = env.run(t, "help", "legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "single merged .cursorrules file")
}
