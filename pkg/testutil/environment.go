package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// FileTree maps relative paths to file contents
type FileTree map[string]string

// TestEnvironment provides a config directory and a project directory on a
// single filesystem
type TestEnvironment struct {
	// ConfigDir holds the global rules file and the language directory
	ConfigDir   string
	GlobalPath  string
	LanguageDir string
	// ProjectDir plays the role of the working directory
	ProjectDir string

	FS    afero.Fs
	Diags *logging.Diagnostics
	Type  EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType, Diags: &logging.Diagnostics{}}

	root := "/virtual"
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		root = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.ConfigDir = filepath.Join(root, "config", paths.VendorDirName, paths.AppDirName)
	env.GlobalPath = filepath.Join(env.ConfigDir, paths.GlobalRulesFileName)
	env.LanguageDir = filepath.Join(env.ConfigDir, paths.LangRulesDirName)
	env.ProjectDir = filepath.Join(root, "project")

	for _, dir := range []string{env.ConfigDir, env.ProjectDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return env
}

// WithFileTree creates the files of tree under the project directory
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.ProjectDir, tree)
}

// WithRuleSources writes the global rules document and one cursor.<id>
// file per language
func (env *TestEnvironment) WithRuleSources(global string, languages map[string]string) {
	env.t.Helper()

	env.WriteFile(env.GlobalPath, global)
	ids := make([]string, 0, len(languages))
	for id := range languages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		env.WriteFile(paths.LangRuleFile(env.LanguageDir, id), languages[id])
	}
}

// ProjectPath joins elems onto the project directory
func (env *TestEnvironment) ProjectPath(elems ...string) string {
	return filepath.Join(append([]string{env.ProjectDir}, elems...)...)
}

// WriteFile writes content to path, creating parent directories
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(env.FS, path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test if it is missing
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := afero.ReadFile(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func createFileTree(t *testing.T, fsys afero.Fs, basePath string, tree FileTree) {
	t.Helper()
	for rel, content := range tree {
		path := filepath.Join(basePath, rel)
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}
