package topics_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/crules/internal/cli/topics"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"modes.md":         {Data: []byte("# Modes\n\nLegacy and directory.")},
		"option-force.txt": {Data: []byte("Force overwrites without asking.")},
		"notes.json":       {Data: []byte("{}")},
		"nested/globs.txt": {Data: []byte("Glob patterns.")},
	}
}

func TestScan(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := topics.New(topicFS(), topics.Options{})
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"globs", "modes", "option-force"}, tm.ListTopics())

		topic, ok := tm.GetTopic("modes")
		require.True(t, ok)
		assert.Equal(t, "# Modes\n\nLegacy and directory.", topic.Content)
		assert.Equal(t, "modes.md", topic.FilePath)

		_, ok = tm.GetTopic("notes")
		assert.False(t, ok)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := topics.New(topicFS(), topics.Options{Extensions: []string{".json"}})
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := topics.New(topicFS(), topics.Options{})
	require.NoError(t, tm.Scan())

	for _, name := range []string{"force", "--force", "-force", "option-force"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-force", topic.Name)
	}
}

func TestWriteIndex(t *testing.T) {
	tm := topics.New(topicFS(), topics.Options{})
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.WriteIndex(&buf, "crules")

	want := "Available help topics:\n\nGeneral topics:\n  globs\n  modes\n\nOption topics:\n  --force\n\nUse 'crules help <topic>' to read about a specific topic.\n"
	assert.Equal(t, want, buf.String())

	empty := topics.New(fstest.MapFS{}, topics.Options{})
	require.NoError(t, empty.Scan())
	buf.Reset()
	empty.WriteIndex(&buf, "crules")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestInitialize(t *testing.T) {
	rootCmd := &cobra.Command{Use: "crules", Run: func(*cobra.Command, []string) {}}
	rootCmd.AddCommand(&cobra.Command{Use: "status", Short: "Show status", Run: func(*cobra.Command, []string) {}})

	_, err := topics.Initialize(rootCmd, topicFS(), topics.Options{})
	require.NoError(t, err)

	run := func(args ...string) string {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return buf.String()
	}

	assert.Equal(t, "# Modes\n\nLegacy and directory.", run("help", "modes"))
	assert.Contains(t, run("help", "topics"), "  --force\n")
	assert.Contains(t, run("help", "status"), "Show status")
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := topics.NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}
