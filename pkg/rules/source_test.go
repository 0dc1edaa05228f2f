// Test Type: Unit Test
// Description: Tests for rule file front matter

package rules_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/crules/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_RenderAndParse(t *testing.T) {
	src := rules.Source{
		ID:       "python",
		Content:  "Use type hints.\n",
		Metadata: rules.LanguageMetadata("python"),
	}
	src.Metadata.Extra = map[string]interface{}{"alwaysApply": false}

	data, err := src.Render()
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "description: Rules for python development")
	assert.Contains(t, text, "alwaysApply: false")
	assert.True(t, strings.HasSuffix(text, "---\nUse type hints.\n"))

	parsed, err := rules.ParseSource("python", data)
	require.NoError(t, err)
	require.NotNil(t, parsed.Metadata)
	assert.Equal(t, "Rules for python development", parsed.Metadata.Description)
	assert.Equal(t, []string{"*.python"}, parsed.Metadata.Globs)
	assert.Equal(t, false, parsed.Metadata.Extra["alwaysApply"])
	assert.Equal(t, "Use type hints.\n", parsed.Content)
}

func TestSource_RenderWithoutMetadata(t *testing.T) {
	data, err := rules.Source{ID: "raw", Content: "as is"}.Render()
	require.NoError(t, err)
	assert.Equal(t, "as is", string(data))
}

func TestParseSource(t *testing.T) {
	t.Run("no_front_matter", func(t *testing.T) {
		src, err := rules.ParseSource("x", []byte("just text\n"))
		require.NoError(t, err)
		assert.Nil(t, src.Metadata)
		assert.Equal(t, "just text\n", src.Content)
	})

	t.Run("empty_front_matter", func(t *testing.T) {
		src, err := rules.ParseSource("x", []byte("---\n---\nbody"))
		require.NoError(t, err)
		require.NotNil(t, src.Metadata)
		assert.Empty(t, src.Metadata.Description)
		assert.Equal(t, "body", src.Content)
	})

	t.Run("unterminated", func(t *testing.T) {
		src, err := rules.ParseSource("x", []byte("---\ndescription: d\nbody"))
		assert.Error(t, err)
		assert.Nil(t, src.Metadata)
	})

	t.Run("global_metadata", func(t *testing.T) {
		data, err := rules.Source{ID: rules.GlobalID, Content: "G\n", Metadata: rules.GlobalMetadata()}.Render()
		require.NoError(t, err)

		src, err := rules.ParseSource(rules.GlobalID, data)
		require.NoError(t, err)
		assert.Equal(t, "Global cursor rules", src.Metadata.Description)
		assert.Equal(t, []string{"*"}, src.Metadata.Globs)
	})
}
