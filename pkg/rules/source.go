package rules

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalID identifies the global rules source
const GlobalID = "global"

const frontMatterDelim = "---"

// Metadata is the front matter written above a managed rule file
type Metadata struct {
	Description string   `yaml:"description,omitempty"`
	Globs       []string `yaml:"globs,omitempty"`
	// Extra holds any additional keys found in, or destined for, the header
	Extra map[string]interface{} `yaml:",inline"`
}

// Source is one rule document
type Source struct {
	ID       string
	Content  string
	Metadata *Metadata
}

// GlobalMetadata returns the header written for the global source
func GlobalMetadata() *Metadata {
	return &Metadata{
		Description: "Global cursor rules",
		Globs:       []string{"*"},
	}
}

// LanguageMetadata returns the header written for a language source
func LanguageMetadata(id string) *Metadata {
	return &Metadata{
		Description: fmt.Sprintf("Rules for %s development", id),
		Globs:       []string{"*." + id},
	}
}

// Render serializes the source as it is stored on disk. Without metadata
// the content is written as is.
func (s Source) Render() ([]byte, error) {
	if s.Metadata == nil {
		return []byte(s.Content), nil
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.Metadata); err != nil {
		return nil, fmt.Errorf("failed to encode metadata for %s: %w", s.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode metadata for %s: %w", s.ID, err)
	}

	buf.WriteString(frontMatterDelim + "\n")
	buf.WriteString(s.Content)
	return buf.Bytes(), nil
}

// ParseSource splits a stored rule file into its metadata and content. Files
// without a front matter block return nil metadata.
func ParseSource(id string, data []byte) (Source, error) {
	text := string(data)
	src := Source{ID: id, Content: text}

	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return src, nil
	}

	rest := text[len(frontMatterDelim)+1:]
	var header string
	switch {
	case strings.HasPrefix(rest, frontMatterDelim+"\n"):
		header, rest = "", rest[len(frontMatterDelim)+1:]
	default:
		end := strings.Index(rest, "\n"+frontMatterDelim+"\n")
		if end < 0 {
			return src, fmt.Errorf("unterminated front matter in %s", id)
		}
		header = rest[:end+1]
		rest = rest[end+len(frontMatterDelim)+2:]
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return src, fmt.Errorf("invalid front matter in %s: %w", id, err)
	}

	src.Metadata = &meta
	src.Content = rest
	return src, nil
}
