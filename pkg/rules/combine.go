package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/crules/pkg/paths"
)

// labelPattern matches a block label left over from a previous merge
var labelPattern = regexp.MustCompile(`^#\s*Rules for\s+\S+\s*$`)

// Label returns the line that introduces the block for id
func Label(id string) string {
	return fmt.Sprintf("# Rules for %s", id)
}

// Combine merges the global rules document with the rule file of each
// identifier, in the order given, joined by delimiter. The global block is
// trimmed and unlabeled; every language block carries exactly one label.
// Any read failure aborts the merge.
func (r *Resolver) Combine(globalPath, dir string, ids []string, delimiter string) (string, error) {
	if err := paths.ValidateIdentifiers(ids); err != nil {
		return "", err
	}

	global, err := r.readSource(globalPath)
	if err != nil {
		return "", err
	}

	blocks := make([]string, 0, len(ids)+1)
	blocks = append(blocks, strings.TrimSpace(global))

	for _, id := range ids {
		content, err := r.readSource(paths.LangRuleFile(dir, id))
		if err != nil {
			return "", err
		}
		blocks = append(blocks, NormalizeBlock(id, content, delimiter))
	}

	return strings.Join(blocks, delimiter), nil
}

// NormalizeBlock strips delimiter marker lines and stale labels from content
// and prefixes a single label for id. Normalizing an already normalized
// block returns it unchanged.
func NormalizeBlock(id, content, delimiter string) string {
	markers := delimiterMarkers(delimiter)

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if markers[trimmed] || labelPattern.MatchString(trimmed) {
			continue
		}
		kept = append(kept, line)
	}

	body := strings.TrimSpace(strings.Join(kept, "\n"))
	if body == "" {
		return Label(id)
	}
	return Label(id) + "\n" + body
}

// delimiterMarkers returns the non-blank lines of delimiter, trimmed
func delimiterMarkers(delimiter string) map[string]bool {
	markers := make(map[string]bool)
	for _, line := range strings.Split(delimiter, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			markers[trimmed] = true
		}
	}
	return markers
}
