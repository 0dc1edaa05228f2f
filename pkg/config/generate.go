package config

import (
	"strings"
)

const generatedHeader = `# crules configuration
# Uncomment and edit the settings you want to change.
# Environment variables (CRULES_<SETTING>) override this file.
`

// GetDefaultsContent returns the embedded default settings document
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// GenerateConfigContent generates the configuration file content with commented values
func GenerateConfigContent() string {
	return generatedHeader + "\n" + commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues comments out all non-comment, non-blank lines
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
