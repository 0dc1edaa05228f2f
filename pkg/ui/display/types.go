// Package display defines the results crules commands hand to renderers.
package display

// Level classifies a message
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a single line of feedback
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Language is an available language rule source
type Language struct {
	ID   string `json:"id"`
	File string `json:"file"`
	Path string `json:"path"`
}

// LanguageList is the result of crules list
type LanguageList struct {
	Directory string     `json:"directory"`
	Languages []Language `json:"languages"`
}

// RuleFile describes a file in the managed rules directory
type RuleFile struct {
	ID          string   `json:"id"`
	Path        string   `json:"path"`
	Description string   `json:"description,omitempty"`
	Globs       []string `json:"globs,omitempty"`
}

// PathState records whether a path exists
type PathState struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// StatusReport is the result of crules status
type StatusReport struct {
	Mode        string     `json:"mode"`
	ConfigFile  PathState  `json:"config_file"`
	GlobalRules PathState  `json:"global_rules"`
	LanguageDir PathState  `json:"language_dir"`
	Languages   []string   `json:"languages"`
	Output      PathState  `json:"output"`
	RuleFiles   []RuleFile `json:"rule_files"`
}

// Document is a rule source shown to the user
type Document struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// MatchResult lists the rule files applying to a path
type MatchResult struct {
	Target string     `json:"target"`
	Files  []RuleFile `json:"files"`
}

// RunSummary reports a rules generation run
type RunSummary struct {
	Mode        string    `json:"mode"`
	Languages   []string  `json:"languages"`
	Written     []string  `json:"written"`
	BackupPath  string    `json:"backup_path,omitempty"`
	IgnoreAdded []string  `json:"ignore_added,omitempty"`
	Cancelled   bool      `json:"cancelled"`
	Messages    []Message `json:"messages,omitempty"`
}

// SetupSummary reports what setup did
type SetupSummary struct {
	ConfigDir string   `json:"config_dir"`
	Created   []string `json:"created"`
	Updated   []string `json:"updated"`
	Skipped   []string `json:"skipped"`
	Failed    []string `json:"failed"`
}
