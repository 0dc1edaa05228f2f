// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/crules/pkg/ui/display"
	"github.com/mattn/go-runewidth"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a display result as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.LanguageList:
		return r.write(FormatLanguages(v))
	case *display.StatusReport:
		return r.write(FormatStatus(v))
	case *display.Document:
		content := v.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		return r.write(content)
	case *display.MatchResult:
		return r.write(FormatMatches(v))
	case *display.RunSummary:
		return r.write(FormatRun(v))
	case *display.SetupSummary:
		return r.write(FormatSetup(v))
	default:
		return r.write(fmt.Sprintf("%+v\n", result))
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", display.ErrorText(err))
	for _, path := range display.MissingFiles(err) {
		fmt.Fprintf(&b, "  missing: %s\n", path)
	}
	if hint := display.Suggestion(err); hint != "" {
		fmt.Fprintf(&b, "Hint: %s\n", hint)
	}
	return r.write(b.String())
}

// RenderMessage renders a message as plain text
func (r *Renderer) RenderMessage(msg display.Message) error {
	return r.write(MessageLine(msg) + "\n")
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}

// MessageLine prefixes warnings and errors with their level
func MessageLine(msg display.Message) string {
	switch msg.Level {
	case display.LevelWarning:
		return "Warning: " + msg.Text
	case display.LevelError:
		return "Error: " + msg.Text
	default:
		return msg.Text
	}
}

// FormatLanguages lists languages as "- <id> (cursor.<id>)"
func FormatLanguages(list *display.LanguageList) string {
	if len(list.Languages) == 0 {
		return fmt.Sprintf("No language rules found in %s\n", list.Directory)
	}

	var b strings.Builder
	b.WriteString("Available language rules:\n")
	for _, lang := range list.Languages {
		fmt.Fprintf(&b, "- %s (%s)\n", lang.ID, lang.File)
	}
	return b.String()
}

// FormatStatus renders the status report as aligned label/value lines
func FormatStatus(report *display.StatusReport) string {
	rows := [][2]string{
		{"Mode", report.Mode},
		{"Config file", pathState(report.ConfigFile)},
		{"Global rules", pathState(report.GlobalRules)},
		{"Language rules", pathState(report.LanguageDir)},
		{"Languages", strings.Join(report.Languages, ", ")},
		{"Output", pathState(report.Output)},
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s  %s\n", PadRight(row[0]+":", 16), row[1])
	}

	if len(report.RuleFiles) > 0 {
		b.WriteString("\nRule files:\n")
		b.WriteString(formatRuleFiles(report.RuleFiles))
	}
	return b.String()
}

// FormatMatches lists the rule files applying to a path
func FormatMatches(result *display.MatchResult) string {
	if len(result.Files) == 0 {
		return fmt.Sprintf("No rule files apply to %s\n", result.Target)
	}
	return fmt.Sprintf("Rule files applying to %s:\n", result.Target) + formatRuleFiles(result.Files)
}

// FormatRun summarizes a generation run
func FormatRun(summary *display.RunSummary) string {
	var b strings.Builder
	for _, msg := range summary.Messages {
		b.WriteString(MessageLine(msg) + "\n")
	}
	if summary.Cancelled {
		b.WriteString("Operation cancelled\n")
		return b.String()
	}
	if summary.BackupPath != "" {
		fmt.Fprintf(&b, "Backed up existing rules to %s\n", summary.BackupPath)
	}
	for _, path := range summary.Written {
		fmt.Fprintf(&b, "Wrote %s\n", path)
	}
	if len(summary.IgnoreAdded) > 0 {
		fmt.Fprintf(&b, "Added to ignore file: %s\n", strings.Join(summary.IgnoreAdded, ", "))
	}
	return b.String()
}

// FormatSetup summarizes a setup run
func FormatSetup(summary *display.SetupSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Setup of %s\n", summary.ConfigDir)
	for _, group := range []struct {
		label string
		paths []string
	}{
		{"created", summary.Created},
		{"updated", summary.Updated},
		{"kept", summary.Skipped},
		{"failed", summary.Failed},
	} {
		for _, path := range group.paths {
			fmt.Fprintf(&b, "  %s %s\n", PadRight(group.label, 8), path)
		}
	}
	return b.String()
}

func formatRuleFiles(files []display.RuleFile) string {
	width := 0
	for _, f := range files {
		if w := runewidth.StringWidth(f.ID); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, f := range files {
		line := "- " + PadRight(f.ID, width)
		if f.Description != "" {
			line += "  " + f.Description
		}
		if len(f.Globs) > 0 {
			line += " [" + strings.Join(f.Globs, ", ") + "]"
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}

func pathState(state display.PathState) string {
	if state.Exists {
		return state.Path
	}
	return state.Path + " (missing)"
}

// PadRight pads s with spaces to width display columns
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
