// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/crules/pkg/ui/display"
	"github.com/arthur-debert/crules/pkg/ui/text"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
	// Width wraps markdown documents; zero keeps glamour's default
	Width int
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a display result with terminal styling
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.LanguageList:
		return r.renderLanguages(v)
	case *display.StatusReport:
		return r.renderStatus(v)
	case *display.Document:
		return r.write(r.renderMarkdown(v.Content))
	case *display.MatchResult:
		return r.renderMatches(v)
	case *display.RunSummary:
		return r.renderRun(v)
	case *display.SetupSummary:
		return r.renderSetup(v)
	default:
		return text.New(r.output).RenderResult(result)
	}
}

// RenderError renders an error in the error style, listing missing files
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("✗ "+display.ErrorText(err)) + "\n")
	for _, path := range display.MissingFiles(err) {
		b.WriteString("  " + MutedStyle.Render("missing:") + " " + PathStyle.Render(path) + "\n")
	}
	if hint := display.Suggestion(err); hint != "" {
		b.WriteString(WarningStyle.Render("→ "+hint) + "\n")
	}
	return r.write(b.String())
}

// RenderMessage renders a message styled by its level
func (r *Renderer) RenderMessage(msg display.Message) error {
	return r.write(messageLine(msg) + "\n")
}

func messageLine(msg display.Message) string {
	switch msg.Level {
	case display.LevelSuccess:
		return SuccessStyle.Render("✓ " + msg.Text)
	case display.LevelWarning:
		return WarningStyle.Render("! " + msg.Text)
	case display.LevelError:
		return ErrorStyle.Render("✗ " + msg.Text)
	default:
		return msg.Text
	}
}

func (r *Renderer) renderLanguages(list *display.LanguageList) error {
	if len(list.Languages) == 0 {
		return r.write(WarningStyle.Render("No language rules found in ") + PathStyle.Render(list.Directory) + "\n")
	}

	data := pterm.TableData{{"Language", "File"}}
	for _, lang := range list.Languages {
		data = append(data, []string{lang.ID, lang.File})
	}
	return r.table(TitleStyle.Render("Available language rules"), data)
}

func (r *Renderer) renderStatus(report *display.StatusReport) error {
	data := pterm.TableData{
		{"Setting", "Value"},
		{"Mode", report.Mode},
		{"Config file", pathState(report.ConfigFile)},
		{"Global rules", pathState(report.GlobalRules)},
		{"Language rules", pathState(report.LanguageDir)},
		{"Languages", strings.Join(report.Languages, ", ")},
		{"Output", pathState(report.Output)},
	}
	if err := r.table(TitleStyle.Render("crules status"), data); err != nil {
		return err
	}

	if len(report.RuleFiles) == 0 {
		return nil
	}
	return r.table("\n"+TitleStyle.Render("Rule files"), ruleFileTable(report.RuleFiles))
}

func (r *Renderer) renderMatches(result *display.MatchResult) error {
	if len(result.Files) == 0 {
		return r.write(MutedStyle.Render("No rule files apply to ") + PathStyle.Render(result.Target) + "\n")
	}
	return r.table(TitleStyle.Render("Rule files applying to ")+PathStyle.Render(result.Target), ruleFileTable(result.Files))
}

func (r *Renderer) renderRun(summary *display.RunSummary) error {
	var b strings.Builder
	for _, msg := range summary.Messages {
		b.WriteString(messageLine(msg) + "\n")
	}
	if summary.Cancelled {
		b.WriteString(WarningStyle.Render("Operation cancelled") + "\n")
		return r.write(b.String())
	}
	if summary.BackupPath != "" {
		b.WriteString(MutedStyle.Render("Backed up existing rules to ") + PathStyle.Render(summary.BackupPath) + "\n")
	}
	for _, path := range summary.Written {
		b.WriteString(SuccessStyle.Render("✓") + " " + PathStyle.Render(path) + "\n")
	}
	if len(summary.IgnoreAdded) > 0 {
		b.WriteString(MutedStyle.Render("Added to ignore file: "+strings.Join(summary.IgnoreAdded, ", ")) + "\n")
	}
	return r.write(b.String())
}

func (r *Renderer) renderSetup(summary *display.SetupSummary) error {
	data := pterm.TableData{{"Result", "Path"}}
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
			data = append(data, []string{group.label, path})
		}
	}
	return r.table(TitleStyle.Render("Setup of ")+PathStyle.Render(summary.ConfigDir), data)
}

// renderMarkdown renders content with glamour, falling back to the raw text
func (r *Renderer) renderMarkdown(content string) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *Renderer) table(title string, data pterm.TableData) error {
	if len(data) <= 1 {
		return r.write(title + "\n")
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return r.write(title + "\n" + rendered + "\n")
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}

func ruleFileTable(files []display.RuleFile) pterm.TableData {
	data := pterm.TableData{{"Rule", "Description", "Globs"}}
	for _, f := range files {
		data = append(data, []string{f.ID, f.Description, strings.Join(f.Globs, ", ")})
	}
	return data
}

func pathState(state display.PathState) string {
	if state.Exists {
		return state.Path
	}
	return state.Path + " " + MutedStyle.Render("(missing)")
}
