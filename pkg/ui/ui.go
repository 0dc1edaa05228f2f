// Package ui renders command results in terminal, plain text or JSON form.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/crules/pkg/ui/display"
	"github.com/arthur-debert/crules/pkg/ui/json"
	"github.com/arthur-debert/crules/pkg/ui/terminal"
	"github.com/arthur-debert/crules/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders one of the display result types
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a single line of feedback
	RenderMessage(msg display.Message) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output when it is a file and falls back to plain text
// otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
