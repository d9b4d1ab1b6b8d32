// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/style"
	"github.com/arthur-debert/icicle/pkg/types"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.ListResult:
		return r.renderList(v)
	case *types.CurrentResult:
		line := style.VersionStyle.Render(v.Version)
		if v.Via != "" {
			line += " " + style.MutedStyle.Render("(via "+v.Via+")")
		}
		return r.println(line)
	case *types.CommandResult:
		if v.Message == "" {
			return nil
		}
		indicator := style.SuccessIndicator
		if !v.Changed {
			indicator = style.MutedStyle.Render("•")
		}
		return r.println(indicator + " " + v.Message)
	case *types.EnvResult:
		// Shell code is evaluated by the caller and must stay unstyled
		_, err := io.WriteString(r.output, v.Script)
		return err
	case *types.ScriptResult:
		return nil
	case *types.PruneResult:
		for _, path := range v.Removed {
			if err := r.println(style.Indent(style.PathStyle.Render(path), 1)); err != nil {
				return err
			}
		}
		summary := fmt.Sprintf("%d removed, %d kept", len(v.Removed), v.Kept)
		return r.println(style.SuccessIndicator + " " + summary)
	case *types.GenConfigResult:
		if len(v.FilesWritten) == 0 {
			_, err := io.WriteString(r.output, v.ConfigContent)
			return err
		}
		for _, path := range v.FilesWritten {
			if err := r.println(style.SuccessIndicator + " Wrote " + style.PathStyle.Render(path)); err != nil {
				return err
			}
		}
		return nil
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderList(v *types.ListResult) error {
	if len(v.Toolchains) == 0 {
		return r.println(style.MutedStyle.Render("No toolchains installed"))
	}

	var b strings.Builder
	for _, tc := range v.Toolchains {
		marker := style.ListIndicator
		if tc.Current {
			marker = style.CurrentIndicator
		}
		b.WriteString(marker + " " + style.VersionStyle.Render(tc.Version))
		if tc.Default {
			b.WriteString(" " + style.DefaultStyle.Render("(default)"))
		}
		if tc.Current {
			b.WriteString(" " + style.CurrentStyle.Render("(current)"))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error without its code
func (r *Renderer) RenderError(err error) error {
	return r.println(style.ErrorIndicator + " " + style.ErrorStyle.Render("Error:") + " " + errors.UserMessage(err))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	if msg == "" {
		return nil
	}
	return r.println(msg)
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}
