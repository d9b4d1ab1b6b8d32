// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/types"
)

// Renderer provides plain text output without colors or styling. The
// output of list and current is stable enough for scripts to parse.
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.ListResult:
		for _, tc := range v.Toolchains {
			line := "* " + tc.Version
			if tc.Default {
				line += " (default)"
			}
			if _, err := fmt.Fprintln(r.output, line); err != nil {
				return err
			}
		}
		return nil
	case *types.CurrentResult:
		_, err := fmt.Fprintln(r.output, v.Version)
		return err
	case *types.CommandResult:
		return r.RenderMessage(v.Message)
	case *types.EnvResult:
		_, err := io.WriteString(r.output, v.Script)
		return err
	case *types.ScriptResult:
		// The script wrote its own output
		return nil
	case *types.PruneResult:
		for _, path := range v.Removed {
			if _, err := fmt.Fprintf(r.output, "Removed %s\n", path); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(r.output, "%d removed, %d kept\n", len(v.Removed), v.Kept)
		return err
	case *types.GenConfigResult:
		if len(v.FilesWritten) == 0 {
			_, err := io.WriteString(r.output, v.ConfigContent)
			return err
		}
		_, err := fmt.Fprintf(r.output, "Wrote %s\n", strings.Join(v.FilesWritten, ", "))
		return err
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %s\n", errors.UserMessage(err))
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	if msg == "" {
		return nil
	}
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
