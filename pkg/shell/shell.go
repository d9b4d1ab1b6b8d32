// Package shell renders the statements `icicle env` prints for a shell to
// evaluate.
package shell

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
)

// Shell identifies an export syntax
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
)

// Supported lists the accepted shell names
func Supported() []string {
	names := []string{string(Bash), string(Fish), string(Zsh)}
	sort.Strings(names)
	return names
}

// Parse maps a shell name, or the path of a shell binary, to a Shell.
// An empty name means bash.
func Parse(name string) (Shell, error) {
	if name == "" {
		return Bash, nil
	}
	switch Shell(strings.ToLower(filepath.Base(name))) {
	case Bash, "sh":
		return Bash, nil
	case Zsh:
		return Zsh, nil
	case Fish:
		return Fish, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unsupported shell '%s' (supported: %s)",
		name, strings.Join(Supported(), ", "))
}

// Export is one variable assignment
type Export struct {
	Name  string
	Value string
	// Prepend adds Value in front of the variable's existing value (PATH style)
	Prepend bool
}

// Render formats exports in the given shell's syntax, one per line, in order.
func Render(sh Shell, exports []Export) (string, error) {
	var b strings.Builder
	for _, e := range exports {
		line, err := renderOne(sh, e)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func renderOne(sh Shell, e Export) (string, error) {
	switch sh {
	case Bash, Zsh:
		value := posixQuote(e.Value)
		if e.Prepend {
			return fmt.Sprintf("export %s=%s:\"$%s\"", e.Name, value, e.Name), nil
		}
		return fmt.Sprintf("export %s=%s", e.Name, value), nil
	case Fish:
		value := fishQuote(e.Value)
		if e.Prepend {
			return fmt.Sprintf("set -gx %s %s $%s", e.Name, value, e.Name), nil
		}
		return fmt.Sprintf("set -gx %s %s", e.Name, value), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported shell '%s'", sh)
	}
}

// posixQuote wraps s in single quotes; an embedded quote becomes '\''
func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// fishQuote wraps s in single quotes. Inside them fish treats backslash
// as an escape for itself and for the quote.
func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// SessionExports builds the exports for a new session: the session link,
// the icicle home, then each PATH entry prepended in turn.
func SessionExports(shellPathVar, shellPath, homeVar, home string, pathEntries []string) []Export {
	exports := []Export{
		{Name: shellPathVar, Value: shellPath},
		{Name: homeVar, Value: home},
	}
	for _, entry := range pathEntries {
		exports = append(exports, Export{Name: "PATH", Value: entry, Prepend: true})
	}
	return exports
}
