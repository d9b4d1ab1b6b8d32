// Package manifest reads the optional project manifest, icicle.yml, which
// declares the project's toolchain and named scripts to run with it.
package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultShell runs scripts when the manifest does not name one
const DefaultShell = "/bin/bash"

// FilePattern matches manifest file names (icicle.yml, icicle.yaml, any case)
var FilePattern = regexp.MustCompile(`(?i)^icicle\.ya?ml$`)

// Manifest is the parsed icicle.yml
type Manifest struct {
	Toolchain string            `yaml:"toolchain"`
	Shell     string            `yaml:"shell"`
	Scripts   map[string]string `yaml:"scripts"`

	// Path is the file the manifest was read from
	Path string `yaml:"-"`
}

// Find returns the manifest path in dir. ok is false when there is none.
func Find(fsys types.FS, dir string) (path string, ok bool, err error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrIO, "failed to read directory '%s'", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !FilePattern.MatchString(entry.Name()) {
			continue
		}
		return filepath.Join(dir, entry.Name()), true, nil
	}
	return "", false, nil
}

// Load parses the manifest at path
func Load(fsys types.FS, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read manifest '%s'", path).
			WithDetail(errors.DetailPath, path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "failed to parse manifest '%s'", path).
			WithDetail(errors.DetailPath, path)
	}

	m.Path = path
	m.Toolchain = strings.TrimSpace(m.Toolchain)
	if m.Shell == "" {
		m.Shell = DefaultShell
	}
	if m.Scripts == nil {
		m.Scripts = map[string]string{}
	}
	return &m, nil
}

// LoadFrom finds and parses the manifest in dir. ok is false when dir has none.
func LoadFrom(fsys types.FS, dir string) (*Manifest, bool, error) {
	path, ok, err := Find(fsys, dir)
	if err != nil || !ok {
		return nil, false, err
	}
	m, err := Load(fsys, path)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// ScriptNames returns the declared script names, sorted
func (m *Manifest) ScriptNames() []string {
	names := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
