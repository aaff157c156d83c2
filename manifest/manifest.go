// Package manifest handles tamc.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/chazu/tamc/tam"
)

// FileName is the name of the project configuration file.
const FileName = "tamc.toml"

// Manifest represents a tamc.toml project configuration.
type Manifest struct {
	Project Project `toml:"project"`
	Build   Build   `toml:"build"`
	Codegen Codegen `toml:"codegen"`

	// Dir is the directory containing the tamc.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name string `toml:"name"`
}

// Build names the files a compilation reads and writes.
type Build struct {
	Tree   string `toml:"tree"`
	Object string `toml:"object"`
	Table  string `toml:"table"`
}

// Codegen configures the code generator.
type Codegen struct {
	CodeLimit    int  `toml:"code-limit"`
	TableDetails bool `toml:"table-details"`
}

// Load parses a tamc.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	if m.Codegen.CodeLimit < 0 || m.Codegen.CodeLimit > tam.CodeLimit {
		return nil, fmt.Errorf("%s: code-limit %d out of range 0..%d", path, m.Codegen.CodeLimit, tam.CodeLimit)
	}

	// Defaults
	if m.Build.Object == "" {
		m.Build.Object = "obj.tam"
	}
	if m.Codegen.CodeLimit == 0 {
		m.Codegen.CodeLimit = tam.CodeLimit
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a tamc.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// TreePath returns the absolute path of the input tree, or "" if unset.
func (m *Manifest) TreePath() string {
	return m.resolve(m.Build.Tree)
}

// ObjectPath returns the absolute path of the object program.
func (m *Manifest) ObjectPath() string {
	return m.resolve(m.Build.Object)
}

// TablePath returns the absolute path of the entity table, or "" if unset.
func (m *Manifest) TablePath() string {
	return m.resolve(m.Build.Table)
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, p)
}
