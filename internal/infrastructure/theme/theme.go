// Package theme provides the reader's color palettes, built in or
// loaded from YAML files in the user's themes directory.
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultName is used when no theme is configured or loading fails.
const DefaultName = "dracula"

// Theme is one color palette.
type Theme struct {
	Name       string `yaml:"name"`
	Primary    string `yaml:"primary"`
	Accent     string `yaml:"accent"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Dark       bool   `yaml:"dark"`
}

var builtins = map[string]Theme{
	"adwaita-dark": {
		Name:       "adwaita-dark",
		Primary:    "#303030",
		Accent:     "#3584e4",
		Foreground: "#eeeeec",
		Background: "#242424",
		Dark:       true,
	},
	"adwaita-light": {
		Name:       "adwaita-light",
		Primary:    "#ebebeb",
		Accent:     "#3584e4",
		Foreground: "#3d3d3d",
		Background: "#fafafa",
		Dark:       false,
	},
	"dracula": {
		Name:       "dracula",
		Primary:    "#44475a",
		Accent:     "#bd93f9",
		Foreground: "#f8f8f2",
		Background: "#282a36",
		Dark:       true,
	},
	"nord": {
		Name:       "nord",
		Primary:    "#434c5e",
		Accent:     "#88c0d0",
		Foreground: "#d8dee9",
		Background: "#2e3440",
		Dark:       true,
	},
	"osaka-jade": {
		Name:       "osaka-jade",
		Primary:    "#003f4a",
		Accent:     "#2aa198",
		Foreground: "#93a1a1",
		Background: "#002731",
		Dark:       true,
	},
	"rosepine": {
		Name:       "rosepine",
		Primary:    "#31748f",
		Accent:     "#eb6f92",
		Foreground: "#e0def4",
		Background: "#191724",
		Dark:       true,
	},
}

// Load resolves a theme by name. User files in dir shadow built-ins;
// names that resolve nowhere fall back to the default theme, reported
// through ok so callers can log the substitution once.
func Load(dir, name string) (t Theme, ok bool) {
	if name == "" {
		name = DefaultName
	}
	if t, err := loadFile(dir, name); err == nil {
		return t, true
	}
	if t, found := builtins[name]; found {
		return t, true
	}
	return builtins[DefaultName], false
}

func loadFile(dir, name string) (Theme, error) {
	if dir == "" {
		return Theme{}, os.ErrNotExist
	}
	var data []byte
	var err error
	for _, ext := range []string{".yaml", ".yml"} {
		data, err = os.ReadFile(filepath.Join(dir, name+ext))
		if err == nil {
			break
		}
	}
	if err != nil {
		return Theme{}, err
	}

	// Missing colors inherit from the built-in of the same name, or
	// the default palette for entirely new themes.
	t, found := builtins[name]
	if !found {
		t = builtins[DefaultName]
	}
	t.Name = name
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", name, err)
	}
	return t, nil
}

// Names lists the available themes, built-ins plus user files, sorted.
func Names(dir string) []string {
	set := make(map[string]bool, len(builtins))
	for name := range builtins {
		set[name] = true
	}
	if dir != "" {
		if entries, err := os.ReadDir(dir); err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				base := entry.Name()
				ext := filepath.Ext(base)
				if strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml") {
					set[strings.TrimSuffix(base, ext)] = true
				}
			}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
