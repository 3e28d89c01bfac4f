// Package preset handles loading built-in and user batch presets.
package preset

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/anfive/servizio-cli/internal/batch"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Preset describes how a delimited results file is laid out.
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Delimiter   string `yaml:"delimiter"`
	HasHeaders  bool   `yaml:"has_headers"`
	// Column is one-based; zero selects the last column.
	Column      int    `yaml:"column"`
	Placeholder string `yaml:"placeholder"`
}

// LoadBuiltin loads a built-in preset by name.
func LoadBuiltin(name string) (*Preset, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("preset.LoadBuiltin: unknown preset %q: %w", name, err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset.LoadBuiltin: parse %q: %w", name, err)
	}
	return p, nil
}

// LoadFile loads a preset from a YAML file. Unset keys fall back to a comma
// delimiter and the default placeholder.
func LoadFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset.LoadFile: %w", err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset.LoadFile: parse %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = path
	}
	return p, nil
}

func parse(data []byte) (*Preset, error) {
	p := &Preset{Delimiter: ",", Placeholder: batch.DefaultPlaceholder}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	if _, err := p.Options(); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns the names of all available built-in presets.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Options converts the preset into batch options.
func (p *Preset) Options() (batch.Options, error) {
	delim, err := ParseDelimiter(p.Delimiter)
	if err != nil {
		return batch.Options{}, err
	}
	if p.Column < 0 {
		return batch.Options{}, fmt.Errorf("column must be 1 or greater, or 0 for the last column, got %d", p.Column)
	}
	return batch.Options{
		Delimiter:   delim,
		HasHeaders:  p.HasHeaders,
		Column:      p.Column - 1,
		Placeholder: p.Placeholder,
	}, nil
}

// ParseDelimiter accepts a single character, or the escapes \t and "tab".
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}

// Format renders the preset as a short human-readable description.
func Format(p *Preset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "  %s\n", strings.TrimSpace(p.Description))
	}
	column := "last"
	if p.Column > 0 {
		column = fmt.Sprintf("%d", p.Column)
	}
	fmt.Fprintf(&b, "  delimiter=%q headers=%t column=%s placeholder=%q\n",
		p.Delimiter, p.HasHeaders, column, p.Placeholder)
	return b.String()
}
