package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed views.yaml
var defaultViews []byte

// SectionView declares what a section of the admin page hosts.
type SectionView struct {
	Name   string   `yaml:"name"`
	Title  string   `yaml:"title"`
	Charts []string `yaml:"charts"`
	Export bool     `yaml:"export"`
}

type Views struct {
	Initial  string        `yaml:"initial"`
	Sections []SectionView `yaml:"sections"`
	// Programs fills the program dropdown of the intake form.
	Programs []string `yaml:"programs"`
}

// LoadViews reads the view file at path, or the built-in one when path is empty.
func LoadViews(path string) (*Views, error) {
	data := defaultViews
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read views config: %w", err)
		}
		data = b
	}
	return ParseViews(data)
}

func ParseViews(data []byte) (*Views, error) {
	var v Views
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse views config: %w", err)
	}
	if len(v.Sections) == 0 {
		return nil, fmt.Errorf("views config: no sections")
	}
	seen := make(map[string]bool, len(v.Sections))
	for _, s := range v.Sections {
		if s.Name == "" {
			return nil, fmt.Errorf("views config: section without name")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("views config: duplicate section %q", s.Name)
		}
		seen[s.Name] = true
	}
	if v.Initial != "" && !seen[v.Initial] {
		return nil, fmt.Errorf("views config: initial section %q not declared", v.Initial)
	}
	return &v, nil
}

func (v *Views) Section(name string) (SectionView, bool) {
	for _, s := range v.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionView{}, false
}
