package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Project represents the .intogeneric.yaml configuration.
type Project struct {
	// Attributes lists the attribute paths that mark an item for rewriting.
	// Defaults to DefaultAttributes.
	Attributes []string `yaml:"attributes,omitempty"`

	// Extensions lists the file extensions collected when a directory is
	// given on the command line. Defaults to SourceFileExtensions.
	Extensions []string `yaml:"extensions,omitempty"`

	// Workers bounds how many files are processed concurrently.
	Workers int `yaml:"workers,omitempty"`

	// Color is the diagnostic colour mode: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// Exclude lists directory or file base names skipped while walking,
	// e.g. target, vendor.
	Exclude []string `yaml:"exclude,omitempty"`
}

// DefaultProject returns the settings used when no config file exists.
func DefaultProject() *Project {
	p := &Project{}
	p.setDefaults()
	return p
}

// LoadConfig reads and parses a .intogeneric.yaml file.
func LoadConfig(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses .intogeneric.yaml content from bytes.
// The path argument is used only for error messages. Unknown keys are an
// error; an empty document yields the defaults.
func ParseConfig(data []byte, path string) (*Project, error) {
	var p Project
	if strings.TrimSpace(string(data)) != "" {
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.setDefaults()
	return &p, nil
}

// FindConfig searches for .intogeneric.yaml starting from dir and walking
// up to parent directories. Returns the path to the config file, or an
// empty string and nil error if none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Resolve loads the config at path, or the one found upward from dir when
// path is empty, or the defaults when there is none.
func Resolve(path, dir string) (*Project, error) {
	if path == "" {
		found, err := FindConfig(dir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return DefaultProject(), nil
		}
		path = found
	}
	return LoadConfig(path)
}

// validate checks the configuration for semantic errors.
func (p *Project) validate(path string) error {
	for i, attr := range p.Attributes {
		if attr == "" {
			return fmt.Errorf("%s: attributes[%d]: empty attribute path", path, i)
		}
		if strings.ContainsAny(attr, " \t#[]()") {
			return fmt.Errorf("%s: attributes[%d]: %q is not an attribute path", path, i, attr)
		}
	}
	for i, ext := range p.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%s: extensions[%d]: %q must start with '.'", path, i, ext)
		}
	}
	if p.Workers < 0 {
		return fmt.Errorf("%s: workers must not be negative, got %d", path, p.Workers)
	}
	switch strings.ToLower(p.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: color must be auto, always or never, got %q", path, p.Color)
	}
	return nil
}

func (p *Project) setDefaults() {
	if len(p.Attributes) == 0 {
		p.Attributes = append([]string(nil), DefaultAttributes...)
	}
	if len(p.Extensions) == 0 {
		p.Extensions = append([]string(nil), SourceFileExtensions...)
	}
	if p.Workers == 0 {
		p.Workers = DefaultWorkers
	}
	if p.Color == "" {
		p.Color = "auto"
	}
	p.Color = strings.ToLower(p.Color)
}

// HasExtension reports whether name ends in one of the configured extensions.
func (p *Project) HasExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range p.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Excluded reports whether a path element with base name name is skipped.
func (p *Project) Excluded(name string) bool {
	for _, ex := range p.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}
