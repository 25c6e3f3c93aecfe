package models

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cases/mansion.yaml
var defaultCaseYAML []byte

// DefaultCaseYAML returns the bundled mansion case as written on disk.
func DefaultCaseYAML() []byte {
	out := make([]byte, len(defaultCaseYAML))
	copy(out, defaultCaseYAML)
	return out
}

// DefaultCase parses the bundled mansion case.
func DefaultCase() (*Case, error) {
	return ParseCase(defaultCaseYAML)
}

// ParseCase decodes and validates a case.
func ParseCase(data []byte) (*Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse case: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCase reads a case file. An empty path means the bundled case.
func LoadCase(path string) (*Case, error) {
	if path == "" {
		return DefaultCase()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCase(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes the case as YAML, creating parent directories.
func (c *Case) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ListCases returns the valid case files (*.yaml, *.yml) in dir.
func ListCases(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var cases []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		// Only files that describe a playable case count
		if _, err := LoadCase(filepath.Join(dir, entry.Name())); err == nil {
			cases = append(cases, entry.Name())
		}
	}
	return cases, nil
}
