package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads settings from a YAML file. Keys missing from the file keep
// their Default values.
func Load(path string) (GridSettings, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := Parse(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML into s and validates the result.
func Parse(raw []byte, s *GridSettings) error {
	if err := yaml.Unmarshal(raw, s); err != nil {
		return err
	}
	return s.Validate()
}
