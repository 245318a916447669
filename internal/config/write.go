package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Write saves the configuration to path as YAML. Used by `config init` to
// drop a starter file the user can edit.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
