package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Render marshals cfg as the YAML config file format.
func Render(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Scaffold writes a default config pointing at questionsPath. It refuses to
// overwrite an existing file.
func Scaffold(path, questionsPath string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := Default()
	cfg.Questions = questionsPath
	data, err := Render(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
