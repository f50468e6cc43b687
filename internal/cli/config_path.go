package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"quizrun/internal/config"
)

// resolveConfigPath normalizes a config path or finds one from CWD. An empty
// result means no config file exists and defaults apply.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		found, err := config.FindConfigPath("")
		if errors.Is(err, config.ErrConfigNotFound) {
			return "", nil
		}
		return found, err
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig resolves and loads the runner config.
func loadConfig(configPath string) (config.Config, string, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return config.Config{}, resolved, err
	}
	return cfg, resolved, nil
}
