// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment using the `env` and `envPrefix`
// tags, then expands a leading "~/" in path settings such as APP_KEY_FILE
// or STORAGE_BOLT_PATH.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	for _, p := range []*string{
		&cfg.JSONFilePath,
		&cfg.App.KeyFile,
		&cfg.Storage.Files.Dir,
		&cfg.Storage.Bolt.Path,
	} {
		expanded, err := expandHome(*p)
		if err != nil {
			return fmt.Errorf("error getting env configs: %w", err)
		}
		*p = expanded
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
