// Copyright 2025 Flant JSC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for issues-export with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/deckhouse/project-manager-helper/internal/errors"
	"gopkg.in/yaml.v3"
)

// MaxPageSize is the largest page the GitHub GraphQL API accepts.
const MaxPageSize = 100

// LoadConfig loads configuration from the given file, or from the first file
// found in the standard locations when configPath is empty:
//   - .issues-export.yaml (current directory)
//   - .issues-export.yml (current directory)
//   - ~/.config/issues-export/config.yaml
//
// Environment variables are applied after the file. Missing files in the
// standard locations are not an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".issues-export.yaml",
			".issues-export.yml",
			filepath.Join(os.Getenv("HOME"), ".config", "issues-export", "config.yaml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Output.DumpFile = expandPath(cfg.Output.DumpFile)
	cfg.Output.CSVFile = expandPath(cfg.Output.CSVFile)
	cfg.Output.ScratchDir = expandPath(cfg.Output.ScratchDir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if timeout := os.Getenv("ISSUES_EXPORT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.GitHub.Timeout = d
		}
	}

	if pageSize := os.Getenv("ISSUES_EXPORT_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Export.PageSize = size
		}
	}
	if order := os.Getenv("ISSUES_EXPORT_ORDER"); order != "" {
		cfg.Export.Order = order
	}
	if prefix, ok := os.LookupEnv("ISSUES_EXPORT_LABEL_PREFIX"); ok {
		cfg.Export.LabelPrefix = prefix
	}
	if participants := os.Getenv("ISSUES_EXPORT_PARTICIPANTS"); participants != "" {
		cfg.Export.Participants = parseBool(participants)
	}
}

// Token returns the credential from the environment variable named by
// TokenEnv. An unset or blank variable is a configuration error.
func (c *Config) Token() (string, error) {
	token := strings.TrimSpace(os.Getenv(c.GitHub.TokenEnv))
	if token == "" {
		return "", fmt.Errorf("environment variable %s must be set: %w", c.GitHub.TokenEnv, apperrors.ErrMissingToken)
	}
	return token, nil
}

// SetRepository parses an owner/name pair into the export settings.
func (c *Config) SetRepository(repoArg string) error {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s: %w", repoArg, apperrors.ErrInvalidConfig)
	}

	owner := strings.TrimSpace(parts[0])
	repo := strings.TrimSpace(parts[1])
	if owner == "" || repo == "" {
		return fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s: %w", repoArg, apperrors.ErrInvalidConfig)
	}

	c.Export.Owner = owner
	c.Export.Repository = repo
	return nil
}

// FullName returns the repository in owner/name form.
func (c *Config) FullName() string {
	return c.Export.Owner + "/" + c.Export.Repository
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Validate checks if the configuration contains valid values. It should be
// called after flags have been applied so a bad flag value is caught before
// any request is made.
func (c *Config) Validate() error {
	if c.Export.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d: %w", c.Export.PageSize, apperrors.ErrInvalidConfig)
	}
	if c.Export.PageSize > MaxPageSize {
		return fmt.Errorf("page size %d exceeds GitHub API limit of %d: %w", c.Export.PageSize, MaxPageSize, apperrors.ErrInvalidConfig)
	}
	if c.Export.MaxPages < 0 {
		return fmt.Errorf("max pages must not be negative, got: %d: %w", c.Export.MaxPages, apperrors.ErrInvalidConfig)
	}
	switch strings.ToUpper(c.Export.Order) {
	case "ASC", "DESC":
	default:
		return fmt.Errorf("order must be ASC or DESC, got: %q: %w", c.Export.Order, apperrors.ErrInvalidConfig)
	}
	if c.Export.Owner == "" || c.Export.Repository == "" {
		return fmt.Errorf("repository owner and name are required: %w", apperrors.ErrInvalidConfig)
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty: %w", apperrors.ErrInvalidConfig)
	}
	if c.GitHub.TokenEnv == "" {
		return fmt.Errorf("token environment variable name cannot be empty: %w", apperrors.ErrInvalidConfig)
	}
	if c.GitHub.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %s: %w", c.GitHub.Timeout, apperrors.ErrInvalidConfig)
	}
	return nil
}
