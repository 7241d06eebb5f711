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

// Package config types define the configuration structures used throughout
// issues-export. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for issues-export.
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Export ExportConfig `yaml:"export"`
	Output OutputConfig `yaml:"output"`
}

// GitHubConfig contains the API endpoint, credential source and transport
// settings. The Accept header defaults to the reactions preview media type.
type GitHubConfig struct {
	GraphQLEndpoint  string        `yaml:"graphql_endpoint"`
	TokenEnv         string        `yaml:"token_env"`
	Accept           string        `yaml:"accept"`
	Timeout          time.Duration `yaml:"timeout"`
	MaxResponseBytes int64         `yaml:"max_response_bytes"`
}

// ExportConfig describes what gets fetched and how each issue is flattened.
type ExportConfig struct {
	Owner        string `yaml:"owner"`
	Repository   string `yaml:"repository"`
	PageSize     int    `yaml:"page_size"`
	Order        string `yaml:"order"`
	LabelPrefix  string `yaml:"label_prefix"`
	Participants bool   `yaml:"participants"`

	// MaxPages stops pagination after this many pages. Zero means no limit.
	MaxPages int `yaml:"max_pages"`
}

// OutputConfig holds the default file locations for the dump and the report.
type OutputConfig struct {
	DumpFile string `yaml:"dump_file"`
	CSVFile  string `yaml:"csv_file"`
	// ScratchDir is the parent of the per-run scratch directory. Empty uses
	// the system temp dir.
	ScratchDir string `yaml:"scratch_dir"`
}

// DefaultConfig returns a Config with the values used by the scheduled export.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint:  "https://api.github.com/graphql",
			TokenEnv:         "GITHUB_TOKEN",
			Accept:           "application/vnd.github.squirrel-girl-preview+json",
			Timeout:          30 * time.Second,
			MaxResponseBytes: 10 * 1024 * 1024,
		},
		Export: ExportConfig{
			Owner:        "deckhouse",
			Repository:   "deckhouse",
			PageSize:     100,
			Order:        "ASC",
			LabelPrefix:  "area/",
			Participants: true,
		},
		Output: OutputConfig{
			DumpFile: "issues.json",
			CSVFile:  "issues.csv",
		},
	}
}
