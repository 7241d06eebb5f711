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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/deckhouse/project-manager-helper/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("GraphQLEndpoint = %s, want https://api.github.com/graphql", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("TokenEnv = %s, want GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	}
	if !strings.Contains(cfg.GitHub.Accept, "squirrel-girl-preview") {
		t.Errorf("Accept = %s, want reactions preview media type", cfg.GitHub.Accept)
	}
	if cfg.GitHub.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.GitHub.Timeout)
	}
	if cfg.Export.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", cfg.Export.PageSize)
	}
	if cfg.Export.Order != "ASC" {
		t.Errorf("Order = %s, want ASC", cfg.Export.Order)
	}
	if cfg.Export.MaxPages != 0 {
		t.Errorf("MaxPages = %d, want 0", cfg.Export.MaxPages)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
github:
  graphql_endpoint: https://github.enterprise.com/api/graphql
  token_env: GHE_TOKEN
  timeout: 45s

export:
  owner: octo
  repository: widgets
  page_size: 32
  order: desc
  label_prefix: "type/"
  participants: false
  max_pages: 10

output:
  dump_file: /tmp/out/issues.json
  csv_file: /tmp/out/issues.csv
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.GraphQLEndpoint != "https://github.enterprise.com/api/graphql" {
		t.Errorf("GraphQLEndpoint = %s", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GHE_TOKEN" {
		t.Errorf("TokenEnv = %s, want GHE_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.GitHub.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s, want 45s", cfg.GitHub.Timeout)
	}
	if cfg.FullName() != "octo/widgets" {
		t.Errorf("FullName() = %s, want octo/widgets", cfg.FullName())
	}
	if cfg.Export.PageSize != 32 {
		t.Errorf("PageSize = %d, want 32", cfg.Export.PageSize)
	}
	if cfg.Export.LabelPrefix != "type/" {
		t.Errorf("LabelPrefix = %s, want type/", cfg.Export.LabelPrefix)
	}
	if cfg.Export.Participants {
		t.Error("Participants = true, want false")
	}
	if cfg.Export.MaxPages != 10 {
		t.Errorf("MaxPages = %d, want 10", cfg.Export.MaxPages)
	}
	if cfg.Output.CSVFile != "/tmp/out/issues.csv" {
		t.Errorf("CSVFile = %s", cfg.Output.CSVFile)
	}
	// Fields absent from the file keep their defaults.
	if cfg.GitHub.Accept == "" {
		t.Error("Accept lost its default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("lower-case order should validate, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GITHUB_GRAPHQL_ENDPOINT", "https://custom.graphql.com")
	t.Setenv("ISSUES_EXPORT_PAGE_SIZE", "32")
	t.Setenv("ISSUES_EXPORT_ORDER", "DESC")
	t.Setenv("ISSUES_EXPORT_LABEL_PREFIX", "")
	t.Setenv("ISSUES_EXPORT_TIMEOUT", "5s")
	t.Setenv("ISSUES_EXPORT_PARTICIPANTS", "off")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.GitHub.GraphQLEndpoint != "https://custom.graphql.com" {
		t.Errorf("GraphQLEndpoint = %s, want https://custom.graphql.com", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.Export.PageSize != 32 {
		t.Errorf("PageSize = %d, want 32", cfg.Export.PageSize)
	}
	if cfg.Export.Order != "DESC" {
		t.Errorf("Order = %s, want DESC", cfg.Export.Order)
	}
	if cfg.Export.LabelPrefix != "" {
		t.Errorf("LabelPrefix = %q, want empty", cfg.Export.LabelPrefix)
	}
	if cfg.GitHub.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.GitHub.Timeout)
	}
	if cfg.Export.Participants {
		t.Error("Participants = true, want false")
	}
}

func TestToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.TokenEnv = "ISSUES_EXPORT_TEST_TOKEN"

	t.Setenv("ISSUES_EXPORT_TEST_TOKEN", "")
	if _, err := cfg.Token(); !errors.Is(err, apperrors.ErrMissingToken) {
		t.Errorf("Token() error = %v, want ErrMissingToken", err)
	}

	t.Setenv("ISSUES_EXPORT_TEST_TOKEN", " secret \n")
	token, err := cfg.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "secret" {
		t.Errorf("Token() = %q, want secret", token)
	}
}

func TestSetRepository(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{input: "golang/go", wantOwner: "golang", wantRepo: "go"},
		{input: " deckhouse / deckhouse ", wantOwner: "deckhouse", wantRepo: "deckhouse"},
		{input: "invalid", wantErr: true},
		{input: "too/many/slashes", wantErr: true},
		{input: "/repo", wantErr: true},
		{input: "owner/", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		err := cfg.SetRepository(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrInvalidConfig) {
				t.Errorf("SetRepository(%q) error should wrap ErrInvalidConfig", tt.input)
			}
			continue
		}
		if cfg.Export.Owner != tt.wantOwner || cfg.Export.Repository != tt.wantRepo {
			t.Errorf("SetRepository(%q) = %s/%s, want %s/%s", tt.input,
				cfg.Export.Owner, cfg.Export.Repository, tt.wantOwner, tt.wantRepo)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "zero page size", mutate: func(c *Config) { c.Export.PageSize = 0 }, wantErr: "page size must be positive"},
		{name: "page size too large", mutate: func(c *Config) { c.Export.PageSize = 150 }, wantErr: "exceeds GitHub API limit of 100"},
		{name: "negative max pages", mutate: func(c *Config) { c.Export.MaxPages = -1 }, wantErr: "max pages must not be negative"},
		{name: "bad order", mutate: func(c *Config) { c.Export.Order = "sideways" }, wantErr: "order must be ASC or DESC"},
		{name: "missing owner", mutate: func(c *Config) { c.Export.Owner = "" }, wantErr: "owner and name are required"},
		{name: "empty endpoint", mutate: func(c *Config) { c.GitHub.GraphQLEndpoint = "" }, wantErr: "GraphQL endpoint cannot be empty"},
		{name: "empty token env", mutate: func(c *Config) { c.GitHub.TokenEnv = "" }, wantErr: "token environment variable"},
		{name: "zero timeout", mutate: func(c *Config) { c.GitHub.Timeout = 0 }, wantErr: "timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
			}
			if !errors.Is(err, apperrors.ErrInvalidConfig) {
				t.Errorf("Validate() error should wrap ErrInvalidConfig")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"on", true},
		{"false", false},
		{"off", false},
		{"", false},
		{"random", false},
	}

	for _, tt := range tests {
		if got := parseBool(tt.input); got != tt.want {
			t.Errorf("parseBool(%s) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"50", 50, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePositiveInt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePositiveInt(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePositiveInt(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
