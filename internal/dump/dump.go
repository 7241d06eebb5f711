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

package dump

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	apperrors "github.com/deckhouse/project-manager-helper/internal/errors"
	"github.com/deckhouse/project-manager-helper/internal/github"
	"github.com/deckhouse/project-manager-helper/internal/output"
	"github.com/google/uuid"
)

// New creates a dump for repository with a fresh run identifier.
func New(repository string, issues []github.Issue) *File {
	if issues == nil {
		issues = []github.Issue{}
	}
	return &File{
		Version:    CurrentVersion,
		RunID:      uuid.NewString(),
		Repository: repository,
		FetchedAt:  time.Now().UTC(),
		Issues:     issues,
	}
}

// Save atomically writes the dump to path with its checksum. A failure
// leaves any existing file at path unchanged.
func Save(f *File, path string) error {
	w, err := output.NewFileWriter(path)
	if err != nil {
		return err
	}
	return output.WriteAll(w, func(dst io.Writer) error {
		return Encode(f, dst)
	})
}

// Encode stamps the version and checksum on f and writes it as JSON.
func Encode(f *File, w io.Writer) error {
	f.Version = CurrentVersion

	checksum, err := calculateChecksum(f)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	f.Checksum = checksum

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal dump: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return nil
}

// Load reads a dump from path and verifies its version and checksum.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no dump file found at %s, run the dump step first", path)
		}
		return nil, fmt.Errorf("failed to read dump file %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses and validates dump content.
func Decode(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid JSON (%v): %w", err, apperrors.ErrDumpCorrupted)
	}

	if f.Version != CurrentVersion {
		return nil, fmt.Errorf("dump version %d is incompatible with current version %d: %w",
			f.Version, CurrentVersion, apperrors.ErrDumpCorrupted)
	}

	saved := f.Checksum
	calculated, err := calculateChecksum(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}
	if saved != calculated {
		return nil, fmt.Errorf("checksum mismatch: %w", apperrors.ErrDumpCorrupted)
	}

	if f.Issues == nil {
		f.Issues = []github.Issue{}
	}
	return &f, nil
}

// calculateChecksum computes the SHA256 of the dump with the checksum
// field cleared.
func calculateChecksum(f *File) (string, error) {
	c := *f
	c.Checksum = ""

	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
