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
	"time"

	"github.com/deckhouse/project-manager-helper/internal/github"
	"github.com/deckhouse/project-manager-helper/internal/metadata"
)

// CurrentVersion is the current dump schema version.
// Increment this when making breaking changes to the File structure.
const CurrentVersion = 1

// File is the raw result of one export run: every issue exactly as decoded
// from the API, plus enough context to summarize or convert it later.
type File struct {
	// Version indicates the schema version of this file.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the file content (excluding this field).
	// Used to detect corruption or hand edits.
	Checksum string `json:"checksum"`

	// RunID uniquely identifies the run that produced the dump.
	RunID string `json:"run_id"`

	// Repository is the full repository name in "owner/name" format.
	Repository string `json:"repository"`

	// FetchedAt records when the last page was received.
	FetchedAt time.Time `json:"fetched_at"`

	// Participants reports whether participant data was requested, which
	// decides whether the participants column can be derived.
	Participants bool `json:"participants"`

	Metadata *metadata.RunMetadata `json:"metadata,omitempty"`

	Issues []github.Issue `json:"issues"`
}
