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

package metadata

import (
	"time"
)

// RunMetadata records how and when a dump was produced.
type RunMetadata struct {
	ToolVersion   string     `json:"tool_version"`
	MethodVersion string     `json:"method_version"`
	RunID         string     `json:"run_id"`
	Parameters    RunParams  `json:"parameters"`
	Results       RunResults `json:"results"`
}

// RunParams captures the inputs of an export run.
type RunParams struct {
	Owner        string `json:"owner"`
	Repository   string `json:"repository"`
	PageSize     int    `json:"page_size"`
	Order        string `json:"order"`
	Participants bool   `json:"participants"`
	MaxPages     int    `json:"max_pages,omitempty"`
}

// RunResults contains the statistics of a completed run.
type RunResults struct {
	TotalIssues  int       `json:"total_issues"`
	FirstIssue   int       `json:"first_issue_number"`
	LastIssue    int       `json:"last_issue_number"`
	OldestIssue  time.Time `json:"oldest_issue_date"`
	NewestIssue  time.Time `json:"newest_issue_date"`
	Duration     string    `json:"fetch_duration"`
	APICallCount int       `json:"api_calls_made"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
