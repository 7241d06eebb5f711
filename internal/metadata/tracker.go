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

// Package metadata tracks statistics about export runs: API calls made,
// issue counts and number/date ranges, and run duration. The same tracker
// summarizes a dump file after the fact.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const (
	// MethodVersion identifies the issues query shape
	MethodVersion = "graphql-issues-v1"
)

// Tracker collects statistics during an export run. Create one at the start
// of a run, or when summarizing a dump.
type Tracker struct {
	startTime    time.Time
	apiCallCount int
	issueStats   IssueStats
}

// IssueStats holds the numerical and temporal range of processed issues.
type IssueStats struct {
	TotalIssues int       // Total number of issues processed
	FirstIssue  int       // Lowest issue number seen
	LastIssue   int       // Highest issue number seen
	OldestIssue time.Time // Earliest creation date
	NewestIssue time.Time // Latest creation date
}

// New creates a tracker started at the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// IncrementAPICall records one page request.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// APICalls returns the number of recorded API calls.
func (t *Tracker) APICalls() int {
	return t.apiCallCount
}

// UpdateIssueStats folds one issue into the running statistics. A zero
// createdAt leaves the date range unchanged.
func (t *Tracker) UpdateIssueStats(number int, createdAt time.Time) {
	t.issueStats.TotalIssues++

	if t.issueStats.FirstIssue == 0 || number < t.issueStats.FirstIssue {
		t.issueStats.FirstIssue = number
	}
	if number > t.issueStats.LastIssue {
		t.issueStats.LastIssue = number
	}

	if createdAt.IsZero() {
		return
	}
	if t.issueStats.OldestIssue.IsZero() || createdAt.Before(t.issueStats.OldestIssue) {
		t.issueStats.OldestIssue = createdAt
	}
	if createdAt.After(t.issueStats.NewestIssue) {
		t.issueStats.NewestIssue = createdAt
	}
}

// Stats returns the statistics collected so far.
func (t *Tracker) Stats() IssueStats {
	return t.issueStats
}

// GenerateMetadata creates the metadata record for a finished run.
func (t *Tracker) GenerateMetadata(toolVersion, runID string, params RunParams) *RunMetadata {
	completedAt := time.Now().UTC()
	duration := completedAt.Sub(t.startTime)

	return &RunMetadata{
		ToolVersion:   toolVersion,
		MethodVersion: MethodVersion,
		RunID:         runID,
		Parameters:    params,
		Results: RunResults{
			TotalIssues:  t.issueStats.TotalIssues,
			FirstIssue:   t.issueStats.FirstIssue,
			LastIssue:    t.issueStats.LastIssue,
			OldestIssue:  t.issueStats.OldestIssue.UTC(),
			NewestIssue:  t.issueStats.NewestIssue.UTC(),
			Duration:     duration.Round(time.Millisecond).String(),
			APICallCount: t.apiCallCount,
			StartedAt:    t.startTime.UTC(),
			CompletedAt:  completedAt,
		},
	}
}

// WriteSummary prints the short run summary: total issues and the highest
// issue number observed.
func WriteSummary(w io.Writer, stats IssueStats) error {
	_, err := fmt.Fprintf(w, "Total issues: %d\nHighest issue number: %d\n", stats.TotalIssues, stats.LastIssue)
	return err
}

// WriteMetadataToWriter serializes metadata as indented JSON.
func WriteMetadataToWriter(metadata *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
