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

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/deckhouse/project-manager-helper/internal/github"
)

var columns = []string{
	"number",
	"title",
	"state",
	"author",
	"assignees",
	"labels",
	"milestone",
	"created",
	"last_comment",
	"comments",
	"reactions_positive",
	"reactions_negative",
}

// Header returns the CSV header, with the participants column when enabled.
func Header(participants bool) []string {
	header := append([]string(nil), columns...)
	if participants {
		header = append(header, "participants")
	}
	return header
}

// SortRows orders rows by issue number, keeping the input order of equal numbers.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Number < rows[j].Number
	})
}

// WriteCSV sorts rows and writes them to w after the header line. Fields
// containing commas, quotes or newlines are quoted with quotes doubled.
func WriteCSV(w io.Writer, rows []Row, participants bool) error {
	SortRows(rows)

	cw := csv.NewWriter(w)
	if err := cw.Write(Header(participants)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		row.HasParticipants = participants
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write issue #%d: %w", row.Number, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// TransformAll converts issues to rows.
func TransformAll(issues []github.Issue, opts TransformOptions) []Row {
	rows := make([]Row, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, Transform(issue, opts))
	}
	return rows
}
