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

package github

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
// It serves Pages in order, one per FetchIssues call.
type MockClient struct {
	// Pages to return, in call order
	Pages []IssuePage

	// Errors keyed by 1-based call number
	Errors map[int]error

	TotalIssues int

	// Track calls for verification
	CallCount int
	Calls     []FetchOptions
	LastOwner string
	LastRepo  string
}

// NewMockClient creates a mock client serving the given pages.
func NewMockClient(pages ...IssuePage) *MockClient {
	total := 0
	for _, p := range pages {
		total += len(p.Issues)
	}
	return &MockClient{
		Pages:       pages,
		Errors:      make(map[int]error),
		TotalIssues: total,
	}
}

// FetchIssues implements the Client interface
func (m *MockClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	m.CallCount++
	m.Calls = append(m.Calls, opts)
	m.LastOwner = owner
	m.LastRepo = repo

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.Errors[m.CallCount]; err != nil {
		return nil, err
	}

	if m.CallCount > len(m.Pages) {
		return nil, fmt.Errorf("mock: no page configured for call %d", m.CallCount)
	}

	page := m.Pages[m.CallCount-1]
	return &page, nil
}

// GetRepositoryInfo implements the Client interface
func (m *MockClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	return &RepositoryInfo{TotalIssues: m.TotalIssues}, nil
}

// Pages splits issues into pages of the given sizes, chaining cursors the
// way the API does: page i ends with cursor "cursor<i>" and every page but
// the last reports more.
func Pages(issues []Issue, sizes ...int) []IssuePage {
	pages := make([]IssuePage, 0, len(sizes))
	offset := 0
	for i, size := range sizes {
		pages = append(pages, IssuePage{
			Issues:      issues[offset : offset+size],
			HasNextPage: i < len(sizes)-1,
			EndCursor:   fmt.Sprintf("cursor%d", i+1),
		})
		offset += size
	}
	return pages
}
