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
	"log/slog"

	apperrors "github.com/deckhouse/project-manager-helper/internal/errors"
)

// PaginateOptions configures FetchAllIssues.
type PaginateOptions struct {
	FetchOptions

	// MaxPages stops the loop with ErrPageLimit once this many pages were
	// fetched and the API still reports more. Zero means no limit.
	MaxPages int

	Logger *slog.Logger
}

// EmitFunc receives each page's issues in the order they were fetched.
type EmitFunc func(page int, issues []Issue) error

// FetchAllIssues walks the issues connection page by page. Each request
// carries the cursor returned by the previous page, so pages are fetched
// strictly one after another. Any error aborts the walk; there are no retries.
// It returns the number of requests issued.
func FetchAllIssues(ctx context.Context, client Client, owner, repo string, opts PaginateOptions, emit EmitFunc) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		cursor   = ""
		hasMore  = true
		requests = 0
		fetched  = 0
	)

	for hasMore {
		if opts.MaxPages > 0 && requests >= opts.MaxPages {
			return requests, fmt.Errorf("stopped after %d pages with more remaining: %w", requests, apperrors.ErrPageLimit)
		}

		fetchOpts := opts.FetchOptions
		fetchOpts.After = cursor

		requests++
		page, err := client.FetchIssues(ctx, owner, repo, fetchOpts)
		if err != nil {
			return requests, fmt.Errorf("page %d: %w", requests, err)
		}

		if err := emit(requests, page.Issues); err != nil {
			return requests, fmt.Errorf("page %d: %w", requests, err)
		}
		fetched += len(page.Issues)

		logger.Debug("fetched issues page",
			"page", requests,
			"issues", len(page.Issues),
			"total", fetched,
			"has_next_page", page.HasNextPage,
		)

		cursor = page.EndCursor
		hasMore = page.HasNextPage
	}

	return requests, nil
}
