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

// Package github fetches the issues of a repository from GitHub's GraphQL
// API, one page at a time.
//
// The package includes:
//   - A query builder producing the issues page query for a cursor
//   - An Executor that performs one POST and captures status, headers and body
//   - A GraphQLClient that turns executor results into issue pages or errors
//   - FetchAllIssues, which drives the cursor loop until the last page
//   - A mock client for testing
//
// Basic usage:
//
//	httpClient := github.NewHTTPClient(github.TransportOptions{Token: token})
//	client := github.NewGraphQLClient(httpClient, "https://api.github.com/graphql", nil)
//	_, err := github.FetchAllIssues(ctx, client, "deckhouse", "deckhouse", github.PaginateOptions{
//	    FetchOptions: github.FetchOptions{PageSize: 100},
//	}, func(page int, issues []github.Issue) error {
//	    // Process issues
//	    return nil
//	})
package github
