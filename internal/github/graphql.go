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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/deckhouse/project-manager-helper/internal/errors"
	"github.com/deckhouse/project-manager-helper/internal/giterror"
	"github.com/shurcooL/graphql"
)

// GraphQLClient implements the Client interface against the GitHub GraphQL API.
// Issue pages go through the query builder and the Executor so every response
// is inspected in full; the repository info query uses the typed graphql client.
type GraphQLClient struct {
	executor  *Executor
	typed     *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a client that posts to endpoint with httpClient,
// which is expected to carry authentication (see NewHTTPClient).
func NewGraphQLClient(httpClient *http.Client, endpoint string, executor *Executor) *GraphQLClient {
	if executor == nil {
		executor = NewExecutor(httpClient, endpoint, nil)
	}
	return &GraphQLClient{
		executor:  executor,
		typed:     graphql.NewClient(endpoint, httpClient),
		inspector: giterror.NewInspector(),
	}
}

// GetRepositoryInfo executes a minimal query for the total number of issues.
func (c *GraphQLClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var query struct {
		Repository struct {
			Issues struct {
				TotalCount graphql.Int
			} `graphql:"issues"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.typed.Query(ctx, &query, variables); err != nil {
		return nil, c.fail(apperrors.ErrAPI, fmt.Sprintf("failed to get repository info for %s/%s: %v", owner, repo, err))
	}

	return &RepositoryInfo{
		TotalIssues: int(query.Repository.Issues.TotalCount),
	}, nil
}

// FetchIssues fetches a single page of issues.
func (c *GraphQLClient) FetchIssues(ctx context.Context, owner, repo string, opts FetchOptions) (*IssuePage, error) {
	query, err := BuildIssuesQuery(QueryParams{
		Owner:        owner,
		Repository:   repo,
		PageSize:     opts.PageSize,
		After:        opts.After,
		Direction:    opts.Direction,
		Participants: opts.Participants,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	body, err := RequestBody(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	return c.decodePage(c.executor.Execute(ctx, body))
}

// issuesEnvelope is the typed shape of a successful issues response.
type issuesEnvelope struct {
	Data *struct {
		Repository *struct {
			Issues struct {
				PageInfo struct {
					EndCursor   *string `json:"endCursor"`
					HasNextPage bool    `json:"hasNextPage"`
				} `json:"pageInfo"`
				Nodes []Issue `json:"nodes"`
			} `json:"issues"`
		} `json:"repository"`
	} `json:"data"`
}

// decodePage checks a result in order: transport failure, application
// errors, then the page envelope.
func (c *GraphQLClient) decodePage(res *Result) (*IssuePage, error) {
	if res.Err != "" {
		return nil, c.fail(apperrors.ErrTransport, res.Err)
	}

	obj, ok := res.Body.(map[string]any)
	if !ok {
		return nil, c.fail(apperrors.ErrMalformedResponse,
			fmt.Sprintf("unexpected response (status %d): %s", res.Status, snippet(res.Raw)))
	}

	if msgs := errorMessages(obj); len(msgs) > 0 {
		return nil, c.fail(apperrors.ErrAPI, strings.Join(msgs, "; "))
	}
	if msg, ok := obj["message"].(string); ok && obj["data"] == nil {
		return nil, c.fail(apperrors.ErrAPI, fmt.Sprintf("status %d: %s", res.Status, msg))
	}

	var env issuesEnvelope
	if err := json.Unmarshal(res.Raw, &env); err != nil {
		return nil, c.fail(apperrors.ErrMalformedResponse, fmt.Sprintf("decoding issues page: %v", err))
	}
	if env.Data == nil || env.Data.Repository == nil {
		return nil, c.fail(apperrors.ErrAPI, fmt.Sprintf("status %d: response has no repository data", res.Status))
	}

	issues := env.Data.Repository.Issues
	page := &IssuePage{
		Issues:      issues.Nodes,
		HasNextPage: issues.PageInfo.HasNextPage,
	}
	if issues.PageInfo.EndCursor != nil {
		page.EndCursor = *issues.PageInfo.EndCursor
	}
	if page.Issues == nil {
		page.Issues = []Issue{}
	}
	return page, nil
}

// fail wraps kind with msg and, when the message matches a known class, an
// actionable hint.
func (c *GraphQLClient) fail(kind error, msg string) error {
	if hint := giterror.Hint(c.inspector, errors.New(msg)); hint != "" {
		msg += " (" + hint + ")"
	}
	return fmt.Errorf("%s: %w", msg, kind)
}

// errorMessages extracts the message of every entry in the "errors" list.
func errorMessages(obj map[string]any) []string {
	list, ok := obj["errors"].([]any)
	if !ok {
		return nil
	}
	msgs := make([]string, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			msgs = append(msgs, fmt.Sprint(item))
			continue
		}
		if msg, ok := entry["message"].(string); ok {
			msgs = append(msgs, msg)
		} else {
			msgs = append(msgs, "unknown error")
		}
	}
	return msgs
}

// snippet shortens a raw body for error messages.
func snippet(raw []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
