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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"
)

// MaxPageSize is the largest page GitHub accepts for a connection.
const MaxPageSize = 100

// issueFields is the node selection for every issue. The participants
// selection is spliced in only when requested.
//
// Nested connections are read as one page of at most 100 nodes and are not
// paginated. Reaction counts come from reactionGroups totals and are exact;
// the participant count only sees the first 100 participants and reactions.
const issueFields = `id
        number
        title
        state
        createdAt
        author { login }
        assignees(first: 100) { nodes { login } }
        labels(first: 100) { nodes { name } }
        milestone { number title url }
        comments(last: 1) { totalCount nodes { createdAt } }
        reactionGroups { content users { totalCount } }
        reactions(first: 100) { nodes { content user { login } } }`

const participantFields = `
        participants(first: 100) { nodes { login } }`

// QueryParams are the inputs of one issues page query.
type QueryParams struct {
	Owner        string
	Repository   string
	PageSize     int
	After        string
	Direction    githubv4.OrderDirection
	Participants bool
}

// BuildIssuesQuery renders the issues page query. The after argument is
// present only when a cursor is given and carries it unmodified.
func BuildIssuesQuery(p QueryParams) (string, error) {
	if p.PageSize <= 0 || p.PageSize > MaxPageSize {
		return "", fmt.Errorf("page size %d out of range 1..%d", p.PageSize, MaxPageSize)
	}
	direction := p.Direction
	if direction == "" {
		direction = githubv4.OrderDirectionAsc
	}
	if direction != githubv4.OrderDirectionAsc && direction != githubv4.OrderDirectionDesc {
		return "", fmt.Errorf("unknown order direction %q", direction)
	}

	args := []string{fmt.Sprintf("first: %d", p.PageSize)}
	if p.After != "" {
		args = append(args, "after: "+quote(p.After))
	}
	args = append(args, fmt.Sprintf("orderBy: {field: %s, direction: %s}", githubv4.IssueOrderFieldCreatedAt, direction))

	fields := issueFields
	if p.Participants {
		fields += participantFields
	}

	var b strings.Builder
	fmt.Fprintf(&b, "query {\n  repository(owner: %s, name: %s) {\n", quote(p.Owner), quote(p.Repository))
	fmt.Fprintf(&b, "    issues(%s) {\n", strings.Join(args, ", "))
	b.WriteString("      pageInfo { endCursor hasNextPage }\n")
	fmt.Fprintf(&b, "      nodes {\n        %s\n      }\n", fields)
	b.WriteString("    }\n  }\n}\n")
	return b.String(), nil
}

// RequestBody wraps a query into the JSON request object the endpoint expects.
func RequestBody(query string) ([]byte, error) {
	return json.Marshal(struct {
		Query string `json:"query"`
	}{Query: query})
}

// quote renders s as a GraphQL string literal. JSON string escapes are a
// subset of GraphQL's, so the server reads back exactly s.
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
