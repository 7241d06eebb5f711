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

// Package testutil provides common test helpers for issues-export: builders
// for GraphQL issue nodes and responses, and a scripted mock GraphQL server.
package testutil

import (
	"fmt"
	"time"
)

// IssueBuilder provides a fluent API for creating test issue nodes in the
// shape the GraphQL API returns them.
type IssueBuilder struct {
	number       int
	title        string
	state        string
	author       *string
	createdAt    string
	assignees    []string
	labels       []string
	milestone    map[string]interface{}
	comments     int
	lastComment  string
	groups       map[string]int
	reactions    []map[string]interface{}
	participants []string
}

// NewIssueBuilder creates a new issue builder with defaults
func NewIssueBuilder(number int) *IssueBuilder {
	author := fmt.Sprintf("user%d", number)
	return &IssueBuilder{
		number:    number,
		title:     fmt.Sprintf("Issue %d", number),
		state:     "OPEN",
		author:    &author,
		createdAt: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, number).Format(time.RFC3339),
		groups:    make(map[string]int),
	}
}

// WithTitle sets the issue title
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.title = title
	return b
}

// WithState sets the issue state (OPEN, CLOSED)
func (b *IssueBuilder) WithState(state string) *IssueBuilder {
	b.state = state
	return b
}

// WithoutAuthor makes the author null, as for deleted accounts
func (b *IssueBuilder) WithoutAuthor() *IssueBuilder {
	b.author = nil
	return b
}

// WithCreatedAt sets the raw creation timestamp
func (b *IssueBuilder) WithCreatedAt(ts string) *IssueBuilder {
	b.createdAt = ts
	return b
}

// WithAssignees sets assignee logins
func (b *IssueBuilder) WithAssignees(logins ...string) *IssueBuilder {
	b.assignees = logins
	return b
}

// WithLabels sets label names
func (b *IssueBuilder) WithLabels(labels ...string) *IssueBuilder {
	b.labels = labels
	return b
}

// WithMilestone assigns a milestone
func (b *IssueBuilder) WithMilestone(number int, title string) *IssueBuilder {
	b.milestone = map[string]interface{}{
		"number": number,
		"title":  title,
		"url":    fmt.Sprintf("https://github.com/octo/widgets/milestone/%d", number),
	}
	return b
}

// WithComments sets the comment count and the most recent comment timestamp
func (b *IssueBuilder) WithComments(count int, lastCreatedAt string) *IssueBuilder {
	b.comments = count
	b.lastComment = lastCreatedAt
	return b
}

// WithReactionGroup sets the running count for one reaction kind
func (b *IssueBuilder) WithReactionGroup(content string, count int) *IssueBuilder {
	b.groups[content] = count
	return b
}

// WithReaction adds a single reaction by login
func (b *IssueBuilder) WithReaction(content, login string) *IssueBuilder {
	b.reactions = append(b.reactions, map[string]interface{}{
		"content": content,
		"user":    map[string]interface{}{"login": login},
	})
	return b
}

// WithParticipants sets participant logins
func (b *IssueBuilder) WithParticipants(logins ...string) *IssueBuilder {
	b.participants = logins
	return b
}

// Build returns the issue as a GraphQL node map
func (b *IssueBuilder) Build() map[string]interface{} {
	node := map[string]interface{}{
		"id":        fmt.Sprintf("I_kwDO%06d", b.number),
		"number":    b.number,
		"title":     b.title,
		"state":     b.state,
		"createdAt": b.createdAt,
		"author":    nil,
		"milestone": nil,
		"assignees": map[string]interface{}{"nodes": logins(b.assignees)},
		"labels":    map[string]interface{}{"nodes": names(b.labels)},
		"reactions": map[string]interface{}{"nodes": nonNil(b.reactions)},
	}
	node["participants"] = map[string]interface{}{"nodes": logins(b.participants)}
	if b.author != nil {
		node["author"] = map[string]interface{}{"login": *b.author}
	}
	if b.milestone != nil {
		node["milestone"] = b.milestone
	}

	commentNodes := []interface{}{}
	if b.lastComment != "" {
		commentNodes = append(commentNodes, map[string]interface{}{"createdAt": b.lastComment})
	}
	node["comments"] = map[string]interface{}{
		"totalCount": b.comments,
		"nodes":      commentNodes,
	}

	groups := []interface{}{}
	for _, content := range []string{"THUMBS_UP", "THUMBS_DOWN", "LAUGH", "HOORAY", "CONFUSED", "HEART", "ROCKET", "EYES"} {
		groups = append(groups, map[string]interface{}{
			"content": content,
			"users":   map[string]interface{}{"totalCount": b.groups[content]},
		})
	}
	node["reactionGroups"] = groups

	return node
}

func logins(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, map[string]interface{}{"login": v})
	}
	return out
}

func names(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, map[string]interface{}{"name": v})
	}
	return out
}

func nonNil(values []map[string]interface{}) []map[string]interface{} {
	if values == nil {
		return []map[string]interface{}{}
	}
	return values
}

// GraphQLResponseBuilder helps build GraphQL issues page responses
type GraphQLResponseBuilder struct {
	issues      []map[string]interface{}
	hasNextPage bool
	endCursor   *string
	errors      []map[string]interface{}
}

// NewGraphQLResponseBuilder creates a new response builder
func NewGraphQLResponseBuilder() *GraphQLResponseBuilder {
	return &GraphQLResponseBuilder{
		issues: make([]map[string]interface{}, 0),
	}
}

// WithIssues adds issue nodes to the response
func (b *GraphQLResponseBuilder) WithIssues(issues ...map[string]interface{}) *GraphQLResponseBuilder {
	b.issues = append(b.issues, issues...)
	return b
}

// WithPagination sets pagination info
func (b *GraphQLResponseBuilder) WithPagination(hasNext bool, cursor string) *GraphQLResponseBuilder {
	b.hasNextPage = hasNext
	b.endCursor = &cursor
	return b
}

// WithError adds an entry to the errors list
func (b *GraphQLResponseBuilder) WithError(message string) *GraphQLResponseBuilder {
	b.errors = append(b.errors, map[string]interface{}{
		"message": message,
	})
	return b
}

// Build creates the final response structure
func (b *GraphQLResponseBuilder) Build() map[string]interface{} {
	if len(b.errors) > 0 {
		return map[string]interface{}{
			"data":   nil,
			"errors": b.errors,
		}
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"repository": map[string]interface{}{
				"issues": map[string]interface{}{
					"nodes": b.issues,
					"pageInfo": map[string]interface{}{
						"hasNextPage": b.hasNextPage,
						"endCursor":   b.endCursor,
					},
				},
			},
		},
	}
}

// IssuePageResponse builds a page of default issues numbered start..end.
func IssuePageResponse(start, end int, hasNext bool, cursor string) map[string]interface{} {
	builder := NewGraphQLResponseBuilder().WithPagination(hasNext, cursor)
	for i := start; i <= end; i++ {
		builder.WithIssues(NewIssueBuilder(i).Build())
	}
	return builder.Build()
}
