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

import "github.com/shurcooL/githubv4"

// Issue is one issue node as returned by the GraphQL issues connection.
// Field names and nesting follow the API response so a page decodes straight
// into it, and the same shape is what gets written to the dump file.
// Nullable objects (author, milestone, reaction users) are pointers.
type Issue struct {
	ID             string               `json:"id"`
	Number         int                  `json:"number"`
	Title          string               `json:"title"`
	State          githubv4.IssueState  `json:"state"`
	Author         *Actor               `json:"author"`
	Assignees      Connection[Actor]    `json:"assignees"`
	Labels         Connection[Label]    `json:"labels"`
	Milestone      *Milestone           `json:"milestone"`
	CreatedAt      string               `json:"createdAt"`
	Participants   Connection[Actor]    `json:"participants"`
	Comments       Connection[Comment]  `json:"comments"`
	ReactionGroups []ReactionGroup      `json:"reactionGroups"`
	Reactions      Connection[Reaction] `json:"reactions"`
}

// Connection is the nodes/totalCount wrapper GraphQL puts around lists.
type Connection[T any] struct {
	TotalCount int `json:"totalCount"`
	Nodes      []T `json:"nodes"`
}

// Actor is a user, bot or organization; only the login is requested.
type Actor struct {
	Login string `json:"login"`
}

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// Milestone is the milestone an issue is assigned to.
type Milestone struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// Comment carries the creation timestamp of the most recent comment.
type Comment struct {
	CreatedAt string `json:"createdAt"`
}

// ReactionGroup is the per-kind reaction summary with its running count.
type ReactionGroup struct {
	Content githubv4.ReactionContent `json:"content"`
	Users   struct {
		TotalCount int `json:"totalCount"`
	} `json:"users"`
}

// Reaction is a single reaction and the user who left it. User is nil for
// deleted accounts.
type Reaction struct {
	Content githubv4.ReactionContent `json:"content"`
	User    *Actor                   `json:"user"`
}

// IssuePage represents a page of issues from a GraphQL query along with the
// pagination information needed to fetch the next one.
type IssuePage struct {
	Issues      []Issue
	HasNextPage bool
	EndCursor   string
}

// FetchOptions configures how issues are fetched.
type FetchOptions struct {
	// PageSize controls how many issues to fetch per page. Maximum is 100.
	PageSize int

	// After is the cursor for pagination.
	// Empty string fetches from the beginning.
	After string

	// Direction orders issues by creation time.
	Direction githubv4.OrderDirection

	// Participants adds participant logins to every issue node.
	Participants bool
}

// RepositoryInfo contains basic repository metadata used for progress
// reporting while paginating.
type RepositoryInfo struct {
	TotalIssues int
}
