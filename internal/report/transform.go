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
	"strconv"
	"strings"

	"github.com/deckhouse/project-manager-helper/internal/github"
	"github.com/shurcooL/githubv4"
)

// DefaultLabelPrefix selects the labels that make it into the labels column.
const DefaultLabelPrefix = "area/"

var (
	positiveReactions = map[githubv4.ReactionContent]bool{
		githubv4.ReactionContentThumbsUp: true,
		githubv4.ReactionContentHeart:    true,
		githubv4.ReactionContentHooray:   true,
		githubv4.ReactionContentRocket:   true,
	}
	negativeReactions = map[githubv4.ReactionContent]bool{
		githubv4.ReactionContentThumbsDown: true,
		githubv4.ReactionContentConfused:   true,
	}
)

// TransformOptions controls the derived columns.
type TransformOptions struct {
	// LabelPrefix is matched case-sensitively and stripped from kept labels.
	LabelPrefix string

	// Participants adds the participant count column.
	Participants bool
}

// Row is one flattened issue.
type Row struct {
	Number            int
	Title             string
	State             string
	Author            string
	Assignees         string
	Labels            string
	Milestone         string
	Created           string
	LastComment       string
	Comments          int
	ReactionsPositive int
	ReactionsNegative int

	// Participants is only meaningful when HasParticipants is set.
	Participants    int
	HasParticipants bool
}

// Transform derives a Row from issue. Missing sub-objects yield empty fields.
func Transform(issue github.Issue, opts TransformOptions) Row {
	row := Row{
		Number:      issue.Number,
		Title:       issue.Title,
		State:       string(issue.State),
		Assignees:   joinLogins(issue.Assignees.Nodes),
		Labels:      filterLabels(issue.Labels.Nodes, opts.LabelPrefix),
		Created:     datePart(issue.CreatedAt),
		Comments:    issue.Comments.TotalCount,
		LastComment: lastCommentDate(issue.Comments.Nodes),
	}
	if issue.Author != nil {
		row.Author = issue.Author.Login
	}
	if issue.Milestone != nil {
		row.Milestone = issue.Milestone.Title
	}

	for _, group := range issue.ReactionGroups {
		switch {
		case positiveReactions[group.Content]:
			row.ReactionsPositive += group.Users.TotalCount
		case negativeReactions[group.Content]:
			row.ReactionsNegative += group.Users.TotalCount
		}
	}

	if opts.Participants {
		row.HasParticipants = true
		row.Participants = countParticipants(issue)
	}
	return row
}

// Record renders the row as CSV fields in column order.
func (r Row) Record() []string {
	record := []string{
		strconv.Itoa(r.Number),
		r.Title,
		r.State,
		r.Author,
		r.Assignees,
		r.Labels,
		r.Milestone,
		r.Created,
		r.LastComment,
		strconv.Itoa(r.Comments),
		strconv.Itoa(r.ReactionsPositive),
		strconv.Itoa(r.ReactionsNegative),
	}
	if r.HasParticipants {
		record = append(record, strconv.Itoa(r.Participants))
	}
	return record
}

func joinLogins(actors []github.Actor) string {
	logins := make([]string, 0, len(actors))
	for _, a := range actors {
		logins = append(logins, a.Login)
	}
	return strings.Join(logins, ",")
}

func filterLabels(labels []github.Label, prefix string) string {
	kept := make([]string, 0, len(labels))
	for _, l := range labels {
		if name, ok := strings.CutPrefix(l.Name, prefix); ok {
			kept = append(kept, name)
		}
	}
	return strings.Join(kept, ",")
}

// datePart drops everything from the first "T" on.
func datePart(ts string) string {
	date, _, _ := strings.Cut(ts, "T")
	return date
}

// lastCommentDate expects the comments connection to be requested with
// last: 1, so the final node is the most recent comment.
func lastCommentDate(comments []github.Comment) string {
	if len(comments) == 0 {
		return ""
	}
	return datePart(comments[len(comments)-1].CreatedAt)
}

// countParticipants counts distinct logins among participants and reacting
// users. Empty logins (deleted accounts) are not counted.
func countParticipants(issue github.Issue) int {
	seen := make(map[string]struct{})
	for _, p := range issue.Participants.Nodes {
		if p.Login != "" {
			seen[p.Login] = struct{}{}
		}
	}
	for _, r := range issue.Reactions.Nodes {
		if r.User != nil && r.User.Login != "" {
			seen[r.User.Login] = struct{}{}
		}
	}
	return len(seen)
}
