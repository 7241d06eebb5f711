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

// Package main implements the issues-export command-line interface.
// It pages through every issue of a GitHub repository over the GraphQL API
// and writes a CSV report with one row per issue.
//
// The CLI supports:
//   - dump: fetch all issues into a checksummed JSON dump file
//   - summarize: print the issue count and highest issue number of a dump
//   - convert: turn a dump into the CSV report
//   - no subcommand: all three in sequence
//
// Usage:
//
//	issues-export [dump|summarize|convert] [--repo owner/name] [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	issues-export --repo deckhouse/deckhouse --output issues.csv
//
// Exit codes:
//   - 0: Success
//   - 1: Any error (missing token, transport failure, API error, bad dump)
package main
