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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/deckhouse/project-manager-helper/internal/config"
	"github.com/deckhouse/project-manager-helper/internal/dump"
	apperrors "github.com/deckhouse/project-manager-helper/internal/errors"
	"github.com/deckhouse/project-manager-helper/internal/github"
	"github.com/deckhouse/project-manager-helper/internal/metadata"
	"github.com/deckhouse/project-manager-helper/internal/output"
	"github.com/deckhouse/project-manager-helper/internal/report"
	"github.com/deckhouse/project-manager-helper/internal/scratch"
	"github.com/shurcooL/githubv4"
	"github.com/spf13/cobra"
)

func (a *app) newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Fetch every issue and write the raw dump file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			_, err = a.runDump(cmd.Context(), cfg)
			return err
		},
	}
}

func (a *app) newSummarizeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Print the issue count and highest issue number of a dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			f, err := dump.Load(cfg.Output.DumpFile)
			if err != nil {
				return err
			}
			if asJSON {
				if f.Metadata == nil {
					return fmt.Errorf("dump %s carries no run metadata", cfg.Output.DumpFile)
				}
				return metadata.WriteMetadataToWriter(f.Metadata, a.stdout)
			}
			return a.summarize(f)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run metadata stored in the dump as JSON")
	return cmd
}

func (a *app) newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert a dump file into the CSV report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			f, err := dump.Load(cfg.Output.DumpFile)
			if err != nil {
				return err
			}
			return a.convert(cfg, f)
		},
	}
}

// runAll fetches, summarizes and converts in one run.
func (a *app) runAll(ctx context.Context, cfg *config.Config) error {
	f, err := a.runDump(ctx, cfg)
	if err != nil {
		return err
	}
	if err := a.summarize(f); err != nil {
		return err
	}
	return a.convert(cfg, f)
}

// runDump pages through all issues and saves them. Nothing is written unless
// every page succeeds.
func (a *app) runDump(ctx context.Context, cfg *config.Config) (*dump.File, error) {
	token, err := cfg.Token()
	if err != nil {
		return nil, err
	}

	dir, err := scratch.New(cfg.Output.ScratchDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cleanupErr := dir.Cleanup(); cleanupErr != nil {
			a.logger.Warn("failed to remove scratch directory", "path", dir.Path(), "err", cleanupErr)
		}
	}()

	httpClient := github.NewHTTPClient(github.TransportOptions{
		Token:            token,
		Accept:           cfg.GitHub.Accept,
		UserAgent:        "issues-export/" + version,
		Timeout:          cfg.GitHub.Timeout,
		MaxResponseBytes: cfg.GitHub.MaxResponseBytes,
	})
	endpoint := cfg.GitHub.GraphQLEndpoint
	client := github.NewGraphQLClient(httpClient, endpoint, github.NewExecutor(httpClient, endpoint, dir))

	issues, tracker, err := a.fetchIssues(ctx, client, cfg)
	if err != nil {
		return nil, err
	}

	f := dump.New(cfg.FullName(), issues)
	f.Participants = cfg.Export.Participants
	f.Metadata = tracker.GenerateMetadata(version, f.RunID, metadata.RunParams{
		Owner:        cfg.Export.Owner,
		Repository:   cfg.Export.Repository,
		PageSize:     cfg.Export.PageSize,
		Order:        strings.ToUpper(cfg.Export.Order),
		Participants: cfg.Export.Participants,
		MaxPages:     cfg.Export.MaxPages,
	})

	if err := dump.Save(f, cfg.Output.DumpFile); err != nil {
		return nil, fmt.Errorf("failed to save dump: %w", err)
	}
	a.logger.Info("dump written",
		"path", cfg.Output.DumpFile,
		"issues", len(f.Issues),
		"requests", f.Metadata.Results.APICallCount,
		"duration", f.Metadata.Results.Duration,
	)
	return f, nil
}

func (a *app) fetchIssues(ctx context.Context, client github.Client, cfg *config.Config) ([]github.Issue, *metadata.Tracker, error) {
	owner, repo := cfg.Export.Owner, cfg.Export.Repository

	// The total only feeds progress logging.
	total := 0
	if info, err := client.GetRepositoryInfo(ctx, owner, repo); err != nil {
		a.logger.Warn("could not get issue count", "repository", cfg.FullName(), "err", err)
	} else {
		total = info.TotalIssues
	}
	a.logger.Info("fetching issues", "repository", cfg.FullName(), "total", total)

	tracker := metadata.New()
	var issues []github.Issue
	seen := make(map[int]struct{})

	_, err := github.FetchAllIssues(ctx, client, owner, repo, github.PaginateOptions{
		FetchOptions: github.FetchOptions{
			PageSize:     cfg.Export.PageSize,
			Direction:    githubv4.OrderDirection(strings.ToUpper(cfg.Export.Order)),
			Participants: cfg.Export.Participants,
		},
		MaxPages: cfg.Export.MaxPages,
		Logger:   a.logger,
	}, func(page int, batch []github.Issue) error {
		tracker.IncrementAPICall()
		for _, issue := range batch {
			// Pages shift when issues are created mid-run, so the same
			// issue can come back twice. The first copy wins.
			if _, dup := seen[issue.Number]; dup {
				a.logger.Warn("skipping duplicate issue", "page", page, "number", issue.Number)
				continue
			}
			seen[issue.Number] = struct{}{}
			tracker.UpdateIssueStats(issue.Number, parseTime(issue.CreatedAt))
			issues = append(issues, issue)
		}
		a.logger.Info("fetched page", "page", page, "fetched", len(issues), "total", total)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, nil, fmt.Errorf("interrupted: %w", err)
		}
		return nil, nil, err
	}

	return issues, tracker, nil
}

// summarize prints the total issue count and the highest issue number.
func (a *app) summarize(f *dump.File) error {
	tracker := metadata.New()
	for _, issue := range f.Issues {
		tracker.UpdateIssueStats(issue.Number, parseTime(issue.CreatedAt))
	}
	return metadata.WriteSummary(a.stdout, tracker.Stats())
}

// convert writes the CSV report for the issues in f.
func (a *app) convert(cfg *config.Config, f *dump.File) error {
	participants := cfg.Export.Participants
	if participants && !f.Participants {
		return fmt.Errorf("dump %s was fetched without participant data, rerun dump with --participants or convert with --participants=false: %w",
			cfg.Output.DumpFile, apperrors.ErrInvalidConfig)
	}

	rows := report.TransformAll(f.Issues, report.TransformOptions{
		LabelPrefix:  cfg.Export.LabelPrefix,
		Participants: participants,
	})

	w, err := output.Create(cfg.Output.CSVFile, a.stdout)
	if err != nil {
		return err
	}
	if err := output.WriteAll(w, func(dst io.Writer) error {
		return report.WriteCSV(dst, rows, participants)
	}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	a.logger.Info("report written", "path", cfg.Output.CSVFile, "rows", len(rows))
	return nil
}

// parseTime reads an API timestamp; anything unparsable yields the zero time.
func parseTime(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}
