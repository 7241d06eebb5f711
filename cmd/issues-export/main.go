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
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deckhouse/project-manager-helper/internal/config"
	apperrors "github.com/deckhouse/project-manager-helper/internal/errors"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev"

// globalOptions holds the persistent flags shared by every mode.
type globalOptions struct {
	configPath   string
	repo         string
	pageSize     int
	maxPages     int
	order        string
	labelPrefix  string
	participants bool
	dumpFile     string
	outputFile   string
	verbose      bool
}

type app struct {
	opts   globalOptions
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func main() {
	// Cancelling on SIGINT/SIGTERM aborts the in-flight request; deferred
	// cleanup of the scratch directory then runs before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and maps any error to exit status 1.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	rootCmd := a.newRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger := a.logger
		if logger == nil {
			logger = newLogger(stderr, false)
		}
		logger.Error("export failed", "kind", apperrors.Kind(err), "err", err)
		return 1
	}
	return 0
}

func (a *app) newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "issues-export",
		Short: "Export GitHub repository issues to CSV",
		Long: `issues-export pages through every issue of a GitHub repository using the
GraphQL API and writes a CSV report with one row per issue.

Without a subcommand it runs dump, summarize and convert in sequence.

Authentication is required via the environment variable named by
github.token_env in the config file (GITHUB_TOKEN by default).`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // execute logs the error
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.stderr, a.opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return a.runAll(cmd.Context(), cfg)
		},
	}

	a.bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(a.newDumpCommand())
	rootCmd.AddCommand(a.newSummarizeCommand())
	rootCmd.AddCommand(a.newConvertCommand())

	return rootCmd
}

func (a *app) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&a.opts.configPath, "config", "", "Path to config file (default: .issues-export.yaml or ~/.config/issues-export/config.yaml)")
	flags.StringVar(&a.opts.repo, "repo", "", "Repository to export in <owner>/<name> form")
	flags.IntVar(&a.opts.pageSize, "page-size", 0, fmt.Sprintf("Issues per request (1-%d)", config.MaxPageSize))
	flags.IntVar(&a.opts.maxPages, "max-pages", 0, "Stop with an error after this many pages (0: no limit)")
	flags.StringVar(&a.opts.order, "order", "", "Creation order of issues: ASC or DESC")
	flags.StringVar(&a.opts.labelPrefix, "label-prefix", "", "Only labels with this prefix appear in the labels column")
	flags.BoolVar(&a.opts.participants, "participants", false, "Request participants and add the participants column")
	flags.StringVar(&a.opts.dumpFile, "dump", "", "Raw dump file path")
	flags.StringVar(&a.opts.outputFile, "output", "", "CSV output path, - for stdout")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig merges defaults, config file, environment and the flags that
// were set explicitly, then validates the result.
func (a *app) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadConfig(a.opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidConfig)
	}

	if flags.Changed("repo") {
		if err := cfg.SetRepository(a.opts.repo); err != nil {
			return nil, err
		}
	}
	if flags.Changed("page-size") {
		cfg.Export.PageSize = a.opts.pageSize
	}
	if flags.Changed("max-pages") {
		cfg.Export.MaxPages = a.opts.maxPages
	}
	if flags.Changed("order") {
		cfg.Export.Order = a.opts.order
	}
	if flags.Changed("label-prefix") {
		cfg.Export.LabelPrefix = a.opts.labelPrefix
	}
	if flags.Changed("participants") {
		cfg.Export.Participants = a.opts.participants
	}
	if flags.Changed("dump") {
		cfg.Output.DumpFile = a.opts.dumpFile
	}
	if flags.Changed("output") {
		cfg.Output.CSVFile = a.opts.outputFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}))
}
