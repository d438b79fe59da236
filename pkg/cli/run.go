// romcheck
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of romcheck.
//
// romcheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// romcheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with romcheck.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/ZaparooProject/romcheck/pkg/analyzer"
	"github.com/ZaparooProject/romcheck/pkg/config"
	"github.com/ZaparooProject/romcheck/pkg/helpers"
	"github.com/ZaparooProject/romcheck/pkg/output"
	"github.com/ZaparooProject/romcheck/pkg/systemdefs"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrFilesFailed is returned by Run when at least one input could not be
// analyzed. Every other input is still reported.
var ErrFilesFailed = errors.New("one or more files could not be analyzed")

var errNoInput = errors.New("no input files given")

// Env is what Run reads from and writes to.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Fs     afero.Fs
	Clock  clockwork.Clock
}

// Run parses args, loads config, analyzes every input and writes the
// report to env.Stdout. Logs and the text summary go to env.Stderr.
func Run(ctx context.Context, env Env, args []string) error {
	if env.Fs == nil {
		env.Fs = afero.NewOsFs()
	}

	set := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	set.SetOutput(env.Stderr)
	set.Usage = usage(set, env.Stderr)
	flags := SetupFlags(set)

	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *flags.Version {
		_, _ = fmt.Fprintf(env.Stdout, "romcheck v%s\n", config.AppVersion)
		return nil
	}
	if *flags.ListSystems {
		for _, s := range systemdefs.AllSystems() {
			_, _ = fmt.Fprintf(env.Stdout, "%-14s %s\n", s.ID, s.Name)
		}
		return nil
	}

	cfg, err := config.NewConfig(env.Fs, *flags.Config, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := flags.apply(cfg); err != nil {
		return err
	}

	err = helpers.InitLogging(helpers.LogOptions{
		Console: env.Stderr,
		File:    cfg.LogFile(),
		Level:   helpers.LogLevel(cfg.DebugLogging(), cfg.Quiet()),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if set.NArg() == 0 {
		set.Usage()
		return errNoInput
	}

	format, err := output.ParseFormat(cfg.Output())
	if err != nil {
		return err
	}

	paths, err := helpers.ExpandPaths(env.Fs, set.Args(), cfg.Recursive())
	if err != nil {
		return err
	}
	log.Debug().
		Int("files", len(paths)).
		Int("threads", cfg.Threads()).
		Str("format", string(format)).
		Msg("starting analysis")

	batch := analyzer.Batch{
		Analyzer: analyzer.New(env.Fs),
		Clock:    env.Clock,
		Threads:  cfg.Threads(),
	}
	results, summary := batch.Run(ctx, paths)

	for _, r := range results {
		if r.Err != nil {
			log.Error().Err(r.Err).Str("path", r.Path).Msg("failed to analyze file")
		}
	}

	if err := output.Write(env.Stdout, format, FilterSystems(results, cfg.Systems())); err != nil {
		return err
	}

	if format == output.FormatText && !cfg.Quiet() {
		_, _ = fmt.Fprintln(env.Stderr, summary.String())
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, summary.Failed, summary.Total)
	}
	return nil
}

// FilterSystems keeps failures and the results whose system is in systems.
// An empty list keeps everything.
func FilterSystems(results []analyzer.BatchResult, systems []string) []analyzer.BatchResult {
	if len(systems) == 0 {
		return results
	}
	out := make([]analyzer.BatchResult, 0, len(results))
	for _, r := range results {
		if r.Result == nil || slices.Contains(systems, r.Result.System()) {
			out = append(out, r)
		}
	}
	return out
}

// apply copies explicitly passed flags over the loaded config.
func (f *Flags) apply(cfg *config.Instance) error {
	if f.isFlagPassed("threads") {
		if *f.Threads < 0 || *f.Threads > config.MaxThreads {
			return fmt.Errorf("threads must be between 0 and %d", config.MaxThreads)
		}
		cfg.SetThreads(*f.Threads)
	}

	switch {
	case f.isFlagPassed("format"):
		format, err := output.ParseFormat(*f.Format)
		if err != nil {
			return err
		}
		cfg.SetOutput(string(format))
	case *f.JSON:
		cfg.SetOutput(config.OutputJSON)
	}

	if f.isFlagPassed("r") {
		cfg.SetRecursive(*f.Recursive)
	}
	if f.isFlagPassed("v") {
		cfg.SetDebugLogging(*f.Verbose)
	}
	if f.isFlagPassed("q") {
		cfg.SetQuiet(*f.Quiet)
	}
	if f.isFlagPassed("systems") {
		if err := cfg.SetSystems(splitList(*f.Systems)); err != nil {
			return fmt.Errorf("invalid -systems: %w", err)
		}
	}
	return nil
}
