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

package analyzer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one input path. Exactly one of Result and
// Err is set.
type BatchResult struct {
	Err    error
	Result *Result
	Path   string
	Index  int
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Elapsed    time.Duration
	Total      int
	Analyzed   int
	Failed     int
	Mismatches int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d files: %d analyzed, %d failed, %d region mismatches in %s",
		s.Total, s.Analyzed, s.Failed, s.Mismatches, s.Elapsed.Round(time.Millisecond))
}

// Batch analyzes many files with a bounded number of workers.
type Batch struct {
	Analyzer *Analyzer
	Clock    clockwork.Clock
	Threads  int
}

// Run analyzes every path and returns the results in input order. A
// failure on one path never stops the others. Once ctx is cancelled no
// further paths are started and the remaining ones report ctx's error.
func (b *Batch) Run(ctx context.Context, paths []string) ([]BatchResult, Summary) {
	clock := b.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	threads := b.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	start := clock.Now()

	results := make([]BatchResult, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(threads)

	for i, p := range paths {
		results[i] = BatchResult{Index: i, Path: p}
		if err := ctx.Err(); err != nil {
			results[i].Err = fmt.Errorf("analysis cancelled: %w", err)
			continue
		}
		g.Go(func() error {
			res, err := b.Analyzer.AnalyzeFile(ctx, p)
			if err != nil {
				log.Debug().Err(err).Str("path", p).Msg("analysis failed")
				results[i].Err = err
				return nil
			}
			results[i].Result = &res
			return nil
		})
	}
	_ = g.Wait()

	return results, Summarize(results, clock.Since(start))
}

// Summarize counts outcomes in results.
func Summarize(results []BatchResult, elapsed time.Duration) Summary {
	s := Summary{Total: len(results), Elapsed: elapsed}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Result != nil:
			s.Analyzed++
			if r.Result.RegionMismatch() {
				s.Mismatches++
			}
		}
	}
	return s
}
