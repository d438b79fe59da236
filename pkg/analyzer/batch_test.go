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
	"sync/atomic"
	"testing"
	"time"

	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBatchRunPreservesOrder(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a (Europe).nes", nesROM(), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/b.nes", []byte("short"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/c.gba", make([]byte, 0xC0), 0o644))

	paths := []string{"/a (Europe).nes", "/b.nes", "/c.gba", "/d.xyz"}
	b := &Batch{Analyzer: New(fs), Threads: 2, Clock: clockwork.NewFakeClock()}
	results, summary := b.Run(context.Background(), paths)

	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, paths[i], r.Path)
		assert.True(t, (r.Err == nil) != (r.Result == nil), "exactly one of Err and Result for %s", r.Path)
	}
	assert.Equal(t, KindNES, results[0].Result.Kind())
	var tooSmall *rom.DataTooSmallError
	require.ErrorAs(t, results[1].Err, &tooSmall)
	assert.Equal(t, KindGBA, results[2].Result.Kind())
	var unsupported *rom.UnsupportedFormatError
	require.ErrorAs(t, results[3].Err, &unsupported)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Analyzed)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 1, summary.Mismatches)
}

func TestBatchRunBoundsWorkers(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	clock := clockwork.NewFakeClock()
	slow := func(data []byte, name string) (Result, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		clock.Advance(time.Second)
		running.Add(-1)
		return Classify(data, name)
	}

	fs := afero.NewMemMapFs()
	paths := make([]string, 12)
	for i := range paths {
		paths[i] = "/game" + string(rune('a'+i)) + ".nes"
		require.NoError(t, afero.WriteFile(fs, paths[i], nesROM(), 0o644))
	}

	b := &Batch{Analyzer: New(fs, WithReader(KindNES, slow)), Threads: 3, Clock: clock}
	results, summary := b.Run(context.Background(), paths)

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Equal(t, len(paths), summary.Analyzed)
	assert.Equal(t, 12*time.Second, summary.Elapsed)
	for _, r := range results {
		require.NoError(t, r.Err)
	}
	assert.Contains(t, summary.String(), "12 files: 12 analyzed, 0 failed")
}

func TestBatchRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &Batch{Analyzer: New(afero.NewMemMapFs()), Threads: 1}
	results, summary := b.Run(ctx, []string{"/a.nes", "/b.nes"})

	for _, r := range results {
		require.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Analyzed)
}
