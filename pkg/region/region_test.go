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

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   string
		region Region
	}{
		{name: "empty", region: Unknown, want: "Unknown"},
		{name: "single", region: Japan, want: "Japan"},
		{name: "pair in canonical order", region: Europe | Japan, want: "Japan/Europe"},
		{name: "world", region: World, want: "World"},
		{name: "world plus asia", region: World | Asia, want: "World/Asia"},
		{name: "all east asia", region: Asia | China | Korea, want: "Asia/China/Korea"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.region.String())
		})
	}
}

func TestRegionSetAlgebra(t *testing.T) {
	t.Parallel()

	r := Japan.Union(USA)
	assert.True(t, r.Contains(USA))
	assert.False(t, r.Contains(USA|Europe))
	assert.True(t, r.Overlaps(USA|Europe))
	assert.Equal(t, USA, r.Intersect(USA|Europe))
	assert.Equal(t, []Region{Japan, USA}, r.Flags())
	assert.True(t, Unknown.IsEmpty())
	assert.Empty(t, Unknown.Flags())
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, r := range []Region{Unknown, Japan, USA | Europe, World, World | Korea, Asia | China} {
		parsed, err := Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed, "round trip of %s", r)
	}

	_, err := Parse("Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestRegionTextMarshaling(t *testing.T) {
	t.Parallel()

	text, err := (Japan | USA).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Japan/USA", string(text))

	var r Region
	require.NoError(t, r.UnmarshalText([]byte("usa/europe")))
	assert.Equal(t, USA|Europe, r)
}

func TestMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inferred Region
		declared Region
		want     bool
	}{
		{name: "unknown filename", inferred: Unknown, declared: Japan, want: false},
		{name: "unknown header", inferred: USA, declared: Unknown, want: false},
		{name: "same region", inferred: USA, declared: USA, want: false},
		{name: "header covers more", inferred: USA, declared: USA | Japan, want: false},
		{name: "filename covers more", inferred: World, declared: Europe, want: false},
		{name: "disjoint", inferred: Japan, declared: Europe, want: true},
		{name: "disjoint multi", inferred: Japan | USA, declared: Europe | Asia, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Mismatch(tt.inferred, tt.declared))
		})
	}
}

func TestCheckUsesBaseName(t *testing.T) {
	t.Parallel()

	// the directory name must not leak into inference
	assert.False(t, Check("/roms/Europe/Game (Japan).sfc", Japan))
	assert.True(t, Check(`C:\roms\USA\Game (Japan).sfc`, USA))
	assert.False(t, Check("Game.sfc", USA))
}
