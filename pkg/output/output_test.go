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

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ZaparooProject/romcheck/pkg/analyzer"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResults(t *testing.T) []analyzer.BatchResult {
	t.Helper()

	nes, err := analyzer.Classify(append([]byte("NES\x1a"), make([]byte, 12)...), "Game (Europe).nes")
	require.NoError(t, err)
	gba, err := analyzer.Classify(make([]byte, 0xC0), "Game (Japan).gba")
	require.NoError(t, err)

	return []analyzer.BatchResult{
		{Index: 0, Path: "Game (Europe).nes", Result: &nes},
		{Index: 1, Path: "broken.sfc", Err: errors.New("rom data too small")},
		{Index: 2, Path: "Game (Japan).gba", Result: &gba},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleResults(t)))

	out := buf.String()
	assert.Contains(t, out, "System:       Nintendo Entertainment System (NES)")
	assert.Contains(t, out, "System:       Game Boy Advance (GBA)")
	assert.NotContains(t, out, "broken.sfc")
	assert.Equal(t, 1, strings.Count(out, "Warning:"))
	assert.Equal(t, 3, strings.Count(out, separator))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleResults(t)))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "NES", got[0]["console"])
	assert.Equal(t, true, got[0]["region_mismatch"])
	assert.Equal(t, "GBA", got[1]["console"])
	assert.Equal(t, "Japan", got[1]["region"])
}

func TestWriteJSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleResults(t)))

	var rows []Row
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "NES", rows[0].Console)
	assert.Equal(t, "NES", rows[0].System)
	assert.True(t, rows[0].RegionMismatch)
	assert.Equal(t, "broken.sfc", rows[1].Path)
	assert.Equal(t, "rom data too small", rows[1].Error)
	assert.Empty(t, rows[1].Console)
	assert.Equal(t, "GBA", rows[2].Console)
	assert.Equal(t, "Japan", rows[2].Region)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleResults(t)))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "NES", got[0]["console"])
	assert.Equal(t, "Game (Japan).gba", got[1]["source_name"])
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	require.Error(t, Write(&bytes.Buffer{}, Format("xml"), nil))
}
