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

package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name string
	data []byte
}

func buildZIP(t *testing.T, entries ...zipEntry) *bytes.Reader {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		require.NoError(t, err)
		if e.data != nil {
			_, err = f.Write(e.data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return bytes.NewReader(buf.Bytes())
}

func nesHeader() []byte {
	return append([]byte("NES\x1a"), make([]byte, 12)...)
}

func TestFirstZIPEntry(t *testing.T) {
	t.Parallel()

	r := buildZIP(t,
		zipEntry{name: "roms/"},
		zipEntry{name: "readme.txt", data: []byte("hello")},
		zipEntry{name: "roms/Game.NES", data: nesHeader()},
		zipEntry{name: "other.sfc", data: []byte{1, 2, 3}},
	)

	ex, err := FirstZIPEntry(r, r.Size(), "pack.zip")
	require.NoError(t, err)
	assert.Equal(t, "roms/Game.NES", ex.Name)
	assert.Equal(t, nesHeader(), ex.Data)
}

func TestFirstZIPEntryCapsPayload(t *testing.T) {
	t.Parallel()

	big := bytes.Repeat([]byte{0xAB}, rom.MaxPayloadSize+4096)
	r := buildZIP(t, zipEntry{name: "big.bin", data: big})

	ex, err := FirstZIPEntry(r, r.Size(), "big.zip")
	require.NoError(t, err)
	assert.Len(t, ex.Data, rom.MaxPayloadSize)
}

func TestFirstZIPEntryNoSupportedROM(t *testing.T) {
	t.Parallel()

	r := buildZIP(t, zipEntry{name: "notes.txt", data: []byte("x")}, zipEntry{name: "dir.nes/"})

	_, err := FirstZIPEntry(r, r.Size(), "pack.zip")
	require.ErrorIs(t, err, rom.ErrNoSupportedROM)

	var archiveErr *rom.ArchiveError
	require.ErrorAs(t, err, &archiveErr)
	assert.Equal(t, "pack.zip", archiveErr.Path)
}

func TestFirstZIPEntryCorrupt(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader([]byte("definitely not a zip"))
	_, err := FirstZIPEntry(r, r.Size(), "bad.zip")

	var archiveErr *rom.ArchiveError
	require.ErrorAs(t, err, &archiveErr)
	assert.Equal(t, "open zip", archiveErr.Op)
	assert.Equal(t, "bad.zip", archiveErr.Path)
}

func TestEachZIPEntry(t *testing.T) {
	t.Parallel()

	errBad := errors.New("bad header")
	r := buildZIP(t,
		zipEntry{name: "a.nes", data: []byte("junk")},
		zipEntry{name: "b.nes", data: nesHeader()},
		zipEntry{name: "c.nes", data: nesHeader()},
	)

	var seen []string
	err := EachZIPEntry(r, r.Size(), "pack.zip", func(ex *Extraction) error {
		seen = append(seen, ex.Name)
		if !bytes.HasPrefix(ex.Data, []byte("NES\x1a")) {
			return errBad
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.nes", "b.nes"}, seen, "stops at the first accepted entry")
}

func TestEachZIPEntryAllRejected(t *testing.T) {
	t.Parallel()

	errBad := errors.New("bad header")
	r := buildZIP(t,
		zipEntry{name: "a.nes", data: []byte("junk")},
		zipEntry{name: "b.gba", data: []byte("junk")},
	)

	calls := 0
	err := EachZIPEntry(r, r.Size(), "pack.zip", func(*Extraction) error {
		calls++
		return errBad
	})
	assert.Equal(t, 2, calls)
	require.ErrorIs(t, err, rom.ErrNoValidHeader)
	require.ErrorIs(t, err, errBad)
	assert.NotErrorIs(t, err, rom.ErrNoSupportedROM)
}

func TestEachZIPEntryNoCandidates(t *testing.T) {
	t.Parallel()

	r := buildZIP(t, zipEntry{name: "save.srm", data: []byte{0}})
	err := EachZIPEntry(r, r.Size(), "pack.zip", func(*Extraction) error {
		t.Fatal("callback must not run")
		return nil
	})
	require.ErrorIs(t, err, rom.ErrNoSupportedROM)
}
