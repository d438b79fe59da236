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

// Package archive pulls a bounded ROM payload out of ZIP archives and CHD
// disc images without reading either in full.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/rs/zerolog/log"
)

// Extraction is a payload read from inside an archive. Name is the entry
// name for ZIP members and is used for dispatch in place of the archive's
// own extension.
type Extraction struct {
	Name string
	Data []byte
}

// ReadZIPEntry reads at most limit decompressed bytes of f.
func ReadZIPEntry(f *zip.File, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file in zip: %w", err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Str("entry", f.Name).Msg("failed to close zip entry")
		}
	}()

	data, err := io.ReadAll(io.LimitReader(rc, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return data, nil
}

// supportedEntries lists the non-directory entries with a supported ROM
// extension in archive order.
func supportedEntries(zr *zip.Reader) []*zip.File {
	var files []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !rom.IsROMName(f.Name) {
			continue
		}
		files = append(files, f)
	}
	return files
}

func openZIP(r io.ReaderAt, size int64, path string) (*zip.Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &rom.ArchiveError{Path: path, Op: "open zip", Err: err}
	}
	return zr, nil
}

// FirstZIPEntry returns the first supported ROM in the archive, capped to
// rom.MaxPayloadSize bytes.
func FirstZIPEntry(r io.ReaderAt, size int64, path string) (*Extraction, error) {
	zr, err := openZIP(r, size, path)
	if err != nil {
		return nil, err
	}

	entries := supportedEntries(zr)
	if len(entries) == 0 {
		return nil, &rom.ArchiveError{Path: path, Op: "scan zip", Err: rom.ErrNoSupportedROM}
	}

	f := entries[0]
	data, err := ReadZIPEntry(f, rom.MaxPayloadSize)
	if err != nil {
		return nil, &rom.ArchiveError{Path: path, Op: "read zip", Err: err}
	}
	log.Debug().Str("archive", path).Str("entry", f.Name).Int("bytes", len(data)).
		Msg("extracted zip entry")
	return &Extraction{Name: f.Name, Data: data}, nil
}

// EachZIPEntry hands every supported ROM in the archive to fn, in order,
// until fn accepts one by returning nil. If the archive has supported
// entries but fn rejects them all the error wraps rom.ErrNoValidHeader
// together with the last rejection.
func EachZIPEntry(r io.ReaderAt, size int64, path string, fn func(*Extraction) error) error {
	zr, err := openZIP(r, size, path)
	if err != nil {
		return err
	}

	entries := supportedEntries(zr)
	if len(entries) == 0 {
		return &rom.ArchiveError{Path: path, Op: "scan zip", Err: rom.ErrNoSupportedROM}
	}

	var errs []error
	for _, f := range entries {
		data, err := ReadZIPEntry(f, rom.MaxPayloadSize)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		err = fn(&Extraction{Name: f.Name, Data: data})
		if err == nil {
			return nil
		}
		log.Debug().Err(err).Str("archive", path).Str("entry", f.Name).
			Msg("zip entry rejected, trying next")
		errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
	}

	return &rom.ArchiveError{
		Path: path,
		Op:   "scan zip",
		Err:  errors.Join(append([]error{rom.ErrNoValidHeader}, errs...)...),
	}
}
