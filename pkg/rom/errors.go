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

package rom

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSupportedROM means an archive held no entry with a supported ROM
	// extension, so there was nothing to try.
	ErrNoSupportedROM = errors.New("no supported ROM found in archive")
	// ErrNoValidHeader means an archive held supported entries but every one
	// of them failed header analysis.
	ErrNoValidHeader = errors.New("no valid ROM header found in archive")
	// ErrCodec marks failures reported by a decompression codec.
	ErrCodec = errors.New("codec error")
)

// UnsupportedFormatError is returned when a path's extension doesn't map to
// any known console or container.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported format: " + e.Path
}

// DataTooSmallError is returned by a reader whose header window doesn't fit
// in the supplied buffer.
type DataTooSmallError struct {
	Detail       string
	FileSize     int
	RequiredSize int
}

func (e *DataTooSmallError) Error() string {
	return fmt.Sprintf(
		"rom data too small: %d bytes, requires at least %d bytes (%s)",
		e.FileSize, e.RequiredSize, e.Detail,
	)
}

// InvalidSignatureError is returned when mandatory magic bytes are missing.
type InvalidSignatureError struct {
	Console string
	Detail  string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid %s signature: %s", e.Console, e.Detail)
}

// ArchiveError wraps a failure from the ZIP or CHD layer with the path of the
// archive and the operation that failed.
type ArchiveError struct {
	Err  error
	Path string
	Op   string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// RequireSize returns a DataTooSmallError when data is shorter than size.
func RequireSize(data []byte, size int, detail string) error {
	if len(data) < size {
		return &DataTooSmallError{
			FileSize:     len(data),
			RequiredSize: size,
			Detail:       detail,
		}
	}
	return nil
}
