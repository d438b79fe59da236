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
	"path/filepath"
	"slices"
	"strings"
)

// ROMExtensions lists every raw ROM or disc image extension the analyzer
// can dispatch on. Archive members are filtered against this list.
var ROMExtensions = []string{
	".nes",
	".smc", ".sfc",
	".n64", ".v64", ".z64",
	".sms",
	".gg",
	".md", ".gen", ".32x",
	".gb", ".gbc",
	".gba",
	".scd",
	".iso", ".bin", ".img", ".psx",
}

const (
	ExtZIP = ".zip"
	ExtCHD = ".chd"
)

// ArchiveExtensions are containers that are unwrapped before dispatch.
var ArchiveExtensions = []string{ExtZIP, ExtCHD}

// MaxPayloadSize caps how much decompressed data is pulled out of an archive.
// Every supported header lives well inside this window.
const MaxPayloadSize = 128 * 1024

// Ext returns the lower-cased extension of path including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsROMName reports whether name ends with a supported ROM extension.
func IsROMName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range ROMExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsArchiveName reports whether name is a ZIP or CHD container.
func IsArchiveName(name string) bool {
	return slices.Contains(ArchiveExtensions, Ext(name))
}

// IsSupported reports whether path can be analyzed at all.
func IsSupported(path string) bool {
	return IsROMName(path) || IsArchiveName(path)
}
