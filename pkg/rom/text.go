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
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// HeaderString converts a fixed-width header field to a trimmed string.
// Padding NULs and spaces are removed from both ends. Bytes outside ASCII are
// decoded as Shift-JIS, which covers the JIS X 0201 katakana used in
// Japanese SNES and Genesis titles.
func HeaderString(field []byte) string {
	field = bytes.Trim(field, "\x00 ")
	if len(field) == 0 {
		return ""
	}

	if isASCII(field) {
		return strings.TrimSpace(string(field))
	}

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(field)
	if err != nil || !utf8.Valid(decoded) {
		return strings.TrimSpace(strings.ToValidUTF8(string(field), string(utf8.RuneError)))
	}
	return strings.TrimSpace(string(decoded))
}

// ASCIIString is HeaderString for fields that are plain ASCII by definition,
// such as serials and maker codes. Non-printable bytes are dropped.
func ASCIIString(field []byte) string {
	var sb strings.Builder
	for _, c := range bytes.Trim(field, "\x00 ") {
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		}
	}
	return strings.TrimSpace(sb.String())
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
