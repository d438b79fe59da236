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

package consoles

import (
	"github.com/ZaparooProject/romcheck/pkg/region"
	"github.com/ZaparooProject/romcheck/pkg/rom"
)

const (
	n64HeaderSize  = 0x40
	n64Title       = 0x20
	n64TitleEnd    = 0x34
	n64GameID      = 0x3B
	n64CountryCode = 0x3E
	n64Version     = 0x3F
)

// N64 dumps come in three byte orders, told apart by the first word of the
// PI configuration.
const (
	N64ByteOrderBigEndian    = "z64"
	N64ByteOrderByteSwapped  = "v64"
	N64ByteOrderLittleEndian = "n64"
	N64ByteOrderUnknown      = "unknown"
)

var n64Regions = map[byte]regionCode{
	'E': {"USA (NTSC)", region.USA},
	'J': {"Japan (NTSC)", region.Japan},
	'P': {"Europe (PAL)", region.Europe},
	'D': {"Germany (PAL)", region.Europe},
	'F': {"France (PAL)", region.Europe},
	'U': {"USA (Legacy)", region.USA},
}

type N64Analysis struct {
	Common      `yaml:",inline"`
	CountryCode string `json:"country_code" yaml:"country_code"`
	GameTitle   string `json:"game_title" yaml:"game_title"`
	GameID      string `json:"game_id" yaml:"game_id"`
	ByteOrder   string `json:"byte_order" yaml:"byte_order"`
	Version     byte   `json:"version" yaml:"version"`
}

// N64Region maps the one-letter country code at 0x3E.
func N64Region(code byte) (string, region.Region) {
	rc, ok := n64Regions[code]
	if !ok {
		rc = unknownCode
	}
	return rc.label, rc.region
}

// N64ByteOrder identifies the dump layout from its first four bytes.
func N64ByteOrder(data []byte) string {
	if len(data) < 4 {
		return N64ByteOrderUnknown
	}
	switch {
	case data[0] == 0x80 && data[1] == 0x37 && data[2] == 0x12 && data[3] == 0x40:
		return N64ByteOrderBigEndian
	case data[0] == 0x37 && data[1] == 0x80 && data[2] == 0x40 && data[3] == 0x12:
		return N64ByteOrderByteSwapped
	case data[0] == 0x40 && data[1] == 0x12 && data[2] == 0x37 && data[3] == 0x80:
		return N64ByteOrderLittleEndian
	default:
		return N64ByteOrderUnknown
	}
}

// normalizeN64 returns a big-endian copy of the header. Unknown layouts are
// read as-is.
func normalizeN64(header []byte, order string) []byte {
	out := make([]byte, len(header))
	copy(out, header)
	switch order {
	case N64ByteOrderByteSwapped:
		for i := 0; i+1 < len(out); i += 2 {
			out[i], out[i+1] = out[i+1], out[i]
		}
	case N64ByteOrderLittleEndian:
		for i := 0; i+3 < len(out); i += 4 {
			out[i], out[i+1], out[i+2], out[i+3] = out[i+3], out[i+2], out[i+1], out[i]
		}
	}
	return out
}

// AnalyzeN64 reads a Nintendo 64 cartridge header in any byte order.
func AnalyzeN64(data []byte, sourceName string) (*N64Analysis, error) {
	if err := rom.RequireSize(data, n64HeaderSize, "N64 header"); err != nil {
		return nil, err
	}

	order := N64ByteOrder(data)
	h := normalizeN64(data[:n64HeaderSize], order)
	code := h[n64CountryCode]
	label, declared := N64Region(code)

	return &N64Analysis{
		Common:      newCommon(sourceName, label, declared),
		CountryCode: rom.ASCIIString(h[n64CountryCode:n64Version]),
		GameTitle:   rom.HeaderString(h[n64Title:n64TitleEnd]),
		GameID:      rom.ASCIIString(h[n64GameID:n64CountryCode]),
		ByteOrder:   order,
		Version:     h[n64Version],
	}, nil
}

func (a *N64Analysis) Print() string {
	r := newReport(a.SourceName, "Nintendo 64 (N64)")
	r.line("Game Title", a.GameTitle)
	r.line("Region", a.Region.String())
	r.line("Code", a.CountryCode)
	r.line("Game ID", a.GameID)
	r.line("Byte Order", a.ByteOrder)
	return r.String()
}
