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
	gbaHeaderSize = 0xC0
	gbaTitle      = 0xA0
	gbaGameCode   = 0xAC
	gbaMakerCode  = 0xB0
	gbaFixedValue = 0xB2
	gbaRegionByte = 0xB4
	gbaFixedMagic = 0x96
)

var gbaRegions = map[byte]regionCode{
	0x00: {"Japan", region.Japan},
	0x01: {"USA", region.USA},
	0x02: {"Europe", region.Europe},
	'J':  {"Japan", region.Japan},
	'U':  {"USA", region.USA},
	'E':  {"Europe", region.Europe},
	'P':  {"Europe", region.Europe},
}

type GBAAnalysis struct {
	Common     `yaml:",inline"`
	GameTitle  string `json:"game_title" yaml:"game_title"`
	GameCode   string `json:"game_code" yaml:"game_code"`
	MakerCode  string `json:"maker_code" yaml:"maker_code"`
	FixedValue bool   `json:"fixed_value_ok" yaml:"fixed_value_ok"`
}

// GBARegion maps the region byte at 0xB4, either a raw index or an ASCII
// letter.
func GBARegion(code byte) (string, region.Region) {
	rc, ok := gbaRegions[code]
	if !ok {
		rc = unknownCode
	}
	return rc.label, rc.region
}

// AnalyzeGBA reads a Game Boy Advance cartridge header.
func AnalyzeGBA(data []byte, sourceName string) (*GBAAnalysis, error) {
	if err := rom.RequireSize(data, gbaHeaderSize, "GBA header"); err != nil {
		return nil, err
	}

	label, declared := GBARegion(data[gbaRegionByte])
	return &GBAAnalysis{
		Common:     newCommon(sourceName, label, declared),
		GameTitle:  rom.HeaderString(data[gbaTitle:gbaGameCode]),
		GameCode:   rom.ASCIIString(data[gbaGameCode:gbaMakerCode]),
		MakerCode:  rom.ASCIIString(data[gbaMakerCode:gbaFixedValue]),
		FixedValue: data[gbaFixedValue] == gbaFixedMagic,
	}, nil
}

func (a *GBAAnalysis) Print() string {
	r := newReport(a.SourceName, "Game Boy Advance (GBA)")
	r.line("Game Title", a.GameTitle)
	r.line("Game Code", a.GameCode)
	r.line("Maker Code", a.MakerCode)
	r.line("Region", a.Region.String())
	return r.String()
}
