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
	"strings"

	"github.com/ZaparooProject/romcheck/pkg/region"
	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/rs/zerolog/log"
)

const (
	genesisHeaderSize     = 0x200
	genesisConsoleName    = 0x100
	genesisConsoleNameEnd = 0x110
	genesisDomesticTitle  = 0x120
	genesisIntlTitle      = 0x150
	genesisSerial         = 0x180
	genesisSerialEnd      = 0x18E
	genesisIntlTitleEnd   = 0x180
	genesisRegionField    = 0x1F0
	genesisRegionFieldEnd = 0x1F3
)

// GenesisSignatures are the console names a Mega Drive header starts with.
var GenesisSignatures = []string{"SEGA MEGA DRIVE", "SEGA GENESIS"}

var genesisRegions = map[byte]regionCode{
	'J': {"Japan (NTSC-J)", region.Japan},
	'U': {"USA (NTSC-U)", region.USA},
	'E': {"Europe (PAL)", region.Europe},
	'A': {"Asia (NTSC)", region.Asia},
	'B': {"Brazil (PAL-M)", region.Europe},
	'C': {"China (NTSC)", region.China},
	'F': {"France (PAL)", region.Europe},
	'K': {"Korea (NTSC)", region.Korea},
	'L': {"UK (PAL)", region.Europe},
	'S': {"Scandinavia (PAL)", region.Europe},
	'T': {"Taiwan (NTSC)", region.Asia},
	'4': {"USA/Europe (NTSC/PAL)", region.USA | region.Europe},
}

type GenesisAnalysis struct {
	Common                 `yaml:",inline"`
	ConsoleName            string `json:"console_name" yaml:"console_name"`
	GameTitleDomestic      string `json:"game_title_domestic" yaml:"game_title_domestic"`
	GameTitleInternational string `json:"game_title_international" yaml:"game_title_international"`
	Serial                 string `json:"serial" yaml:"serial"`
	RegionCodeByte         byte   `json:"region_code_byte" yaml:"region_code_byte"`
	SignatureValid         bool   `json:"signature_valid" yaml:"signature_valid"`
}

// GenesisRegion maps the first region byte at 0x1F0.
func GenesisRegion(code byte) (string, region.Region) {
	rc, ok := genesisRegions[code]
	if !ok {
		return "Unknown Code", region.Unknown
	}
	return rc.label, rc.region
}

// decodeGenesisRegionField decodes the region field. Old-style headers list one
// letter per territory ("JUE"), so the J/U/E letters after the first byte
// widen the declared region.
func decodeGenesisRegionField(field []byte) (string, region.Region) {
	label, declared := GenesisRegion(field[0])
	if declared.IsEmpty() || !strings.ContainsRune("JUE", rune(field[0])) {
		return label, declared
	}

	labels := []string{label}
	for _, c := range field[1:] {
		if !strings.ContainsRune("JUE", rune(c)) {
			break
		}
		l, r := GenesisRegion(c)
		if declared.Contains(r) {
			continue
		}
		labels = append(labels, l)
		declared |= r
	}
	return strings.Join(labels, " / "), declared
}

// AnalyzeGenesis reads a Mega Drive / Genesis / 32X cartridge header. A
// missing console signature is logged but doesn't fail the analysis.
func AnalyzeGenesis(data []byte, sourceName string) (*GenesisAnalysis, error) {
	if err := rom.RequireSize(data, genesisHeaderSize, "Sega header"); err != nil {
		return nil, err
	}

	console := rom.HeaderString(data[genesisConsoleName:genesisConsoleNameEnd])
	valid := false
	for _, sig := range GenesisSignatures {
		if console == sig {
			valid = true
			break
		}
	}
	if !valid {
		log.Warn().Str("source", sourceName).Str("found", console).
			Msg("unexpected Sega header signature at 0x100")
	}

	label, declared := decodeGenesisRegionField(data[genesisRegionField:genesisRegionFieldEnd])
	return &GenesisAnalysis{
		Common:                 newCommon(sourceName, label, declared),
		ConsoleName:            console,
		GameTitleDomestic:      rom.HeaderString(data[genesisDomesticTitle:genesisIntlTitle]),
		GameTitleInternational: rom.HeaderString(data[genesisIntlTitle:genesisIntlTitleEnd]),
		Serial:                 rom.ASCIIString(data[genesisSerial:genesisSerialEnd]),
		RegionCodeByte:         data[genesisRegionField],
		SignatureValid:         valid,
	}, nil
}

// Is32X reports whether the header names the 32X add-on.
func (a *GenesisAnalysis) Is32X() bool {
	return strings.Contains(a.ConsoleName, "32X")
}

func (a *GenesisAnalysis) Print() string {
	r := newReport(a.SourceName, a.ConsoleName)
	r.line("Title (Dom.)", a.GameTitleDomestic)
	r.line("Title (Int.)", a.GameTitleInternational)
	r.line("Serial", a.Serial)
	c := rune(a.RegionCodeByte)
	if c < 0x20 || c >= 0x7F {
		c = '?'
	}
	r.linef("Region Code", "0x%02X ('%c')", a.RegionCodeByte, c)
	r.line("Region", a.Region.String())
	return r.String()
}
