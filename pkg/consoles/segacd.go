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
	"github.com/rs/zerolog/log"
)

const (
	segaCDRequiredSize = 0x200
	segaCDSignature    = 0x100
	segaCDSignatureEnd = 0x109
	segaCDRegionByte   = 0x10B
)

var segaCDRegions = map[byte]regionCode{
	0x40: {"Japan (NTSC-J)", region.Japan},
	0x80: {"Europe (PAL)", region.Europe},
	0xC0: {"USA (NTSC-U)", region.USA},
	0x00: {"Unrestricted/BIOS region", region.USA | region.Europe | region.Japan},
}

type SegaCDAnalysis struct {
	Common     `yaml:",inline"`
	Signature  string `json:"signature" yaml:"signature"`
	RegionCode byte   `json:"region_code" yaml:"region_code"`
}

// SegaCDRegion maps the region byte at 0x10B.
func SegaCDRegion(code byte) (string, region.Region) {
	rc, ok := segaCDRegions[code]
	if !ok {
		return "Unknown Code", region.Unknown
	}
	return rc.label, rc.region
}

// AnalyzeSegaCD reads the boot header of a Sega CD / Mega CD image.
func AnalyzeSegaCD(data []byte, sourceName string) (*SegaCDAnalysis, error) {
	if err := rom.RequireSize(data, segaCDRequiredSize, "Sega CD boot header"); err != nil {
		return nil, err
	}

	sig := rom.HeaderString(data[segaCDSignature:segaCDSignatureEnd])
	if sig != "SEGA CD" && sig != "SEGA MEGA" {
		log.Warn().Str("source", sourceName).Str("found", sig).
			Msg("no SEGA CD or SEGA MEGA signature at 0x100")
	}

	code := data[segaCDRegionByte]
	label, declared := SegaCDRegion(code)
	return &SegaCDAnalysis{
		Common:     newCommon(sourceName, label, declared),
		Signature:  sig,
		RegionCode: code,
	}, nil
}

func (a *SegaCDAnalysis) Print() string {
	r := newReport(a.SourceName, "Sega CD / Mega CD")
	r.line("Signature", a.Signature)
	r.linef("Region Code", "0x%02X", a.RegionCode)
	r.line("Region", a.Region.String())
	return r.String()
}
