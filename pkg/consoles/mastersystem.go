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
	smsRegionByte   = 0x7FFC
	smsRequiredSize = smsRegionByte + 1
)

var smsRegions = map[byte]regionCode{
	0x30: {"Japan (NTSC)", region.Japan},
	0x4C: {"Europe / Overseas (PAL/NTSC)", region.USA | region.Europe},
}

type MasterSystemAnalysis struct {
	Common       `yaml:",inline"`
	HeaderLabel  string `json:"header_region,omitempty" yaml:"header_region,omitempty"`
	HeaderOffset int    `json:"header_offset" yaml:"header_offset"`
	RegionByte   byte   `json:"region_byte" yaml:"region_byte"`
}

// MasterSystemRegion maps the byte at 0x7FFC.
func MasterSystemRegion(b byte) (string, region.Region) {
	rc, ok := smsRegions[b]
	if !ok {
		rc = unknownCode
	}
	return rc.label, rc.region
}

// AnalyzeMasterSystem reads the region byte at 0x7FFC. When that byte is not
// a known code, the region nibble of a "TMR SEGA" header is used instead.
func AnalyzeMasterSystem(data []byte, sourceName string) (*MasterSystemAnalysis, error) {
	if err := rom.RequireSize(data, smsRequiredSize, "Master System region byte"); err != nil {
		return nil, err
	}

	a := &MasterSystemAnalysis{
		RegionByte:   data[smsRegionByte],
		HeaderOffset: findSegaHeader(data),
	}
	label, declared := MasterSystemRegion(a.RegionByte)
	if a.HeaderOffset >= 0 {
		hl, hr := SegaHeaderRegion(data[a.HeaderOffset+segaRegionNibbleOffset])
		if !hr.IsEmpty() {
			a.HeaderLabel = hl
			if declared.IsEmpty() {
				label, declared = hl, hr
			}
		}
	}

	a.Common = newCommon(sourceName, label, declared)
	return a, nil
}

func (a *MasterSystemAnalysis) Print() string {
	r := newReport(a.SourceName, "Sega Master System")
	r.linef("Region Code", "0x%02X", a.RegionByte)
	r.line("Region", a.Region.String())
	if a.HeaderLabel != "" {
		r.line("Header", a.HeaderLabel)
	}
	return r.String()
}
