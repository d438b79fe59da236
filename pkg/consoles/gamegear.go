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
	"bytes"

	"github.com/ZaparooProject/romcheck/pkg/region"
	"github.com/rs/zerolog/log"
)

const segaRegionNibbleOffset = 0x0F

// SegaHeaderOffsets are the places a "TMR SEGA" header may start, probed in
// order.
var SegaHeaderOffsets = []int{0x7FF0, 0x3FF0, 0x1FF0}

var segaHeaderMagic = []byte("TMR SEGA")

var segaNibbleRegions = map[byte]regionCode{
	0x3: {"SMS Japan", region.Japan},
	0x4: {"SMS Export", region.USA | region.Europe},
	0x5: {"GameGear Japan", region.Japan},
	0x6: {"GameGear Export", region.USA | region.Europe},
	0x7: {"GameGear International", region.USA | region.Europe},
}

// SegaHeaderRegion decodes the upper nibble of the region/size byte that
// ends a "TMR SEGA" header.
func SegaHeaderRegion(b byte) (string, region.Region) {
	rc, ok := segaNibbleRegions[b>>4]
	if !ok {
		rc = unknownCode
	}
	return rc.label, rc.region
}

// findSegaHeader returns the offset of the first "TMR SEGA" header whose
// region byte is inside data, or -1.
func findSegaHeader(data []byte) int {
	for _, off := range SegaHeaderOffsets {
		end := off + segaRegionNibbleOffset
		if end >= len(data) {
			continue
		}
		if bytes.Equal(data[off:off+len(segaHeaderMagic)], segaHeaderMagic) {
			return off
		}
	}
	return -1
}

type GameGearAnalysis struct {
	Common       `yaml:",inline"`
	HeaderOffset int  `json:"header_offset" yaml:"header_offset"`
	RegionFound  bool `json:"region_found" yaml:"region_found"`
}

// AnalyzeGameGear reads the region nibble of a Game Gear header. When no
// header or no known region code is present the region is inferred from the
// file name instead and RegionFound is false. It never fails.
func AnalyzeGameGear(data []byte, sourceName string) (*GameGearAnalysis, error) {
	a := &GameGearAnalysis{HeaderOffset: findSegaHeader(data)}

	label, declared := unknownCode.label, region.Unknown
	if a.HeaderOffset >= 0 {
		log.Debug().Str("source", sourceName).Msgf("found TMR SEGA header at 0x%X", a.HeaderOffset)
		label, declared = SegaHeaderRegion(data[a.HeaderOffset+segaRegionNibbleOffset])
		a.RegionFound = !declared.IsEmpty()
	}
	if !a.RegionFound {
		declared = region.InferFromPath(sourceName)
		label = declared.String()
	}

	a.Common = newCommon(sourceName, label, declared)
	return a, nil
}

func (a *GameGearAnalysis) Print() string {
	r := newReport(a.SourceName, "Sega Game Gear")
	r.line("Region", a.Region.String())
	if !a.RegionFound {
		r.line("Note", "Region information not in ROM header, inferred from filename.")
	}
	return r.String()
}
