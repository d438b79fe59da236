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
	"github.com/ZaparooProject/romcheck/pkg/rom"
)

const (
	nesHeaderSize    = 16
	nesRegionByte    = 9
	nes2RegionByte   = 12
	nes2FormatByte   = 7
	nes2FormatMask   = 0x0C
	nes2FormatValue  = 0x08
	nesPRGBankSizeKB = 16
	nesCHRBankSizeKB = 8
)

var nesMagic = []byte("NES\x1a")

type NESAnalysis struct {
	Common          `yaml:",inline"`
	RegionByteValue byte `json:"region_byte_value" yaml:"region_byte_value"`
	IsNES2Format    bool `json:"is_nes2_format" yaml:"is_nes2_format"`
	PRGROMKB        int  `json:"prg_rom_kb" yaml:"prg_rom_kb"`
	CHRROMKB        int  `json:"chr_rom_kb" yaml:"chr_rom_kb"`
	Mapper          int  `json:"mapper" yaml:"mapper"`
}

// NESRegionName labels the timing bits of an iNES or NES 2.0 header.
func NESRegionName(value byte, nes2 bool) string {
	if nes2 {
		switch value & 0x03 {
		case 0:
			return "NTSC (USA/Japan)"
		case 1:
			return "PAL (Europe/Oceania)"
		case 2:
			return "Multi-region"
		default:
			return "Dendy (Russia)"
		}
	}
	if value&0x01 == 0 {
		return "NTSC (USA/Japan)"
	}
	return "PAL (Europe/Oceania)"
}

// AnalyzeNES reads an iNES or NES 2.0 header.
func AnalyzeNES(data []byte, sourceName string) (*NESAnalysis, error) {
	if err := rom.RequireSize(data, nesHeaderSize, "iNES header"); err != nil {
		return nil, err
	}
	if !bytes.Equal(data[:4], nesMagic) {
		return nil, &rom.InvalidSignatureError{
			Console: "NES",
			Detail:  "missing iNES magic",
		}
	}

	nes2 := data[nes2FormatByte]&nes2FormatMask == nes2FormatValue
	value := data[nesRegionByte]
	mapper := int(data[6]>>4) | int(data[7]&0xF0)
	if nes2 {
		value = data[nes2RegionByte]
		mapper |= int(data[8]&0x0F) << 8
	}
	label := NESRegionName(value, nes2)

	return &NESAnalysis{
		Common:          newCommon(sourceName, label, region.InferFromHeaderText(label)),
		RegionByteValue: value,
		IsNES2Format:    nes2,
		PRGROMKB:        int(data[4]) * nesPRGBankSizeKB,
		CHRROMKB:        int(data[5]) * nesCHRBankSizeKB,
		Mapper:          mapper,
	}, nil
}

func (a *NESAnalysis) Print() string {
	r := newReport(a.SourceName, "Nintendo Entertainment System (NES)")
	r.line("Region", a.RegionString)
	if a.IsNES2Format {
		r.linef("NES2 Flag 12", "0x%02X", a.RegionByteValue)
	} else {
		r.linef("iNES Flag 9", "0x%02X", a.RegionByteValue)
	}
	r.linef("Mapper", "%d", a.Mapper)
	r.linef("PRG/CHR", "%d KB / %d KB", a.PRGROMKB, a.CHRROMKB)
	return r.String()
}
