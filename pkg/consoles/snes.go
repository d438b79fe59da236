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
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/ZaparooProject/romcheck/pkg/region"
	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/rs/zerolog/log"
)

const (
	snesLoROMHeader   = 0x7FC0
	snesHiROMHeader   = 0xFFC0
	snesCopierHeader  = 512
	snesHeaderSize    = 0x20
	snesTitleSize     = 21
	snesMapModeOffset = 0x15
	snesROMTypeOffset = 0x16
	snesROMSizeOffset = 0x17
	snesRegionOffset  = 0x19
	snesDevIDOffset   = 0x1A
	snesVersionOffset = 0x1B
	snesComplOffset   = 0x1C
	snesSumOffset     = 0x1E
)

const (
	MappingHiROM                  = "HiROM"
	MappingLoROM                  = "LoROM"
	MappingHiROMMapModeUnverified = "HiROM (Map Mode Unverified)"
	MappingLoROMMapModeUnverified = "LoROM (Map Mode Unverified)"
	MappingLoROMUnverified        = "LoROM (Unverified)"
)

var (
	snesLoROMMapModes = []byte{0x20, 0x30, 0x25, 0x35}
	snesHiROMMapModes = []byte{0x21, 0x31, 0x22, 0x32}
)

// Mapping is the resolved placement of an SNES internal header.
type Mapping struct {
	Label         string
	HeaderOffset  int
	CopierHeader  bool
	ChecksumValid bool
	MapModeValid  bool
}

// Verified reports whether both the checksum and the map mode agreed.
func (m Mapping) Verified() bool {
	return m.ChecksumValid && m.MapModeValid
}

// DetectMapping decides between LoROM and HiROM header placement. A 512-byte
// copier header is detected from the file length and shifts both candidates.
// Resolution order is HiROM, LoROM, HiROM by checksum only, LoROM by checksum
// only, then an unverified LoROM fallback.
func DetectMapping(data []byte) (Mapping, error) {
	shift := 0
	if len(data) >= snesCopierHeader && len(data)%1024 == snesCopierHeader {
		shift = snesCopierHeader
	}
	lo := snesLoROMHeader + shift
	hi := snesHiROMHeader + shift

	loSum := ValidSNESChecksum(data, lo)
	hiSum := ValidSNESChecksum(data, hi)
	loMode := snesMapModeIn(data, lo, snesLoROMMapModes)
	hiMode := snesMapModeIn(data, hi, snesHiROMMapModes)

	m := Mapping{CopierHeader: shift != 0}
	switch {
	case hiSum && hiMode:
		m.Label, m.HeaderOffset = MappingHiROM, hi
		m.ChecksumValid, m.MapModeValid = true, true
	case loSum && loMode:
		m.Label, m.HeaderOffset = MappingLoROM, lo
		m.ChecksumValid, m.MapModeValid = true, true
	case hiSum:
		m.Label, m.HeaderOffset = MappingHiROMMapModeUnverified, hi
		m.ChecksumValid = true
	case loSum:
		m.Label, m.HeaderOffset = MappingLoROMMapModeUnverified, lo
		m.ChecksumValid = true
	default:
		m.Label, m.HeaderOffset = MappingLoROMUnverified, lo
	}

	if m.HeaderOffset+snesHeaderSize > len(data) {
		return m, &rom.DataTooSmallError{
			FileSize:     len(data),
			RequiredSize: m.HeaderOffset + snesHeaderSize,
			Detail:       fmt.Sprintf("SNES header at offset 0x%X", m.HeaderOffset),
		}
	}
	return m, nil
}

// ValidSNESChecksum reports whether the little-endian checksum and its
// complement at the header starting at offset add up to 0xFFFF.
func ValidSNESChecksum(data []byte, offset int) bool {
	if offset < 0 || offset+snesHeaderSize > len(data) {
		return false
	}
	complement := binary.LittleEndian.Uint16(data[offset+snesComplOffset:])
	checksum := binary.LittleEndian.Uint16(data[offset+snesSumOffset:])
	return uint32(complement)+uint32(checksum) == 0xFFFF
}

func snesMapModeIn(data []byte, offset int, modes []byte) bool {
	i := offset + snesMapModeOffset
	if i >= len(data) {
		return false
	}
	return slices.Contains(modes, data[i])
}

var snesRegions = map[byte]regionCode{
	0x00: {"Japan (NTSC)", region.Japan},
	0x01: {"USA / Canada (NTSC)", region.USA},
	0x02: {"Europe / Oceania / Asia (PAL)", region.Europe | region.Asia},
	0x03: {"Sweden / Scandinavia (PAL)", region.Europe},
	0x04: {"Finland (PAL)", region.Europe},
	0x05: {"Denmark (PAL)", region.Europe},
	0x06: {"France (PAL)", region.Europe},
	0x07: {"Netherlands (PAL)", region.Europe},
	0x08: {"Spain (PAL)", region.Europe},
	0x09: {"Germany (PAL)", region.Europe},
	0x0A: {"Italy (PAL)", region.Europe},
	0x0B: {"China (PAL)", region.China},
	0x0C: {"Indonesia (PAL)", region.Europe | region.Asia},
	0x0D: {"South Korea (NTSC)", region.Korea},
	0x0E: {"Common / International", region.USA | region.Europe | region.Japan | region.Asia},
	0x0F: {"Canada (NTSC)", region.USA},
	0x10: {"Brazil (NTSC)", region.USA},
	0x11: {"Australia (PAL)", region.Europe},
	0x12: {"Other (Variation 1)", region.Unknown},
	0x13: {"Other (Variation 2)", region.Unknown},
	0x14: {"Other (Variation 3)", region.Unknown},
}

// SNESRegion maps an SNES destination code.
func SNESRegion(code byte) (string, region.Region) {
	rc, ok := snesRegions[code]
	if !ok {
		rc = unknownCode
	}
	return rc.label, rc.region
}

type SNESAnalysis struct {
	Common       `yaml:",inline"`
	GameTitle    string `json:"game_title" yaml:"game_title"`
	MappingType  string `json:"mapping_type" yaml:"mapping_type"`
	RegionCode   byte   `json:"region_code" yaml:"region_code"`
	MapMode      byte   `json:"map_mode" yaml:"map_mode"`
	ROMType      byte   `json:"rom_type" yaml:"rom_type"`
	ROMSizeKB    int    `json:"rom_size_kb" yaml:"rom_size_kb"`
	DeveloperID  byte   `json:"developer_id" yaml:"developer_id"`
	Version      byte   `json:"version" yaml:"version"`
	Checksum     uint16 `json:"checksum" yaml:"checksum"`
	Complement   uint16 `json:"checksum_complement" yaml:"checksum_complement"`
	CopierHeader bool   `json:"copier_header" yaml:"copier_header"`
}

// AnalyzeSNES reads the internal header of an SNES cartridge dump.
func AnalyzeSNES(data []byte, sourceName string) (*SNESAnalysis, error) {
	m, err := DetectMapping(data)
	if err != nil {
		return nil, err
	}

	switch {
	case m.Verified():
	case m.ChecksumValid:
		log.Warn().Str("source", sourceName).
			Uint8("map_mode", data[m.HeaderOffset+snesMapModeOffset]).
			Msgf("checksum valid but map mode is atypical, using %s", m.Label)
	default:
		log.Warn().Str("source", sourceName).
			Msgf("checksum validation failed, reading header at 0x%X", m.HeaderOffset)
	}

	h := data[m.HeaderOffset : m.HeaderOffset+snesHeaderSize]
	code := h[snesRegionOffset]
	label, declared := SNESRegion(code)

	a := &SNESAnalysis{
		Common:       newCommon(sourceName, label, declared),
		GameTitle:    rom.HeaderString(h[:snesTitleSize]),
		MappingType:  m.Label,
		RegionCode:   code,
		MapMode:      h[snesMapModeOffset],
		ROMType:      h[snesROMTypeOffset],
		DeveloperID:  h[snesDevIDOffset],
		Version:      h[snesVersionOffset],
		Complement:   binary.LittleEndian.Uint16(h[snesComplOffset:]),
		Checksum:     binary.LittleEndian.Uint16(h[snesSumOffset:]),
		CopierHeader: m.CopierHeader,
	}
	if exp := h[snesROMSizeOffset]; exp > 0 && exp < 16 {
		a.ROMSizeKB = 1 << exp
	}
	return a, nil
}

func (a *SNESAnalysis) Print() string {
	r := newReport(a.SourceName, "Super Nintendo (SNES)")
	r.line("Game Title", a.GameTitle)
	r.line("Mapping", a.MappingType)
	r.linef("Region Code", "0x%02X", a.RegionCode)
	r.line("Region", a.Region.String())
	if a.ROMSizeKB > 0 {
		r.linef("ROM Size", "%d KB", a.ROMSizeKB)
	}
	r.linef("Version", "1.%d", a.Version)
	return r.String()
}
