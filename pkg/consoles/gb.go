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
	"fmt"

	"github.com/ZaparooProject/romcheck/pkg/region"
	"github.com/ZaparooProject/romcheck/pkg/rom"
)

const (
	gbHeaderSize     = 0x150
	gbTitleStart     = 0x134
	gbTitleEnd       = 0x143
	gbcTitleEnd      = 0x13F
	gbCGBFlag        = 0x143
	gbNewLicensee    = 0x144
	gbCartridgeType  = 0x147
	gbDestination    = 0x14A
	gbOldLicensee    = 0x14B
	gbUseNewLicensee = 0x33
	gbSystemGB       = "Game Boy (GB)"
	gbSystemGBC      = "Game Boy Color (GBC)"
)

type GBAnalysis struct {
	Common          `yaml:",inline"`
	SystemType      string `json:"system_type" yaml:"system_type"`
	GameTitle       string `json:"game_title" yaml:"game_title"`
	LicenseeCode    string `json:"licensee_code" yaml:"licensee_code"`
	DestinationCode byte   `json:"destination_code" yaml:"destination_code"`
	CartridgeType   byte   `json:"cartridge_type" yaml:"cartridge_type"`
	IsColor         bool   `json:"is_color" yaml:"is_color"`
}

// GBDestinationName labels the destination byte at 0x14A.
func GBDestinationName(code byte) string {
	switch code {
	case 0x00:
		return "Japan"
	case 0x01:
		return "Non-Japan (International)"
	default:
		return "Unknown Code"
	}
}

// AnalyzeGB reads a Game Boy or Game Boy Color cartridge header.
func AnalyzeGB(data []byte, sourceName string) (*GBAnalysis, error) {
	if err := rom.RequireSize(data, gbHeaderSize, "Game Boy header"); err != nil {
		return nil, err
	}

	cgb := data[gbCGBFlag] == 0x80 || data[gbCGBFlag] == 0xC0
	system, titleEnd := gbSystemGB, gbTitleEnd
	if cgb {
		system, titleEnd = gbSystemGBC, gbcTitleEnd
	}

	licensee := fmt.Sprintf("%02X", data[gbOldLicensee])
	if data[gbOldLicensee] == gbUseNewLicensee {
		licensee = rom.ASCIIString(data[gbNewLicensee : gbNewLicensee+2])
	}

	code := data[gbDestination]
	label := GBDestinationName(code)

	return &GBAnalysis{
		Common:          newCommon(sourceName, label, region.InferFromHeaderText(label)),
		SystemType:      system,
		GameTitle:       rom.HeaderString(data[gbTitleStart:titleEnd]),
		LicenseeCode:    licensee,
		DestinationCode: code,
		CartridgeType:   data[gbCartridgeType],
		IsColor:         cgb,
	}, nil
}

func (a *GBAnalysis) Print() string {
	r := newReport(a.SourceName, a.SystemType)
	r.line("Game Title", a.GameTitle)
	r.linef("Region Code", "0x%02X", a.DestinationCode)
	r.line("Region", a.RegionString)
	r.line("Licensee", a.LicenseeCode)
	r.linef("Cart Type", "0x%02X", a.CartridgeType)
	return r.String()
}
