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
	"strings"

	"github.com/ZaparooProject/romcheck/pkg/region"
	"github.com/ZaparooProject/romcheck/pkg/rom"
)

const (
	psxMinSize   = 0x2000
	psxScanLimit = 0x20000
	// PSXCodeNotFound is reported when no executable prefix is present.
	PSXCodeNotFound = "N/A"
)

type psxPrefix struct {
	code  string
	label string
}

// Licensed first, then first-party and the alternate Japanese prefix.
var psxPrefixes = []psxPrefix{
	{"SLUS", "North America (NTSC-U)"},
	{"SLES", "Europe (PAL)"},
	{"SLPS", "Japan (NTSC-J)"},
	{"SCUS", "North America (NTSC-U)"},
	{"SCES", "Europe (PAL)"},
	{"SCPS", "Japan (NTSC-J)"},
	{"SLPM", "Japan (NTSC-J)"},
}

type PSXAnalysis struct {
	Common `yaml:",inline"`
	Code   string `json:"code" yaml:"code"`
	Serial string `json:"serial,omitempty" yaml:"serial,omitempty"`
}

// AnalyzePSX scans the first 128 KiB of a disc image for a boot executable
// prefix such as SLUS. A readable image without one still succeeds with the
// code "N/A" and an unknown region.
func AnalyzePSX(data []byte, sourceName string) (*PSXAnalysis, error) {
	sample := data[:min(len(data), psxScanLimit)]
	if len(sample) < psxMinSize {
		return nil, &rom.DataTooSmallError{
			FileSize:     len(data),
			RequiredSize: psxMinSize,
			Detail:       "PSX boot file analysis",
		}
	}

	upper := bytes.ToUpper(sample)
	a := &PSXAnalysis{Code: PSXCodeNotFound}
	label := unknownCode.label
	for _, p := range psxPrefixes {
		i := bytes.Index(upper, []byte(p.code))
		if i < 0 {
			continue
		}
		a.Code = p.code
		a.Serial = psxSerial(upper[i:])
		label = p.label
		break
	}

	declared := region.Unknown
	if a.Code != PSXCodeNotFound {
		declared = region.InferFromHeaderText(a.Code)
	}
	a.Common = newCommon(sourceName, label, declared)
	return a, nil
}

// psxSerial extracts a serial such as "SLUS_012.34" starting at b.
func psxSerial(b []byte) string {
	const maxLen = 11
	var sb strings.Builder
	for i := 0; i < len(b) && i < maxLen; i++ {
		c := b[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-' || c == '.' {
			sb.WriteByte(c)
			continue
		}
		break
	}
	s := sb.String()
	if len(s) <= 4 {
		return ""
	}
	return s
}

func (a *PSXAnalysis) Print() string {
	r := newReport(a.SourceName, "Sony PlayStation (PSX)")
	r.line("Region", a.Region.String())
	r.line("Code", a.Code)
	if a.Serial != "" {
		r.line("Serial", a.Serial)
	}
	if a.Code == PSXCodeNotFound {
		r.line("Note", "Executable prefix (SLUS/SLES/SLPS) not found in header area. "+
			"Requires main data track (.bin or .iso).")
	}
	return r.String()
}
