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

// Package consoles holds one header reader per supported console. Readers
// are pure: they take the payload bytes and the name it came from, and
// return an analysis or a typed error from package rom. They never read
// files and never panic on short input.
package consoles

import (
	"fmt"
	"strings"

	"github.com/ZaparooProject/romcheck/pkg/region"
)

// Common is embedded in every console analysis.
type Common struct {
	SourceName     string        `json:"source_name" yaml:"source_name"`
	RegionString   string        `json:"region_string" yaml:"region_string"`
	Region         region.Region `json:"region" yaml:"region"`
	RegionMismatch bool          `json:"region_mismatch" yaml:"region_mismatch"`
}

func newCommon(sourceName, label string, declared region.Region) Common {
	return Common{
		SourceName:     sourceName,
		Region:         declared,
		RegionString:   label,
		RegionMismatch: region.Check(sourceName, declared),
	}
}

// regionCode pairs a human label with the regions it covers.
type regionCode struct {
	label  string
	region region.Region
}

var unknownCode = regionCode{label: "Unknown", region: region.Unknown}

// report renders the aligned "Key: value" block shared by every Print.
type report struct {
	sb strings.Builder
}

func newReport(sourceName, system string) *report {
	r := &report{}
	r.sb.WriteString(sourceName)
	r.line("System", system)
	return r
}

func (r *report) line(key, value string) {
	fmt.Fprintf(&r.sb, "\n%-13s %s", key+":", value)
}

func (r *report) linef(key, format string, args ...any) {
	r.line(key, fmt.Sprintf(format, args...))
}

func (r *report) String() string {
	return r.sb.String()
}
