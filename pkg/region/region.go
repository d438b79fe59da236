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

// Package region models the geographic release regions of a ROM as a
// bitmask. A single dump may legitimately belong to several regions at once,
// so every comparison between two regions is an intersection test.
package region

import (
	"fmt"
	"strings"
)

// Region is a set of release regions. The zero value means the region could
// not be resolved, it is not an error.
type Region uint8

const (
	Japan Region = 1 << iota
	USA
	Europe
	Russia
	Asia
	China
	Korea
)

const (
	// Unknown is the empty set.
	Unknown Region = 0
	// World covers every major territory a "world" release ships to.
	World = Japan | USA | Europe | Russia
)

type namedFlag struct {
	name string
	flag Region
}

// canonical is the fixed display order.
var canonical = []namedFlag{
	{name: "Japan", flag: Japan},
	{name: "USA", flag: USA},
	{name: "Europe", flag: Europe},
	{name: "Russia", flag: Russia},
	{name: "Asia", flag: Asia},
	{name: "China", flag: China},
	{name: "Korea", flag: Korea},
}

func (r Region) IsEmpty() bool {
	return r == Unknown
}

func (r Region) Union(other Region) Region {
	return r | other
}

func (r Region) Intersect(other Region) Region {
	return r & other
}

// Contains reports whether every flag in other is also set in r.
func (r Region) Contains(other Region) bool {
	return r&other == other
}

// Overlaps reports whether r and other share at least one flag.
func (r Region) Overlaps(other Region) bool {
	return r&other != 0
}

// Flags returns the individual flags set in r in canonical order.
func (r Region) Flags() []Region {
	flags := make([]Region, 0, len(canonical))
	for _, nf := range canonical {
		if r&nf.flag != 0 {
			flags = append(flags, nf.flag)
		}
	}
	return flags
}

// String renders an empty set as "Unknown", a set covering World as "World"
// (followed by any extra flags) and anything else as a slash-joined list.
func (r Region) String() string {
	if r.IsEmpty() {
		return "Unknown"
	}

	parts := make([]string, 0, len(canonical))
	rest := r
	if r.Contains(World) {
		parts = append(parts, "World")
		rest = r &^ World
	}
	for _, nf := range canonical {
		if rest&nf.flag != 0 {
			parts = append(parts, nf.name)
		}
	}
	return strings.Join(parts, "/")
}

func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Parse is the inverse of String. Names are matched case-insensitively.
func Parse(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "Unknown") {
		return Unknown, nil
	}

	var r Region
	for part := range strings.SplitSeq(s, "/") {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "World") {
			r |= World
			continue
		}
		found := false
		for _, nf := range canonical {
			if strings.EqualFold(part, nf.name) {
				r |= nf.flag
				found = true
				break
			}
		}
		if !found {
			return Unknown, fmt.Errorf("unknown region name: %q", part)
		}
	}
	return r, nil
}

// Mismatch compares a region inferred from a filename against the region a
// header declares. An empty side can't be judged and never mismatches.
// Overlapping sets are compatible: a header declaring USA/Japan does not
// contradict a filename tagged only with USA.
func Mismatch(inferred, declared Region) bool {
	if inferred.IsEmpty() || declared.IsEmpty() {
		return false
	}
	return !inferred.Overlaps(declared)
}

// Check infers a region from the base name of sourceName and tests it
// against the declared header region.
func Check(sourceName string, declared Region) bool {
	return Mismatch(InferFromPath(sourceName), declared)
}

// InferFromPath is InferFromFilename applied to the last element of a slash
// or backslash separated path, so directory names never contribute.
func InferFromPath(p string) Region {
	return InferFromFilename(baseName(p))
}

func baseName(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
