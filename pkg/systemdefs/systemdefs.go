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

package systemdefs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// The Systems list contains every console the analyzer can identify. IDs
// match the ones used across Zaparoo so results can be cross-referenced with
// a media database.
//
// Each system also lists the file extensions that identify it without any
// content inspection. Extensions shared by several disc-based systems are
// kept separately in ContainerExtensions and resolved by sniffing.

type System struct {
	ID         string
	Name       string
	Aliases    []string
	Extensions []string
}

// MapKeys returns a list of all keys in a map.
func MapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, len(m))
	i := 0
	for k := range m {
		keys[i] = k
		i++
	}
	return keys
}

func AlphaMapKeys[V any](m map[string]V) []string {
	keys := MapKeys(m)
	sort.Strings(keys)
	return keys
}

// GetSystem looks up an exact system definition by ID.
func GetSystem(id string) (*System, error) {
	if system, ok := Systems[id]; ok {
		return &system, nil
	}
	return nil, fmt.Errorf("unknown system: %s", id)
}

// LookupSystem case-insensitively looks up system ID definition including aliases.
func LookupSystem(id string) (*System, error) {
	for k, v := range Systems {
		if strings.EqualFold(k, id) {
			return &v, nil
		}

		for _, alias := range v.Aliases {
			if strings.EqualFold(alias, id) {
				return &v, nil
			}
		}
	}

	return nil, fmt.Errorf("unknown system: %s", id)
}

func AllSystems() []System {
	systems := make([]System, 0, len(Systems))

	keys := AlphaMapKeys(Systems)
	for _, k := range keys {
		systems = append(systems, Systems[k])
	}

	return systems
}

// minSuggestSimilarity is the Jaro-Winkler score a name needs to be offered
// as a suggestion.
const minSuggestSimilarity = 0.8

// SuggestSystem returns the system ID or alias closest to an unknown name,
// for "did you mean" hints. It returns false when nothing is close enough.
func SuggestSystem(name string) (string, bool) {
	query := strings.ToLower(name)
	best := ""
	var bestScore float32
	for _, k := range AlphaMapKeys(Systems) {
		system := Systems[k]
		for _, candidate := range append([]string{system.ID}, system.Aliases...) {
			score := edlib.JaroWinklerSimilarity(query, strings.ToLower(candidate))
			if score > bestScore {
				best = candidate
				bestScore = score
			}
		}
	}
	if bestScore < minSuggestSimilarity {
		return "", false
	}
	return best, true
}

// ByExtension returns the system an unambiguous extension belongs to. The
// extension must be lower-case and include the dot.
func ByExtension(ext string) (*System, bool) {
	id, ok := extensionIndex[ext]
	if !ok {
		return nil, false
	}
	system := Systems[id]
	return &system, true
}

// IsContainerExtension reports whether ext is shared by several disc
// formats and needs content sniffing.
func IsContainerExtension(ext string) bool {
	for _, e := range ContainerExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

const (
	SystemNES          = "NES"
	SystemSNES         = "SNES"
	SystemNintendo64   = "Nintendo64"
	SystemMasterSystem = "MasterSystem"
	SystemGameGear     = "GameGear"
	SystemGameboy      = "Gameboy"
	SystemGameboyColor = "GameboyColor"
	SystemGBA          = "GBA"
	SystemGenesis      = "Genesis"
	SystemSega32X      = "Sega32X"
	SystemMegaCD       = "MegaCD"
	SystemPSX          = "PSX"
)

// ContainerExtensions are disc image extensions used by more than one
// system. A decompressed CHD payload is classified the same way.
var ContainerExtensions = []string{".iso", ".bin", ".img", ".psx", ".chd"}

var Systems = map[string]System{
	SystemNES: {
		ID:         SystemNES,
		Name:       "Nintendo Entertainment System (NES)",
		Aliases:    []string{"Famicom"},
		Extensions: []string{".nes"},
	},
	SystemSNES: {
		ID:         SystemSNES,
		Name:       "Super Nintendo (SNES)",
		Aliases:    []string{"SuperFamicom"},
		Extensions: []string{".smc", ".sfc"},
	},
	SystemNintendo64: {
		ID:         SystemNintendo64,
		Name:       "Nintendo 64 (N64)",
		Aliases:    []string{"N64"},
		Extensions: []string{".n64", ".v64", ".z64"},
	},
	SystemMasterSystem: {
		ID:         SystemMasterSystem,
		Name:       "Sega Master System",
		Aliases:    []string{"SMS"},
		Extensions: []string{".sms"},
	},
	SystemGameGear: {
		ID:         SystemGameGear,
		Name:       "Sega Game Gear",
		Aliases:    []string{"GG"},
		Extensions: []string{".gg"},
	},
	SystemGameboy: {
		ID:         SystemGameboy,
		Name:       "Game Boy (GB)",
		Aliases:    []string{"GB"},
		Extensions: []string{".gb"},
	},
	SystemGameboyColor: {
		ID:         SystemGameboyColor,
		Name:       "Game Boy Color (GBC)",
		Aliases:    []string{"GBC"},
		Extensions: []string{".gbc"},
	},
	SystemGBA: {
		ID:         SystemGBA,
		Name:       "Game Boy Advance (GBA)",
		Aliases:    []string{"GameboyAdvance"},
		Extensions: []string{".gba"},
	},
	SystemGenesis: {
		ID:         SystemGenesis,
		Name:       "Sega Genesis / Mega Drive",
		Aliases:    []string{"MegaDrive"},
		Extensions: []string{".md", ".gen"},
	},
	SystemSega32X: {
		ID:         SystemSega32X,
		Name:       "Sega 32X",
		Aliases:    []string{"32X"},
		Extensions: []string{".32x"},
	},
	SystemMegaCD: {
		ID:         SystemMegaCD,
		Name:       "Sega CD / Mega CD",
		Aliases:    []string{"SegaCD"},
		Extensions: []string{".scd"},
	},
	SystemPSX: {
		ID:      SystemPSX,
		Name:    "Sony PlayStation (PSX)",
		Aliases: []string{"PlayStation", "PS1"},
	},
}

var extensionIndex = func() map[string]string {
	idx := make(map[string]string)
	for id, system := range Systems {
		for _, ext := range system.Extensions {
			idx[ext] = id
		}
	}
	return idx
}()
