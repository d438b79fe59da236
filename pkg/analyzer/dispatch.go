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

package analyzer

import (
	"bytes"

	"github.com/ZaparooProject/romcheck/pkg/consoles"
	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/ZaparooProject/romcheck/pkg/systemdefs"
	"github.com/rs/zerolog/log"
)

// Reader parses a payload into a Result.
type Reader func(data []byte, sourceName string) (Result, error)

func wrap[T any](read func([]byte, string) (*T, error)) Reader {
	return func(data []byte, sourceName string) (Result, error) {
		a, err := read(data, sourceName)
		if err != nil {
			return Result{}, err
		}
		return NewResult(a)
	}
}

// DefaultReaders maps every variant to its reader in package consoles.
func DefaultReaders() map[Kind]Reader {
	return map[Kind]Reader{
		KindGameGear:     wrap(consoles.AnalyzeGameGear),
		KindGB:           wrap(consoles.AnalyzeGB),
		KindGBA:          wrap(consoles.AnalyzeGBA),
		KindGenesis:      wrap(consoles.AnalyzeGenesis),
		KindMasterSystem: wrap(consoles.AnalyzeMasterSystem),
		KindN64:          wrap(consoles.AnalyzeN64),
		KindNES:          wrap(consoles.AnalyzeNES),
		KindPSX:          wrap(consoles.AnalyzePSX),
		KindSegaCD:       wrap(consoles.AnalyzeSegaCD),
		KindSNES:         wrap(consoles.AnalyzeSNES),
	}
}

// systemKinds maps the system of a 1:1 extension to the reader variant.
var systemKinds = map[string]Kind{
	systemdefs.SystemNES:          KindNES,
	systemdefs.SystemSNES:         KindSNES,
	systemdefs.SystemNintendo64:   KindN64,
	systemdefs.SystemMasterSystem: KindMasterSystem,
	systemdefs.SystemGameGear:     KindGameGear,
	systemdefs.SystemGameboy:      KindGB,
	systemdefs.SystemGameboyColor: KindGB,
	systemdefs.SystemGBA:          KindGBA,
	systemdefs.SystemGenesis:      KindGenesis,
	systemdefs.SystemSega32X:      KindGenesis,
	systemdefs.SystemMegaCD:       KindSegaCD,
}

// SniffSignature is a byte pattern that identifies a format inside a
// container extension shared by several disc systems. MinSize is the buffer
// length required before the pattern is tested at all.
type SniffSignature struct {
	Expected   []byte
	Kind       Kind
	MinSize    int
	Offset     int
	Confidence float64
	FoldCase   bool
}

func (s SniffSignature) Match(data []byte) bool {
	if len(data) < s.MinSize || len(data) < s.Offset+len(s.Expected) {
		return false
	}
	got := data[s.Offset : s.Offset+len(s.Expected)]
	if s.FoldCase {
		return bytes.EqualFold(got, s.Expected)
	}
	return bytes.Equal(got, s.Expected)
}

// ContainerSignatures are tested in order. A payload matching none of them
// is treated as a PlayStation image.
var ContainerSignatures = []SniffSignature{
	{Kind: KindGenesis, Offset: 0x100, Expected: []byte("SEGA MEGA DRIVE"), MinSize: 0x110, Confidence: 1},
	{Kind: KindGenesis, Offset: 0x100, Expected: []byte("SEGA GENESIS"), MinSize: 0x110, Confidence: 1},
	{Kind: KindSegaCD, Offset: 0x100, Expected: []byte("SEGA CD"), MinSize: 0x10C, FoldCase: true, Confidence: 0.9},
}

// psxFallbackConfidence is reported when no signature matched.
const psxFallbackConfidence = 0.5

// Sniff picks a variant for a container payload.
func Sniff(data []byte) (Kind, float64) {
	for _, sig := range ContainerSignatures {
		if sig.Match(data) {
			return sig.Kind, sig.Confidence
		}
	}
	return KindPSX, psxFallbackConfidence
}

// KindFor resolves the variant for a payload named name. Ambiguous
// container extensions are resolved by sniffing data. The second return is
// false for extensions no reader handles.
func KindFor(data []byte, name string) (Kind, bool) {
	ext := rom.Ext(name)
	if system, ok := systemdefs.ByExtension(ext); ok {
		kind, ok := systemKinds[system.ID]
		return kind, ok
	}
	if systemdefs.IsContainerExtension(ext) {
		kind, confidence := Sniff(data)
		log.Debug().Str("source", name).Str("kind", string(kind)).
			Float64("confidence", confidence).Msg("sniffed container payload")
		return kind, true
	}
	return "", false
}

// Dispatchable reports whether name has an extension some reader handles,
// without looking at any content.
func Dispatchable(name string) bool {
	ext := rom.Ext(name)
	if _, ok := systemdefs.ByExtension(ext); ok {
		return true
	}
	return systemdefs.IsContainerExtension(ext)
}
