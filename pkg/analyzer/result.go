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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ZaparooProject/romcheck/pkg/consoles"
	"github.com/ZaparooProject/romcheck/pkg/region"
	"github.com/ZaparooProject/romcheck/pkg/systemdefs"
	"gopkg.in/yaml.v3"
)

var errEmptyResult = errors.New("result holds no analysis")

// Kind names the console variant held by a Result. The values double as
// the "console" tag in serialized output.
type Kind string

const (
	KindGameGear     Kind = "GameGear"
	KindGB           Kind = "GB"
	KindGBA          Kind = "GBA"
	KindGenesis      Kind = "Genesis"
	KindMasterSystem Kind = "MasterSystem"
	KindN64          Kind = "N64"
	KindNES          Kind = "NES"
	KindPSX          Kind = "PSX"
	KindSegaCD       Kind = "SegaCD"
	KindSNES         Kind = "SNES"
)

// Kinds lists every variant in serialization order.
var Kinds = []Kind{
	KindGameGear, KindGB, KindGBA, KindGenesis, KindMasterSystem,
	KindN64, KindNES, KindPSX, KindSegaCD, KindSNES,
}

// Result holds exactly one console analysis. The zero value holds none and
// is only returned alongside an error.
type Result struct {
	kind         Kind
	gameGear     *consoles.GameGearAnalysis
	gb           *consoles.GBAnalysis
	gba          *consoles.GBAAnalysis
	genesis      *consoles.GenesisAnalysis
	masterSystem *consoles.MasterSystemAnalysis
	n64          *consoles.N64Analysis
	nes          *consoles.NESAnalysis
	psx          *consoles.PSXAnalysis
	segaCD       *consoles.SegaCDAnalysis
	snes         *consoles.SNESAnalysis
}

// NewResult wraps a console analysis returned by one of the readers in
// package consoles.
func NewResult(analysis any) (Result, error) {
	switch a := analysis.(type) {
	case *consoles.GameGearAnalysis:
		return Result{kind: KindGameGear, gameGear: a}, nil
	case *consoles.GBAnalysis:
		return Result{kind: KindGB, gb: a}, nil
	case *consoles.GBAAnalysis:
		return Result{kind: KindGBA, gba: a}, nil
	case *consoles.GenesisAnalysis:
		return Result{kind: KindGenesis, genesis: a}, nil
	case *consoles.MasterSystemAnalysis:
		return Result{kind: KindMasterSystem, masterSystem: a}, nil
	case *consoles.N64Analysis:
		return Result{kind: KindN64, n64: a}, nil
	case *consoles.NESAnalysis:
		return Result{kind: KindNES, nes: a}, nil
	case *consoles.PSXAnalysis:
		return Result{kind: KindPSX, psx: a}, nil
	case *consoles.SegaCDAnalysis:
		return Result{kind: KindSegaCD, segaCD: a}, nil
	case *consoles.SNESAnalysis:
		return Result{kind: KindSNES, snes: a}, nil
	default:
		return Result{}, fmt.Errorf("unsupported analysis type %T", analysis)
	}
}

func (r Result) Kind() Kind {
	return r.kind
}

// Analysis returns the wrapped console analysis pointer, or nil.
func (r Result) Analysis() any {
	switch r.kind {
	case KindGameGear:
		return r.gameGear
	case KindGB:
		return r.gb
	case KindGBA:
		return r.gba
	case KindGenesis:
		return r.genesis
	case KindMasterSystem:
		return r.masterSystem
	case KindN64:
		return r.n64
	case KindNES:
		return r.nes
	case KindPSX:
		return r.psx
	case KindSegaCD:
		return r.segaCD
	case KindSNES:
		return r.snes
	default:
		return nil
	}
}

func (r Result) common() consoles.Common {
	switch r.kind {
	case KindGameGear:
		return r.gameGear.Common
	case KindGB:
		return r.gb.Common
	case KindGBA:
		return r.gba.Common
	case KindGenesis:
		return r.genesis.Common
	case KindMasterSystem:
		return r.masterSystem.Common
	case KindN64:
		return r.n64.Common
	case KindNES:
		return r.nes.Common
	case KindPSX:
		return r.psx.Common
	case KindSegaCD:
		return r.segaCD.Common
	case KindSNES:
		return r.snes.Common
	default:
		return consoles.Common{}
	}
}

func (r Result) SourceName() string {
	return r.common().SourceName
}

func (r Result) Region() region.Region {
	return r.common().Region
}

func (r Result) RegionString() string {
	return r.common().RegionString
}

func (r Result) RegionMismatch() bool {
	return r.common().RegionMismatch
}

// Print renders the human-readable report of the wrapped analysis.
func (r Result) Print() string {
	switch r.kind {
	case KindGameGear:
		return r.gameGear.Print()
	case KindGB:
		return r.gb.Print()
	case KindGBA:
		return r.gba.Print()
	case KindGenesis:
		return r.genesis.Print()
	case KindMasterSystem:
		return r.masterSystem.Print()
	case KindN64:
		return r.n64.Print()
	case KindNES:
		return r.nes.Print()
	case KindPSX:
		return r.psx.Print()
	case KindSegaCD:
		return r.segaCD.Print()
	case KindSNES:
		return r.snes.Print()
	default:
		return ""
	}
}

// System returns the system ID of the analyzed ROM. It refines the variant
// where the header allows: a GB result may be a Game Boy Color game and a
// Genesis result may be a 32X game.
func (r Result) System() string {
	switch r.kind {
	case KindGameGear:
		return systemdefs.SystemGameGear
	case KindGB:
		if r.gb.IsColor {
			return systemdefs.SystemGameboyColor
		}
		return systemdefs.SystemGameboy
	case KindGBA:
		return systemdefs.SystemGBA
	case KindGenesis:
		if r.genesis.Is32X() {
			return systemdefs.SystemSega32X
		}
		return systemdefs.SystemGenesis
	case KindMasterSystem:
		return systemdefs.SystemMasterSystem
	case KindN64:
		return systemdefs.SystemNintendo64
	case KindNES:
		return systemdefs.SystemNES
	case KindPSX:
		return systemdefs.SystemPSX
	case KindSegaCD:
		return systemdefs.SystemMegaCD
	case KindSNES:
		return systemdefs.SystemSNES
	default:
		return ""
	}
}

// MarshalJSON writes the analysis as one flat object led by a "console"
// tag naming the variant.
func (r Result) MarshalJSON() ([]byte, error) {
	a := r.Analysis()
	if a == nil {
		return nil, errEmptyResult
	}
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s result: %w", r.kind, err)
	}
	tag, err := json.Marshal(r.kind)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal console tag: %w", err)
	}

	out := make([]byte, 0, len(body)+len(tag)+12)
	out = append(out, `{"console":`...)
	out = append(out, tag...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v3.
func (r Result) MarshalYAML() (any, error) {
	a := r.Analysis()
	if a == nil {
		return nil, errEmptyResult
	}
	var node yaml.Node
	if err := node.Encode(a); err != nil {
		return nil, fmt.Errorf("failed to marshal %s result: %w", r.kind, err)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("unexpected yaml node kind %v for %s", node.Kind, r.kind)
	}
	node.Content = append([]*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "console"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(r.kind)},
	}, node.Content...)
	return &node, nil
}
