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

package region

import "testing"

// FuzzInferFromFilename checks the token scanner on arbitrary input: it must
// not panic and must only ever return known flags.
func FuzzInferFromFilename(f *testing.F) {
	f.Add("Super Mario World (USA).sfc")
	f.Add("Game (U)(J) [!].smc")
	f.Add("Game (JUE).gb")
	f.Add("((((((((usa")
	f.Add("pal")
	f.Add("İstanbul (Europe).md")

	valid := World | Asia | China | Korea
	f.Fuzz(func(t *testing.T, name string) {
		r := InferFromFilename(name)
		if r&^valid != 0 {
			t.Fatalf("unexpected bits 0x%02X for %q", uint8(r), name)
		}
		if h := InferFromHeaderText(name); h&^valid != 0 {
			t.Fatalf("unexpected header bits 0x%02X for %q", uint8(h), name)
		}
	})
}
