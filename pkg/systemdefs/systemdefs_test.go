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
	"testing"

	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllSystemsHaveValidProperties tests that all systems in the Systems map have required properties
func TestAllSystemsHaveValidProperties(t *testing.T) {
	t.Parallel()

	for systemID, system := range Systems {
		t.Run(systemID, func(t *testing.T) {
			t.Parallel()
			assert.NotEmpty(t, system.ID)
			assert.Equal(t, systemID, system.ID, "System ID should match map key for %s", systemID)
			assert.NotRegexp(t, `\s`, system.ID)
			assert.NotEmpty(t, system.Name)

			for _, alias := range system.Aliases {
				assert.NotEmpty(t, alias, "Alias should not be empty for system %s", systemID)
				assert.NotEqual(t, system.ID, alias)
			}
		})
	}
}

// TestExtensionsAreSupported ties the extension table to the list of ROM
// extensions archives are filtered against.
func TestExtensionsAreSupported(t *testing.T) {
	t.Parallel()

	seen := make(map[string]string)
	for id, system := range Systems {
		for _, ext := range system.Extensions {
			assert.Contains(t, rom.ROMExtensions, ext, "%s extension %s", id, ext)
			if other, dup := seen[ext]; dup {
				assert.Fail(t, "duplicate extension", "%s used by %s and %s", ext, id, other)
			}
			seen[ext] = id
		}
	}

	for _, ext := range ContainerExtensions {
		_, ok := ByExtension(ext)
		assert.False(t, ok, "container extension %s must not map to a single system", ext)
	}

	for _, ext := range rom.ROMExtensions {
		_, ok := ByExtension(ext)
		assert.True(t, ok || IsContainerExtension(ext), "extension %s is not dispatchable", ext)
	}
}

func TestByExtension(t *testing.T) {
	t.Parallel()

	system, ok := ByExtension(".sfc")
	require.True(t, ok)
	assert.Equal(t, SystemSNES, system.ID)

	system, ok = ByExtension(".z64")
	require.True(t, ok)
	assert.Equal(t, SystemNintendo64, system.ID)

	_, ok = ByExtension(".bin")
	assert.False(t, ok)
	assert.True(t, IsContainerExtension(".bin"))
	assert.False(t, IsContainerExtension(".nes"))
}

func TestLookupSystem(t *testing.T) {
	t.Parallel()

	system, err := LookupSystem("segacd")
	require.NoError(t, err)
	assert.Equal(t, SystemMegaCD, system.ID)

	system, err = LookupSystem("n64")
	require.NoError(t, err)
	assert.Equal(t, SystemNintendo64, system.ID)

	_, err = LookupSystem("Dreamcast")
	require.Error(t, err)

	_, err = GetSystem("snes")
	require.Error(t, err, "GetSystem is case-sensitive")
}

func TestAllSystemsSorted(t *testing.T) {
	t.Parallel()

	all := AllSystems()
	require.Len(t, all, len(Systems))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestSuggestSystem(t *testing.T) {
	t.Parallel()

	hint, ok := SuggestSystem("Genisis")
	require.True(t, ok)
	assert.Equal(t, SystemGenesis, hint)

	hint, ok = SuggestSystem("superfamicon")
	require.True(t, ok)
	assert.Equal(t, "SuperFamicom", hint)

	_, ok = SuggestSystem("zzzzzz")
	assert.False(t, ok)
}
