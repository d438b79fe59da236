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

package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ZaparooProject/romcheck/pkg/systemdefs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testCfgPath = "/home/user/.config/romcheck/romcheck.toml"

func writeConfig(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(testCfgPath), 0o750))
	require.NoError(t, afero.WriteFile(fs, testCfgPath, []byte(content), 0o600))
}

func TestNewConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg, err := NewConfig(fs, testCfgPath, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, testCfgPath, cfg.Path())
	assert.Equal(t, BaseDefaults, cfg.Values())
	assert.Equal(t, OutputText, cfg.Output())
	assert.Zero(t, cfg.Threads())

	exists, err := afero.Exists(fs, testCfgPath)
	require.NoError(t, err)
	assert.False(t, exists, "loading defaults must not create a file")
}

func TestLoad_PreservesDefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, fmt.Sprintf("config_schema = %d\n", SchemaVersion))

	defaults := BaseDefaults
	defaults.Threads = 4
	defaults.Recursive = true

	cfg, err := NewConfig(fs, testCfgPath, defaults)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Threads())
	assert.True(t, cfg.Recursive())
	assert.Equal(t, OutputText, cfg.Output())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, fmt.Sprintf(`config_schema = %d
output = "json"
threads = 8
recursive = true
debug_logging = true
log_file = "/tmp/romcheck.log"
systems = ["snes", "Genesis", "MegaDrive"]
`, SchemaVersion))

	cfg, err := NewConfig(fs, testCfgPath, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, OutputJSON, cfg.Output())
	assert.Equal(t, 8, cfg.Threads())
	assert.True(t, cfg.Recursive())
	assert.True(t, cfg.DebugLogging())
	assert.False(t, cfg.Quiet())
	assert.Equal(t, "/tmp/romcheck.log", cfg.LogFile())
	assert.Equal(t, []string{systemdefs.SystemSNES, systemdefs.SystemGenesis}, cfg.Systems())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad toml",
			content: "output = [",
			wantErr: "failed to unmarshal config",
		},
		{
			name:    "schema mismatch",
			content: "config_schema = 99\n",
			wantErr: "schema version mismatch",
		},
		{
			name:    "bad output",
			content: fmt.Sprintf("config_schema = %d\noutput = \"xml\"\n", SchemaVersion),
			wantErr: "output must be one of: text json csv yaml",
		},
		{
			name:    "negative threads",
			content: fmt.Sprintf("config_schema = %d\nthreads = -1\n", SchemaVersion),
			wantErr: "threads must be greater than or equal to 0",
		},
		{
			name:    "too many threads",
			content: fmt.Sprintf("config_schema = %d\nthreads = 1000\n", SchemaVersion),
			wantErr: "threads must be less than or equal to 256",
		},
		{
			name:    "misspelled system",
			content: fmt.Sprintf("config_schema = %d\nsystems = [\"Genisis\"]\n", SchemaVersion),
			wantErr: `system "Genisis" not found, did you mean "Genesis"?`,
		},
		{
			name:    "unknown system",
			content: fmt.Sprintf("config_schema = %d\nsystems = [\"Dreamcast\"]\n", SchemaVersion),
			wantErr: `system "Dreamcast" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			writeConfig(t, fs, tt.content)

			_, err := NewConfig(fs, testCfgPath, BaseDefaults)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	t.Parallel()

	vals := Values{Output: "xml", Threads: -2, Systems: []string{"NES", "nope"}}
	err := Validate(&vals)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)

	tags := make([]string, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		tags = append(tags, fe.Tag)
	}
	assert.ElementsMatch(t, []string{"oneof", "gte", "system"}, tags)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg, err := NewConfig(fs, testCfgPath, BaseDefaults)
	require.NoError(t, err)

	cfg.SetOutput(OutputYAML)
	cfg.SetThreads(3)
	cfg.SetRecursive(true)
	cfg.SetQuiet(true)
	require.NoError(t, cfg.SetSystems([]string{"gbc", "SegaCD"}))
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(fs, testCfgPath, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, cfg.Values(), reloaded.Values())
	assert.Equal(t, []string{systemdefs.SystemGameboyColor, systemdefs.SystemMegaCD}, reloaded.Systems())
}

func TestSetSystems_RejectsUnknown(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(afero.NewMemMapFs(), testCfgPath, BaseDefaults)
	require.NoError(t, err)

	require.NoError(t, cfg.SetSystems([]string{"NES"}))
	err = cfg.SetSystems([]string{"NES", "Vectrex"})
	require.Error(t, err)
	assert.Equal(t, []string{systemdefs.SystemNES}, cfg.Systems())
}

func TestNewConfig_EnvPath(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel.
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, fmt.Sprintf("config_schema = %d\noutput = \"csv\"\n", SchemaVersion))
	t.Setenv(CfgEnv, testCfgPath)

	cfg, err := NewConfig(fs, "", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, testCfgPath, cfg.Path())
	assert.Equal(t, OutputCSV, cfg.Output())
}

func TestValuesReturnsCopy(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(afero.NewMemMapFs(), testCfgPath, BaseDefaults)
	require.NoError(t, err)
	require.NoError(t, cfg.SetSystems([]string{"NES"}))

	v := cfg.Values()
	v.Systems[0] = "SNES"
	assert.Equal(t, []string{systemdefs.SystemNES}, cfg.Systems())
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(afero.NewMemMapFs(), testCfgPath, BaseDefaults)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetThreads(i)
			cfg.SetDebugLogging(i%2 == 0)
		}()
		go func() {
			defer wg.Done()
			_ = cfg.Threads()
			_ = cfg.Values()
		}()
	}
	wg.Wait()
}

func TestCanonicalSystems_Property(t *testing.T) {
	t.Parallel()

	ids := systemdefs.AllSystems()
	rapid.Check(t, func(t *rapid.T) {
		picks := rapid.SliceOf(rapid.SampledFrom(ids)).Draw(t, "systems")
		names := make([]string, len(picks))
		for i, s := range picks {
			names[i] = s.ID
		}

		got := CanonicalSystems(names)
		seen := make(map[string]bool)
		for _, id := range got {
			if seen[id] {
				t.Fatalf("duplicate system %s", id)
			}
			seen[id] = true
			if _, err := systemdefs.LookupSystem(id); err != nil {
				t.Fatalf("non-canonical id %s", id)
			}
		}
		for _, n := range names {
			if !seen[n] {
				t.Fatalf("dropped system %s", n)
			}
		}
	})
}
