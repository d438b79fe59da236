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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/romcheck/pkg/helpers/syncutil"
	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	AppName       = "romcheck"
	CfgEnv        = "ROMCHECK_CFG"
	CfgFile       = "romcheck.toml"
	OutputText    = "text"
	OutputJSON    = "json"
	OutputCSV     = "csv"
	OutputYAML    = "yaml"
	MaxThreads    = 256
)

type Values struct {
	Output       string   `toml:"output" validate:"oneof=text json csv yaml"`
	LogFile      string   `toml:"log_file,omitempty"`
	Systems      []string `toml:"systems,omitempty,multiline" validate:"dive,system"`
	ConfigSchema int      `toml:"config_schema"`
	Threads      int      `toml:"threads" validate:"gte=0,lte=256"`
	Recursive    bool     `toml:"recursive"`
	DebugLogging bool     `toml:"debug_logging"`
	Quiet        bool     `toml:"quiet"`
}

// AppVersion is set at build time with -ldflags.
var AppVersion = "DEVELOPMENT"

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Output:       OutputText,
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// DefaultPath returns the config file path used when neither a flag nor
// ROMCHECK_CFG names one.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, CfgFile)
}

// NewConfig loads the config file at cfgPath on top of defaults. An empty
// cfgPath falls back to ROMCHECK_CFG and then to DefaultPath. A missing file
// is not an error, the defaults are used as-is.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, cfgPath string, defaults Values) (*Instance, error) {
	if cfgPath == "" {
		cfgPath = os.Getenv(CfgEnv)
		log.Debug().Msgf("env config path: %s", cfgPath)
	}
	if cfgPath == "" {
		cfgPath = DefaultPath()
	}

	cfg := &Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := fs.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", cfgPath).Msg("no config file, using defaults")
		return cfg, nil
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := Validate(&newVals); err != nil {
		return fmt.Errorf("invalid config file %s: %w", c.cfgPath, err)
	}
	newVals.Systems = CanonicalSystems(newVals.Systems)

	c.vals = newVals
	log.Debug().Str("path", c.cfgPath).Msg("loaded config file")
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := c.fs.MkdirAll(filepath.Dir(c.cfgPath), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

// Values returns a copy of the loaded values.
func (c *Instance) Values() Values {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := c.vals
	v.Systems = append([]string(nil), c.vals.Systems...)
	return v
}

func (c *Instance) Threads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Threads
}

func (c *Instance) SetThreads(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Threads = n
}

func (c *Instance) Output() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output
}

func (c *Instance) SetOutput(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Output = format
}

func (c *Instance) Recursive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Recursive
}

func (c *Instance) SetRecursive(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Recursive = enabled
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) Quiet() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Quiet
}

func (c *Instance) SetQuiet(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Quiet = enabled
}

func (c *Instance) LogFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.LogFile
}

// Systems returns the system ID allow-list. Empty means every system.
func (c *Instance) Systems() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.vals.Systems...)
}

// SetSystems replaces the allow-list. IDs and aliases are validated and
// stored in canonical form.
func (c *Instance) SetSystems(systems []string) error {
	v := Values{Output: OutputText, Systems: systems}
	if err := Validate(&v); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Systems = CanonicalSystems(systems)
	return nil
}
