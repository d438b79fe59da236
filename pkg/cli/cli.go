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

// Package cli implements the romcheck command line: flag parsing, config
// merging and the batch run loop.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

type Flags struct {
	Config      *string
	Format      *string
	Systems     *string
	Threads     *int
	Verbose     *bool
	Quiet       *bool
	JSON        *bool
	Recursive   *bool
	Version     *bool
	ListSystems *bool
	set         *flag.FlagSet
}

// SetupFlags defines every romcheck flag on set.
func SetupFlags(set *flag.FlagSet) *Flags {
	return &Flags{
		set: set,
		Config: set.String(
			"config",
			"",
			"path to config file (default $ROMCHECK_CFG or user config dir)",
		),
		Format: set.String(
			"format",
			"",
			"output format: text, json, csv or yaml",
		),
		Systems: set.String(
			"systems",
			"",
			"comma separated system IDs to include in the output",
		),
		Threads: set.Int(
			"threads",
			0,
			"number of files analyzed in parallel (0 means one per CPU)",
		),
		Verbose: set.Bool(
			"v",
			false,
			"enable debug logging",
		),
		Quiet: set.Bool(
			"q",
			false,
			"only log errors",
		),
		JSON: set.Bool(
			"json",
			false,
			"shorthand for -format json",
		),
		Recursive: set.Bool(
			"r",
			false,
			"descend into subdirectories",
		),
		Version: set.Bool(
			"version",
			false,
			"print version and exit",
		),
		ListSystems: set.Bool(
			"list-systems",
			false,
			"print supported system IDs and exit",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

func usage(set *flag.FlagSet, w io.Writer) func() {
	return func() {
		_, _ = fmt.Fprintf(w, "Usage: %s [flags] <file or directory>...\n\n", set.Name())
		set.SetOutput(w)
		set.PrintDefaults()
	}
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
