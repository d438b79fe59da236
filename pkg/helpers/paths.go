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

package helpers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/ZaparooProject/romcheck/pkg/helpers/syncutil"
	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ExpandPaths turns command line arguments into the list of files to check.
// Plain files are kept in argument order whatever their extension, so an
// unsupported file still gets reported. Directories contribute the supported
// files directly inside them, sorted, or the whole tree when recursive is
// set. Duplicate paths are dropped. A nil afs means the OS filesystem.
func ExpandPaths(afs afero.Fs, args []string, recursive bool) ([]string, error) {
	if afs == nil {
		afs = afero.NewOsFs()
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(args))
	add := func(p string) {
		if seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, arg := range args {
		info, err := afs.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		files, err := walkDir(afs, arg, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}

	return out, nil
}

// walkDir collects supported files under root. The OS filesystem is walked
// concurrently with fastwalk, anything else with afero.Walk.
func walkDir(afs afero.Fs, root string, recursive bool) ([]string, error) {
	var (
		mu    syncutil.Mutex
		files []string
	)

	visit := func(p string, isDir bool, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			log.Warn().Err(err).Str("path", p).Msg("skipping unreadable path")
			return nil
		}
		if isDir {
			if p != root && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !rom.IsSupported(p) {
			return nil
		}

		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	}

	var err error
	if _, ok := afs.(*afero.OsFs); ok {
		conf := fastwalk.Config{Follow: true}
		err = fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return visit(p, false, walkErr)
			}
			return visit(p, d.IsDir(), nil)
		})
	} else {
		err = afero.Walk(afs, root, func(p string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return visit(p, false, walkErr)
			}
			return visit(p, info.IsDir(), nil)
		})
	}
	if err != nil && !errors.Is(err, fs.SkipDir) {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(files)
	log.Debug().Str("dir", root).Int("files", len(files)).Msg("expanded directory")
	return files, nil
}
