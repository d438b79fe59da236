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

// Package analyzer classifies ROM files and archives and runs the matching
// console reader. It is the only package that touches the filesystem.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/ZaparooProject/romcheck/pkg/archive"
	"github.com/ZaparooProject/romcheck/pkg/rom"
	"github.com/ZaparooProject/romcheck/pkg/systemdefs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Analyzer struct {
	fs      afero.Fs
	openCHD archive.CHDOpener
	readers map[Kind]Reader
}

type Option func(*Analyzer)

// WithCHDOpener replaces the go-gameid backed CHD opener.
func WithCHDOpener(open archive.CHDOpener) Option {
	return func(a *Analyzer) {
		a.openCHD = open
	}
}

// WithReader replaces the reader used for one variant.
func WithReader(kind Kind, r Reader) Option {
	return func(a *Analyzer) {
		a.readers[kind] = r
	}
}

// New returns an Analyzer reading files from fs. A nil fs means the OS
// filesystem.
func New(fs afero.Fs, opts ...Option) *Analyzer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	a := &Analyzer{
		fs:      fs,
		readers: DefaultReaders(),
	}
	a.openCHD = archive.NewCHDOpener(fs)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classify runs the reader chosen for name over data. Unsupported
// extensions fail with *rom.UnsupportedFormatError before any reader runs.
func (a *Analyzer) Classify(data []byte, name string) (Result, error) {
	kind, ok := KindFor(data, name)
	if !ok {
		return Result{}, &rom.UnsupportedFormatError{Path: name}
	}
	read, ok := a.readers[kind]
	if !ok {
		return Result{}, &rom.UnsupportedFormatError{Path: name}
	}
	return read(data, name)
}

// Classify is Analyzer.Classify with the default readers.
func Classify(data []byte, name string) (Result, error) {
	return defaultAnalyzer.Classify(data, name)
}

var defaultAnalyzer = &Analyzer{readers: DefaultReaders()}

// AnalyzeFile reads and classifies one file. ZIP archives are searched for
// the first entry that analyzes cleanly; CHD images contribute only their
// leading header window.
func (a *Analyzer) AnalyzeFile(ctx context.Context, p string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("analysis cancelled: %w", err)
	}

	var (
		res Result
		err error
	)
	switch rom.Ext(p) {
	case rom.ExtZIP:
		res, err = a.analyzeZIP(p)
	case rom.ExtCHD:
		res, err = a.analyzeCHD(p)
	default:
		res, err = a.analyzeRaw(p)
	}
	if err != nil {
		return Result{}, err
	}

	if res.RegionMismatch() {
		log.Warn().Str("source", res.SourceName()).
			Str("declared", res.Region().String()).
			Msg("header region does not match filename region")
	}
	return res, nil
}

func (a *Analyzer) analyzeRaw(p string) (Result, error) {
	if !Dispatchable(p) {
		return Result{}, &rom.UnsupportedFormatError{Path: p}
	}

	f, err := a.fs.Open(p)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Str("path", p).Msg("failed to close file")
		}
	}()

	// Disc images only need their first sectors.
	var r io.Reader = f
	ext := rom.Ext(p)
	if systemdefs.IsContainerExtension(ext) || ext == ".scd" {
		r = io.LimitReader(f, rom.MaxPayloadSize)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return a.Classify(data, p)
}

func (a *Analyzer) analyzeZIP(p string) (Result, error) {
	f, err := a.fs.Open(p)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open zip: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Str("path", p).Msg("failed to close zip")
		}
	}()

	stat, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("failed to get file stats: %w", err)
	}

	var res Result
	err = archive.EachZIPEntry(f, stat.Size(), p, func(ex *archive.Extraction) error {
		// Members are reported as <archive>/<member>.
		r, classifyErr := a.Classify(ex.Data, path.Join(p, ex.Name))
		if classifyErr != nil {
			return classifyErr
		}
		res = r
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (a *Analyzer) analyzeCHD(p string) (Result, error) {
	data, err := archive.ExtractCHD(p, a.openCHD)
	if err != nil {
		return Result{}, err
	}
	return a.Classify(data, p)
}
