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

// Package output renders batch results as text, JSON, CSV or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/romcheck/pkg/analyzer"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatText, FormatJSON, FormatCSV, FormatYAML}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

const separator = "----------------------------------------------------------------"

// Row is the flat CSV form of one batch result.
type Row struct {
	Path           string `csv:"path"`
	Console        string `csv:"console"`
	System         string `csv:"system"`
	SourceName     string `csv:"source_name"`
	Region         string `csv:"region"`
	RegionString   string `csv:"region_string"`
	Error          string `csv:"error"`
	RegionMismatch bool   `csv:"region_mismatch"`
}

// NewRow flattens a batch result. Failed results only carry the path and
// the error text.
func NewRow(r analyzer.BatchResult) Row {
	row := Row{Path: r.Path}
	if r.Err != nil {
		row.Error = r.Err.Error()
		return row
	}
	res := r.Result
	row.Console = string(res.Kind())
	row.System = res.System()
	row.SourceName = res.SourceName()
	row.Region = res.Region().String()
	row.RegionString = res.RegionString()
	row.RegionMismatch = res.RegionMismatch()
	return row
}

// Successful returns the analyzed results in input order.
func Successful(results []analyzer.BatchResult) []analyzer.Result {
	out := make([]analyzer.Result, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Result != nil {
			out = append(out, *r.Result)
		}
	}
	return out
}

// Write renders results in format. Text, JSON and YAML include only
// successful analyses; CSV has a row per input including failures.
func Write(w io.Writer, format Format, results []analyzer.BatchResult) error {
	switch format {
	case FormatText:
		return writeText(w, results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Successful(results)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatCSV:
		rows := make([]Row, 0, len(results))
		for _, r := range results {
			rows = append(rows, NewRow(r))
		}
		if err := gocsv.Marshal(rows, w); err != nil {
			return fmt.Errorf("failed to encode csv: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Successful(results)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func writeText(w io.Writer, results []analyzer.BatchResult) error {
	for _, r := range Successful(results) {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", separator, r.Print()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if r.RegionMismatch() {
			if _, err := fmt.Fprintf(w, "%-13s %s\n", "Warning:",
				"header region does not match the region in the file name"); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}
	}
	if _, err := fmt.Fprintln(w, separator); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
