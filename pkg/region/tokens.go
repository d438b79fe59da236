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

import (
	"bytes"
	"strings"
)

// boundary controls how much of the surrounding text must be a non-word
// character for a token to count.
type boundary uint8

const (
	// anywhere matches a substring, used for self-delimiting tokens like "(u)".
	anywhere boundary = iota
	// wordStart needs a non-word byte (or the start) before the token.
	wordStart
	// wholeWord needs non-word bytes on both sides.
	wholeWord
)

type token struct {
	text   string
	bound  boundary
	region Region
}

// Filename tokens follow No-Intro, GoodTools and TOSEC naming. Multi-region
// GoodTools codes come first so they are consumed before the single-letter
// codes inside them.
var filenameTokens = []token{
	{text: "(jue)", region: Japan | USA | Europe},
	{text: "(ue)", region: USA | Europe},
	{text: "(ju)", region: Japan | USA},
	{text: "(je)", region: Japan | Europe},
	{text: "(world)", region: World},
	{text: "[world]", region: World},
	{text: "(w)", region: World},
	{text: "[w]", region: World},
	{text: "ntsc-j", region: Japan},
	{text: "ntsc-u", region: USA},
	{text: "jap", bound: wordStart, region: Japan},
	{text: "(j)", region: Japan},
	{text: "[j]", region: Japan},
	{text: "(jp)", region: Japan},
	{text: "usa", bound: wholeWord, region: USA},
	{text: "(u)", region: USA},
	{text: "[u]", region: USA},
	{text: "(us)", region: USA},
	{text: "eur", bound: wordStart, region: Europe},
	{text: "(e)", region: Europe},
	{text: "[e]", region: Europe},
	{text: "pal", bound: wholeWord, region: Europe},
	{text: "russia", bound: wordStart, region: Russia},
	{text: "dendy", bound: wholeWord, region: Russia},
	{text: "(r)", region: Russia},
	{text: "(ru)", region: Russia},
	{text: "asia", bound: wordStart, region: Asia},
	{text: "(as)", region: Asia},
	{text: "china", bound: wordStart, region: China},
	{text: "(ch)", region: China},
	{text: "(cn)", region: China},
	{text: "korea", bound: wordStart, region: Korea},
	{text: "(k)", region: Korea},
	{text: "(kr)", region: Korea},
}

// Header tokens cover the labels the format readers produce plus the raw
// codes embedded in some headers (PlayStation executable prefixes). Composite
// labels precede their parts: "Non-Japan" must not count as Japan, and an
// "Export" release ships to both USA and Europe.
//
// A Game Boy destination of 0x01 ("Non-Japan") resolves to USA|Europe.
var headerTokens = []token{
	{text: "non-japan (international)", region: USA | Europe},
	{text: "non-japan", region: USA | Europe},
	{text: "multi-region", region: World},
	{text: "world", bound: wholeWord, region: World},
	{text: "international", bound: wholeWord, region: World},
	{text: "export", bound: wholeWord, region: USA | Europe},
	{text: "overseas", bound: wholeWord, region: USA | Europe},
	{text: "ntsc-j", region: Japan},
	{text: "ntsc-u", region: USA},
	{text: "slps", bound: wordStart, region: Japan},
	{text: "slpm", bound: wordStart, region: Japan},
	{text: "scps", bound: wordStart, region: Japan},
	{text: "slus", bound: wordStart, region: USA},
	{text: "scus", bound: wordStart, region: USA},
	{text: "sles", bound: wordStart, region: Europe},
	{text: "sces", bound: wordStart, region: Europe},
	{text: "japan", bound: wordStart, region: Japan},
	{text: "usa", bound: wholeWord, region: USA},
	{text: "america", bound: wordStart, region: USA},
	{text: "canada", bound: wholeWord, region: USA},
	{text: "brazil", bound: wholeWord, region: USA},
	{text: "europe", bound: wordStart, region: Europe},
	{text: "pal", bound: wholeWord, region: Europe},
	{text: "oceania", bound: wholeWord, region: Europe},
	{text: "australia", bound: wholeWord, region: Europe},
	{text: "scandinavia", bound: wholeWord, region: Europe},
	{text: "uk", bound: wholeWord, region: Europe},
	{text: "russia", bound: wordStart, region: Russia},
	{text: "dendy", bound: wholeWord, region: Russia},
	{text: "asia", bound: wordStart, region: Asia},
	{text: "taiwan", bound: wholeWord, region: Asia},
	{text: "indonesia", bound: wholeWord, region: Asia},
	{text: "hong kong", bound: wholeWord, region: Asia},
	{text: "china", bound: wholeWord, region: China},
	{text: "korea", bound: wordStart, region: Korea},
}

// InferFromFilename scans a file name for region tokens. Every matching
// token contributes its flags, so "Game (U)(J).sfc" is Japan|USA. A name with
// no tokens yields Unknown.
func InferFromFilename(name string) Region {
	return scan(name, filenameTokens)
}

// InferFromHeaderText applies the same scan to a string derived from a ROM
// header, such as a region label or an executable code.
func InferFromHeaderText(text string) Region {
	return scan(text, headerTokens)
}

func scan(text string, table []token) Region {
	if text == "" {
		return Unknown
	}

	buf := []byte(strings.ToLower(text))
	var r Region
	for _, tok := range table {
		if consume(buf, tok) {
			r |= tok.region
		}
	}
	return r
}

// consume blanks out every qualifying occurrence of tok in buf so later,
// shorter tokens can't match inside text that was already accounted for.
func consume(buf []byte, tok token) bool {
	found := false
	from := 0
	for from < len(buf) {
		i := bytes.Index(buf[from:], []byte(tok.text))
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(tok.text)
		if bounded(buf, start, end, tok.bound) {
			found = true
			for j := start; j < end; j++ {
				buf[j] = ' '
			}
		}
		from = start + 1
	}
	return found
}

func bounded(buf []byte, start, end int, b boundary) bool {
	if b == anywhere {
		return true
	}
	if start > 0 && isWordByte(buf[start-1]) {
		return false
	}
	if b == wholeWord && end < len(buf) && isWordByte(buf[end]) {
		return false
	}
	return true
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
