// shinkit - a toolchain for translating shin-engine visual novels
// Copyright (C) 2026  shinkit contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package sjis implements the Shift-JIS byte encoding used by SNR
// strings, plus the half-width/full-width "fix-up" detection the
// format's strings are subject to.
//
// The double-byte JIS X 0208 table itself is delegated to
// golang.org/x/text/encoding/japanese, which already carries the full
// mapping; this package only adds the handful of single-byte
// exceptions and the fix-up policy the engine layers on top.
package sjis

import (
	"fmt"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// asciiException remaps the two JIS-Roman code points that diverge
// from ASCII in the single-byte range: 0x5C is YEN SIGN, not
// backslash, and 0x7E is OVERLINE, not tilde.
var asciiException = map[byte]rune{
	0x5C: '¥',
	0x7E: '‾',
}

var asciiExceptionReverse = func() map[rune]byte {
	m := make(map[rune]byte, len(asciiException))
	for b, r := range asciiException {
		m[r] = b
	}
	return m
}()

// halfWidthExtra remaps 0xA0, the one byte shin's half-width range
// (fixupFirst..fixupLast, 0xA0-0xDF) carries that stock Shift-JIS
// leaves unassigned: x/text's table has nothing for it, so it is
// decoded to a private-use placeholder the same way asciiException
// handles the ASCII divergences, rather than falling through to the
// double-byte branch.
var halfWidthExtra = map[byte]rune{
	0xA0: '',
}

var halfWidthExtraReverse = func() map[rune]byte {
	m := make(map[rune]byte, len(halfWidthExtra))
	for b, r := range halfWidthExtra {
		m[r] = b
	}
	return m
}()

// Decode converts a Shift-JIS byte string to UTF-8, applying the
// engine's single-byte exceptions on top of x/text's table, and
// strips every trailing zero byte (the engine zero-pads strings to
// their declared length, and those padding bytes are never part of
// the text).
//
// When fixup is true, a single byte in the half-width katakana range
// is decoded through the alternative fixupHiragana table instead of
// x/text's own half-width katakana mapping: some shin-engine titles
// repurpose that byte range to mean full-width hiragana rather than
// half-width katakana, and which table applies is a per-string
// property (StringStyle.Fixup), not something Decode can infer from
// the bytes alone.
func Decode(b []byte, fixup bool) (string, error) {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}

	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		if r, ok := asciiException[c]; ok && c < 0x80 {
			out = append(out, r)
			i++
			continue
		}
		if c >= fixupFirst && c <= fixupLast {
			switch {
			case fixup:
				out = append(out, fixupHiragana[c-fixupFirst])
			case c == 0xA0:
				out = append(out, halfWidthExtra[c])
			default:
				s, _, err := transform.String(japanese.ShiftJIS.NewDecoder(), string(b[i:i+1]))
				if err != nil {
					return "", fmt.Errorf("shinkit/sjis: decoding byte 0x%02x at offset %d: %w", c, i, err)
				}
				out = append(out, []rune(s)...)
			}
			i++
			continue
		}
		if c < 0x80 {
			s, _, err := transform.String(japanese.ShiftJIS.NewDecoder(), string(b[i:i+1]))
			if err != nil {
				return "", fmt.Errorf("shinkit/sjis: decoding byte 0x%02x at offset %d: %w", c, i, err)
			}
			out = append(out, []rune(s)...)
			i++
			continue
		}
		if i+1 >= len(b) {
			return "", fmt.Errorf("shinkit/sjis: truncated double-byte sequence at offset %d", i)
		}
		s, _, err := transform.String(japanese.ShiftJIS.NewDecoder(), string(b[i:i+2]))
		if err != nil {
			return "", fmt.Errorf("shinkit/sjis: decoding bytes 0x%02x%02x at offset %d: %w", b[i], b[i+1], i, err)
		}
		out = append(out, []rune(s)...)
		i += 2
	}
	return string(out), nil
}

// Encode converts a UTF-8 string to Shift-JIS bytes, applying the
// engine's single-byte exceptions before falling back to x/text.
func Encode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := asciiExceptionReverse[r]; ok {
			out = append(out, b)
			continue
		}
		if b, ok := halfWidthExtraReverse[r]; ok {
			out = append(out, b)
			continue
		}
		enc, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), string(r))
		if err != nil {
			return nil, fmt.Errorf("shinkit/sjis: encoding rune %q: %w", r, err)
		}
		out = append(out, enc...)
	}
	return out, nil
}
