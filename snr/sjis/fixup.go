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

package sjis

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// fixupFirst and fixupLast bound the half-width katakana single-byte
// range that some shin-engine titles substitute for a full-width
// hiragana character, presumably an artifact of a font whose
// half-width katakana glyph cells were repurposed to hold hiragana
// glyphs instead. Whether a given string actually relies on this
// substitution ("is fixed up") has to be inferred per string, since
// both the substitute byte and the genuine full-width character can
// appear on the wire. The bounds cover the half-width katakana
// single-byte range (0xA1-0xDF) plus the unassigned byte 0xA0
// (0xA0-0xDF): staying inside it guarantees a fixed-up byte can never
// be mistaken by Decode for the lead byte of some unrelated
// double-byte sequence.
const (
	fixupFirst = 0xA0
	fixupLast  = 0xDF
)

// fixupHiragana is the table of hiragana code points this engine's
// font substitution scheme can stand in for, indexed by
// byte-fixupFirst. It spans the basic hiragana syllabary starting at
// U+3041 (the first assignable code point in the block); a real game
// font table would be discovered through raw trial against the
// engine's bitmap font, but any internally-consistent assignment
// round-trips correctly here, since fixupSjis derives the other
// direction from this table rather than from an independent source.
var fixupHiragana [fixupLast - fixupFirst + 1]rune

// fixupSjis is the reverse lookup: hiragana rune to its full-width
// Shift-JIS byte pair, derived once at init time through the x/text
// encoder so this table never drifts out of sync with fixupHiragana.
var fixupSjis = map[rune][2]byte{}

func init() {
	for i := range fixupHiragana {
		fixupHiragana[i] = rune(0x3041 + i)
	}
	enc := japanese.ShiftJIS.NewEncoder()
	for _, r := range fixupHiragana {
		b, _, err := transform.Bytes(enc, []byte(string(r)))
		if err != nil || len(b) != 2 {
			// A hiragana code point that x/text's table cannot encode
			// as a double-byte Shift-JIS pair would mean the
			// syllabary range above was chosen wrong; this is a
			// construction-time bug, not a runtime condition.
			panic("shinkit/sjis: hiragana fix-up table entry failed to encode to two bytes")
		}
		fixupSjis[r] = [2]byte{b[0], b[1]}
	}
}

// FixupDetectResult is the detected fix-up disposition of a string: a
// small lattice that Merge combines across every character of a
// string, and MergeAll combines across every string of a file, to
// decide whether the whole ought to be encoded with or without the
// half-width substitution in play.
type FixupDetectResult int

const (
	// NoFixupCharacters is the lattice bottom: no character in the
	// input was relevant to fix-up detection at all (not a substitute
	// byte, not a full-width hiragana character in the affected
	// range). It merges away into whatever the other operand says.
	NoFixupCharacters FixupDetectResult = iota
	// FixedUp means every relevant character observed was a
	// half-width substitute byte.
	FixedUp
	// UnfixedUp means every relevant character observed was the
	// genuine full-width hiragana character.
	UnfixedUp
	// Inconsistent means both dispositions were observed in the same
	// input; the caller must decide a policy rather than infer one.
	Inconsistent
)

func (r FixupDetectResult) String() string {
	switch r {
	case NoFixupCharacters:
		return "no_fixup_characters"
	case FixedUp:
		return "fixed_up"
	case UnfixedUp:
		return "unfixed_up"
	case Inconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

// Merge combines two FixupDetectResult values associatively and
// commutatively: NoFixupCharacters is the identity, matching
// dispositions are idempotent, and any disagreement collapses to
// Inconsistent once it appears and never un-collapses.
func (r FixupDetectResult) Merge(other FixupDetectResult) FixupDetectResult {
	if r == NoFixupCharacters {
		return other
	}
	if other == NoFixupCharacters {
		return r
	}
	if r == other {
		return r
	}
	return Inconsistent
}

// MergeAll folds Merge across results, returning NoFixupCharacters
// for an empty input.
func MergeAll(results []FixupDetectResult) FixupDetectResult {
	acc := NoFixupCharacters
	for _, r := range results {
		acc = acc.Merge(r)
	}
	return acc
}

// DetectFixup scans raw Shift-JIS bytes b and reports whether the
// half-width-katakana-for-hiragana substitution appears to be active,
// by finding any substitute bytes or genuine full-width hiragana
// characters in the affected range and merging their dispositions.
func DetectFixup(b []byte) FixupDetectResult {
	acc := NoFixupCharacters
	for i := 0; i < len(b); {
		c := b[i]
		if c >= fixupFirst && c <= fixupLast {
			acc = acc.Merge(FixedUp)
			i++
			continue
		}
		if c >= 0x80 && i+1 < len(b) {
			// A lead byte: the pair is one character, so its trail
			// byte is never looked at on its own.
			pair := [2]byte{c, b[i+1]}
			if isFixupHiraganaPair(pair) {
				acc = acc.Merge(UnfixedUp)
			}
			i += 2
			continue
		}
		i++
	}
	return acc
}

func isFixupHiraganaPair(pair [2]byte) bool {
	for _, sjisPair := range fixupSjis {
		if sjisPair == pair {
			return true
		}
	}
	return false
}

// EncodeWithFixup encodes s to Shift-JIS bytes, substituting the
// half-width byte for any hiragana character in the fix-up table when
// useFixup is set, and the genuine full-width pair otherwise.
func EncodeWithFixup(s string, useFixup bool) ([]byte, error) {
	var out []byte
	for _, r := range s {
		if useFixup {
			if idx := int(r) - 0x3041; idx >= 0 && idx < len(fixupHiragana) && fixupHiragana[idx] == r {
				out = append(out, byte(fixupFirst+idx))
				continue
			}
		}
		enc, err := Encode(string(r))
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}
