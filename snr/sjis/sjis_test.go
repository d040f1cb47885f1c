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

import "testing"

func TestEncodeDecodeASCIIRoundtrip(t *testing.T) {
	in := "Hello, World! 123"
	enc, err := Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := Decode(enc, false)
	if err != nil {
		t.Fatal(err)
	}
	if dec != in {
		t.Fatalf("got %q, want %q", dec, in)
	}
}

func TestEncodeYenAndOverline(t *testing.T) {
	enc, err := Encode("¥‾")
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 2 || enc[0] != 0x5C || enc[1] != 0x7E {
		t.Fatalf("got % x, want [5c 7e]", enc)
	}
}

func TestEncodeDecodeHiraganaRoundtrip(t *testing.T) {
	in := "あいうえお"
	enc, err := Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := Decode(enc, false)
	if err != nil {
		t.Fatal(err)
	}
	if dec != in {
		t.Fatalf("got %q, want %q", dec, in)
	}
}

func TestDecodeStripsTrailingZeroBytes(t *testing.T) {
	enc, err := Encode("AIUEO")
	if err != nil {
		t.Fatal(err)
	}
	enc = append(enc, 0, 0, 0)
	dec, err := Decode(enc, false)
	if err != nil {
		t.Fatal(err)
	}
	if dec != "AIUEO" {
		t.Fatalf("got %q, want no trailing NUL", dec)
	}
}

func TestDecodeHalfWidthByteA0DoesNotFallIntoDoubleByteBranch(t *testing.T) {
	// Bytes 0x82 0xA0 (full-width hiragana), 0x82 0xA2 (full-width
	// hiragana), then the single half-width byte 0xA0 itself: with the
	// range widened to include 0xA0, that last byte must decode as a
	// single byte rather than be consumed as the lead byte of an
	// unrelated double-byte sequence.
	b := []byte{0x82, 0xA0, 0x82, 0xA2, 0xA0}
	dec, err := Decode(b, false)
	if err != nil {
		t.Fatalf("Decode errored on a literal 0xA0 byte: %v", err)
	}
	if got := []rune(dec); len(got) != 3 {
		t.Fatalf("got %q (%d runes), want 3", dec, len(got))
	}
}

func TestDecodeFixupUsesAlternativeTable(t *testing.T) {
	fixedUp, err := EncodeWithFixup("あ", true)
	if err != nil {
		t.Fatal(err)
	}
	withFixup, err := Decode(fixedUp, true)
	if err != nil {
		t.Fatal(err)
	}
	if withFixup != "あ" {
		t.Fatalf("got %q, want the alternative table to recover the original hiragana", withFixup)
	}
	withoutFixup, err := Decode(fixedUp, false)
	if err != nil {
		t.Fatal(err)
	}
	if withoutFixup == "あ" {
		t.Fatal("decoding a fixed-up byte without the hint should not coincidentally recover the hiragana")
	}
}

func TestDetectFixupNoRelevantCharacters(t *testing.T) {
	enc, err := Encode("Hello")
	if err != nil {
		t.Fatal(err)
	}
	if got := DetectFixup(enc); got != NoFixupCharacters {
		t.Fatalf("got %v, want NoFixupCharacters", got)
	}
}

func TestDetectFixupFixedUp(t *testing.T) {
	b := []byte{fixupFirst}
	if got := DetectFixup(b); got != FixedUp {
		t.Fatalf("got %v, want FixedUp", got)
	}
}

func TestDetectFixupUnfixedUp(t *testing.T) {
	enc, err := EncodeWithFixup("あ", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := DetectFixup(enc); got != UnfixedUp {
		t.Fatalf("got %v, want UnfixedUp", got)
	}
}

func TestDetectFixupInconsistent(t *testing.T) {
	fixedUp, err := EncodeWithFixup("あ", true)
	if err != nil {
		t.Fatal(err)
	}
	unfixed, err := EncodeWithFixup("い", false)
	if err != nil {
		t.Fatal(err)
	}
	b := append(append([]byte{}, fixedUp...), unfixed...)
	if got := DetectFixup(b); got != Inconsistent {
		t.Fatalf("got %v, want Inconsistent", got)
	}
}

func TestFixupDetectResultMerge(t *testing.T) {
	cases := []struct {
		a, b, want FixupDetectResult
	}{
		{NoFixupCharacters, FixedUp, FixedUp},
		{FixedUp, NoFixupCharacters, FixedUp},
		{FixedUp, FixedUp, FixedUp},
		{FixedUp, UnfixedUp, Inconsistent},
		{Inconsistent, FixedUp, Inconsistent},
	}
	for _, c := range cases {
		if got := c.a.Merge(c.b); got != c.want {
			t.Fatalf("%v.Merge(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestEncodeWithFixupRoundtrip(t *testing.T) {
	enc, err := EncodeWithFixup("あいう", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 3 {
		t.Fatalf("expected 3 fixed-up bytes, got % x", enc)
	}
	for _, b := range enc {
		if b < fixupFirst || b > fixupLast {
			t.Fatalf("byte 0x%02x outside fix-up range", b)
		}
	}
}
