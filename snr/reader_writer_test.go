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

package snr

import "testing"

func TestPutTakeU32Roundtrip(t *testing.T) {
	w := NewBufWriter()
	PutU32LE(w, 0xDEADBEEF)
	r := NewReader(w.Bytes(), 0)
	got, err := r.TakeU32LE()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xDEADBEEF {
		t.Fatalf("got 0x%x, want 0xdeadbeef", got)
	}
}

func TestPutTakeNumberFixed16Roundtrip(t *testing.T) {
	w := NewBufWriter()
	if err := PutNumber(w, NumberFixed16, 0x1234); err != nil {
		t.Fatal(err)
	}
	r := NewReader(w.Bytes(), 0)
	got, err := r.TakeNumber(NumberFixed16)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x1234 {
		t.Fatalf("got 0x%x, want 0x1234", got)
	}
}

func TestPutTakeNumberVarIntRoundtrip(t *testing.T) {
	values := []uint32{
		0x00000000, // 7-bit literal (T=0), 1 byte on the wire
		0x000000B0, // 4-bit register tag (p=3), 1 byte
		0x000034C0, // 12-bit register tag (p=4), 2 bytes total
		0x00341290, // 20-bit literal tag (p=1), 3 bytes total
		0x332211A0, // 28-bit literal tag (p=2), 4 bytes total
	}
	for _, v := range values {
		w := NewBufWriter()
		if err := PutNumber(w, NumberVarInt, v); err != nil {
			t.Fatalf("PutNumber(0x%x): %v", v, err)
		}
		r := NewReader(w.Bytes(), 0)
		got, err := r.TakeNumber(NumberVarInt)
		if err != nil {
			t.Fatalf("TakeNumber after PutNumber(0x%x): %v", v, err)
		}
		if got != v {
			t.Fatalf("roundtrip 0x%x => 0x%x", v, got)
		}
	}
}

func TestHasInstrDetectsTrailingZeroPadding(t *testing.T) {
	data := make([]byte, 32)
	data[0] = 0x01 // a non-zero instruction byte within the first 16 bytes
	r := NewReader(data, 0)
	if !r.HasInstr() {
		t.Fatal("expected HasInstr true at the start of a non-empty instruction")
	}

	allZero := make([]byte, 16)
	r2 := NewReader(allZero, 0)
	if r2.HasInstr() {
		t.Fatal("expected HasInstr false over an all-zero 16-byte tail")
	}
}

func TestPutLengthOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected PutLength to panic on overflow")
		}
	}()
	w := NewBufWriter()
	PutLength(w, LengthU8, 256)
}

func TestStringRoundtrip(t *testing.T) {
	w := NewBufWriter()
	PutString(w, LengthU8, []byte("hello\x00"))
	r := NewReader(w.Bytes(), 0)
	got, err := r.TakeString(LengthU8)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello\x00" {
		t.Fatalf("got %q", got)
	}
}
