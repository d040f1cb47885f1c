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

func TestArenaResetTruncatesButKeepsCapacity(t *testing.T) {
	a := NewArena()
	a.U8 = append(a.U8, 1, 2, 3)
	a.Offset = append(a.Offset, 10, 20)
	a.String = append(a.String, StringValue{Raw: []byte("x")})
	a.Bitmask = append(a.Bitmask, BitmaskEntry{Bit: 1, Number: 2})

	u8Cap := cap(a.U8)
	offsetCap := cap(a.Offset)

	a.Reset()

	if len(a.U8) != 0 || len(a.Offset) != 0 || len(a.String) != 0 || len(a.Bitmask) != 0 {
		t.Fatalf("Reset did not truncate every slice: %+v", a)
	}
	if cap(a.U8) != u8Cap {
		t.Fatalf("Reset reallocated U8: cap %d, want %d", cap(a.U8), u8Cap)
	}
	if cap(a.Offset) != offsetCap {
		t.Fatalf("Reset reallocated Offset: cap %d, want %d", cap(a.Offset), offsetCap)
	}
}

func TestArenaResetAllowsReuse(t *testing.T) {
	a := NewArena()
	a.Number = append(a.Number, 1)
	a.Reset()
	a.Number = append(a.Number, 2, 3)
	if len(a.Number) != 2 || a.Number[0] != 2 || a.Number[1] != 3 {
		t.Fatalf("got %v, want [2 3]", a.Number)
	}
}
