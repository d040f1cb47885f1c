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

import "fmt"

// varIntExtra returns the number of bytes (0-3) that follow the first
// byte t of a VarInt NumberSpec encoding, per the bit layout:
//
//	t = TPPPKKKK
//	T=0            -> 7-bit signed literal, 0 extra bytes
//	T=1, P=0 (0-2)  -> 12/20/28-bit signed literal, 1/2/3 extra bytes
//	T=1, P=3        -> 4-bit register, 0 extra bytes
//	T=1, P=4        -> 12-bit register, 1 extra byte
//	T=1, P=5        -> 4-bit argument register, 0 extra bytes
//	T=1, P=6        -> sentinel minimum-int literal, 0 extra bytes
//	T=1, P=7        -> undefined
func varIntExtra(t byte) (int, error) {
	if t&0x80 == 0 {
		return 0, nil
	}
	p := (t >> 4) & 7
	switch p {
	case 0:
		return 1, nil
	case 1:
		return 2, nil
	case 2:
		return 3, nil
	case 3, 5, 6:
		return 0, nil
	case 4:
		return 1, nil
	default:
		return 0, fmt.Errorf("shinkit: undefined varint tag byte 0x%02x (p=%d)", t, p)
	}
}
