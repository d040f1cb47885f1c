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

func TestVarIntExtra(t *testing.T) {
	cases := []struct {
		name    string
		t       byte
		extra   int
		wantErr bool
	}{
		{"literal7", 0b0_000_0000, 0, false},
		{"literal12", 0b1_000_0000, 1, false},
		{"literal20", 0b1_001_0000, 2, false},
		{"literal28", 0b1_010_0000, 3, false},
		{"reg4", 0b1_011_0000, 0, false},
		{"reg12", 0b1_100_0000, 1, false},
		{"arg-reg4", 0b1_101_0000, 0, false},
		{"sentinel", 0b1_110_0000, 0, false},
		{"undefined", 0b1_111_0000, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := varIntExtra(c.t)
			if c.wantErr {
				if err == nil {
					t.Fatalf("varIntExtra(%#08b) = %d, want error", c.t, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("varIntExtra(%#08b) unexpected error: %v", c.t, err)
			}
			if got != c.extra {
				t.Fatalf("varIntExtra(%#08b) = %d, want %d", c.t, got, c.extra)
			}
		})
	}
}
