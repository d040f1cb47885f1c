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

package rom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRawEntryRoundtripFile(t *testing.T) {
	want := RawEntry{NameOffset: 0x1234, IsDir: false, DataOffset: 0x10, DataSize: 0x5678}
	buf := make([]byte, entrySize)
	want.encode(buf)
	got := decodeRawEntry(buf)
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", d)
	}
}

func TestRawEntryRoundtripDir(t *testing.T) {
	want := RawEntry{NameOffset: 0x2000, IsDir: true, DataOffset: 1, DataSize: 3}
	buf := make([]byte, entrySize)
	want.encode(buf)
	got := decodeRawEntry(buf)
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", d)
	}
}

func TestRawEntryDirFlagDoesNotLeakIntoNameOffset(t *testing.T) {
	e := RawEntry{NameOffset: 0x7FFFFFFF, IsDir: true}
	buf := make([]byte, entrySize)
	e.encode(buf)
	got := decodeRawEntry(buf)
	if got.NameOffset != 0x7FFFFFFF {
		t.Fatalf("NameOffset = 0x%x, want 0x7fffffff", got.NameOffset)
	}
	if !got.IsDir {
		t.Fatal("expected IsDir to survive the roundtrip")
	}
}

func TestU32LERoundtrip(t *testing.T) {
	buf := make([]byte, 4)
	putU32le(buf, 0xDEADBEEF)
	if got := u32le(buf); got != 0xDEADBEEF {
		t.Fatalf("got 0x%x, want 0xdeadbeef", got)
	}
}
