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

// dirFlag marks a RawEntry as a directory rather than a file; it is
// packed into the high bit of the name_offset field.
const dirFlag = uint32(1) << 31

// RawEntry is the fixed 12-byte on-disk record for one directory
// child: a packed name offset/directory flag, a data offset, and a
// data size. Both offset fields are pre-multiplication: callers apply
// Version.DirAlignment or Version.FileOffsetMultiplier themselves,
// since RawEntry only knows the bit layout, never the scaling policy.
type RawEntry struct {
	NameOffset uint32
	IsDir      bool
	DataOffset uint32
	DataSize   uint32
}

// entrySize is the fixed on-disk size of one RawEntry.
const entrySize = 12

func decodeRawEntry(b []byte) RawEntry {
	_ = b[11] // bounds check hint, matches the teacher's style of forcing one panic over twelve
	nameField := u32le(b[0:4])
	return RawEntry{
		NameOffset: nameField &^ dirFlag,
		IsDir:      nameField&dirFlag != 0,
		DataOffset: u32le(b[4:8]),
		DataSize:   u32le(b[8:12]),
	}
}

func (e RawEntry) encode(b []byte) {
	_ = b[11]
	nameField := e.NameOffset
	if e.IsDir {
		nameField |= dirFlag
	}
	putU32le(b[0:4], nameField)
	putU32le(b[4:8], e.DataOffset)
	putU32le(b[8:12], e.DataSize)
}

func u32le(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putU32le(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
