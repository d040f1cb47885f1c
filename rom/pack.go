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

import "fmt"

// Pack lays out root under v and returns the fully packed archive
// bytes: header, the directory index (one RawEntry array plus name
// region per directory, in pre-order), and the file data region.
func Pack(v *Version, root *InputNode) ([]byte, error) {
	layout, err := Allocate(v, root)
	if err != nil {
		return nil, err
	}

	total := uint32(v.HeaderSize) + layout.IndexSize
	if len(layout.fileOrder) > 0 {
		last := layout.fileOrder[len(layout.fileOrder)-1]
		total = last.offset + last.size
	}
	buf := make([]byte, total)

	if err := writeHeader(v, layout, buf); err != nil {
		return nil, err
	}

	for _, block := range layout.dirOrder {
		pos := int(v.HeaderSize) + int(block.offset)
		putU32le(buf[pos:pos+countPrefixSize], uint32(len(block.entries)))
		entriesStart := pos + countPrefixSize
		for i, entry := range block.entries {
			entry.encode(buf[entriesStart+i*entrySize : entriesStart+(i+1)*entrySize])
		}
		nameCursor := entriesStart + int(block.entryBytes)
		for _, name := range block.names {
			copy(buf[nameCursor:], name)
			nameCursor += len(name) + 1 // the +1 leaves the zero terminator in place
		}
	}

	for _, fa := range layout.fileOrder {
		copy(buf[fa.offset:fa.offset+fa.size], fa.node.Data)
	}

	return buf, nil
}

func writeHeader(v *Version, layout *Layout, buf []byte) error {
	if len(buf) < v.HeaderSize {
		return fmt.Errorf("shinkit/rom: archive shorter than its own header")
	}
	switch v.HeaderSize {
	case 0x20:
		// Rom1 header: index_size at [0:4), then a 4-byte opaque
		// tool-signature (the original leaves this unspecified, possibly
		// a data hash; no reader interprets it).
		putU32le(buf[0:4], layout.IndexSize)
		copy(buf[4:8], []byte("Shin"))
	case 0x2C:
		// Rom2 header: index_size at [0:4), file_offset_multiplier at
		// [4:8), then a 16-byte opaque tool-signature.
		putU32le(buf[0:4], layout.IndexSize)
		putU32le(buf[4:8], v.FileOffsetMultiplier)
		copy(buf[8:24], []byte("ShinTransltTools"))
	default:
		return fmt.Errorf("shinkit/rom: unrecognized header size %d", v.HeaderSize)
	}
	return nil
}
