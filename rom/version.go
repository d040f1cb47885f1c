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

// Package rom implements the shin-engine ROM archive format: a
// directory-tree archive packed with a two-pass allocator, read back
// by a lazy zero-copy extractor.
package rom

import (
	"fmt"

	"shinkit.dev/shinkit/snr"
)

// Version selects the on-disk layout of a ROM archive: its header
// shape, its directory/file alignment multipliers, its directory
// offset disposition, and its filename text encoding. The names match
// snr.RomVariant exactly, since each engine version that ships a ROM
// names the variant it expects.
type Version struct {
	Name string

	// HeaderSize is the size, in bytes, of the fixed-layout archive
	// header preceding the directory tree.
	HeaderSize int
	// FileOffsetMultiplier scales a RawEntry's data offset field into
	// a byte offset; V1 hardcodes this, V2 stores it in the header.
	FileOffsetMultiplier uint32
	// DirAlignment is the alignment, in bytes, of directory record
	// blocks within the index.
	DirAlignment uint32
	// DirOffsetsRelativeToIndex selects whether a directory entry's
	// data_offset is relative to the start of the index (V2) or to the
	// start of the whole archive (V1).
	DirOffsetsRelativeToIndex bool
	// ShiftJISNames selects whether filenames are Shift-JIS (true) or
	// UTF-8 (false) encoded.
	ShiftJISNames bool
}

var (
	// Rom1V2_1 is the original ROM1 archive layout: an absolute
	// directory offset disposition, file data aligned to 0x800 bytes,
	// and Shift-JIS filenames.
	Rom1V2_1 = &Version{
		Name:                      string(snr.RomVariantRom1V2_1),
		HeaderSize:                0x20,
		FileOffsetMultiplier:      0x800,
		DirAlignment:              16,
		DirOffsetsRelativeToIndex: false,
		ShiftJISNames:             true,
	}
	// Rom2V0_1 is the ROM2 layout used by umineko-era titles: an
	// index-relative directory offset disposition, file data aligned
	// to 0x800 bytes (the multiplier is carried in the header rather
	// than hardcoded), and UTF-8 filenames.
	Rom2V0_1 = &Version{
		Name:                      string(snr.RomVariantRom2V0_1),
		HeaderSize:                0x2C,
		FileOffsetMultiplier:      0x800,
		DirAlignment:              16,
		DirOffsetsRelativeToIndex: true,
		ShiftJISNames:             false,
	}
	// Rom2V1_1 is a later ROM2 revision that tightens file data
	// alignment to 0x200 bytes.
	Rom2V1_1 = &Version{
		Name:                      string(snr.RomVariantRom2V1_1),
		HeaderSize:                0x2C,
		FileOffsetMultiplier:      0x200,
		DirAlignment:              16,
		DirOffsetsRelativeToIndex: true,
		ShiftJISNames:             false,
	}
)

var versions = map[string]*Version{
	Rom1V2_1.Name: Rom1V2_1,
	Rom2V0_1.Name: Rom2V0_1,
	Rom2V1_1.Name: Rom2V1_1,
}

// Lookup resolves a Version by its snr.RomVariant name.
func Lookup(variant snr.RomVariant) (*Version, error) {
	v, ok := versions[string(variant)]
	if !ok {
		return nil, fmt.Errorf("shinkit/rom: unknown ROM variant %q", variant)
	}
	return v, nil
}
