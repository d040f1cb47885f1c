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
	"bytes"
	"fmt"

	"shinkit.dev/shinkit/snr/sjis"
)

// Archive is a parsed ROM archive header, kept alongside the raw
// bytes it was parsed from. Opening an archive never copies any file
// data out of data; every Entry handed out by Walk or Entry.Entries
// views directly into it, so extracting a single file from a large
// archive costs no more than locating it.
type Archive struct {
	version   *Version
	data      []byte
	indexSize uint32
}

// Open parses data's header under v and returns the Archive, without
// reading any directory records yet.
func Open(v *Version, data []byte) (*Archive, error) {
	if len(data) < v.HeaderSize {
		return nil, fmt.Errorf("shinkit/rom: archive shorter than its own header")
	}
	indexSize := u32le(data[0:4])
	if v.HeaderSize == 0x2C {
		multiplier := u32le(data[4:8])
		if multiplier != 0 && multiplier != v.FileOffsetMultiplier {
			return nil, fmt.Errorf("shinkit/rom: archive's file offset multiplier %d does not match version %s (%d)",
				multiplier, v.Name, v.FileOffsetMultiplier)
		}
	}
	if uint32(v.HeaderSize)+indexSize > uint32(len(data)) {
		return nil, fmt.Errorf("shinkit/rom: archive index_size %d overruns file of %d bytes", indexSize, len(data))
	}
	return &Archive{version: v, data: data, indexSize: indexSize}, nil
}

// Entry is one directory child, as read back from a RawEntry: either
// a directory (Open a subdirectory's Entries) or a file (Data holds
// its bytes, a view directly into the archive). The synthetic "."
// and ".." records every directory block carries are never surfaced
// as entries.
type Entry struct {
	Name  string
	IsDir bool

	archive     *Archive
	dirIndexOff uint32 // valid when IsDir
	data        []byte // valid when !IsDir
}

// Data returns a file entry's bytes. It panics if called on a
// directory entry, which has none.
func (e Entry) Data() []byte {
	if e.IsDir {
		panic("shinkit/rom: Data called on a directory entry")
	}
	return e.data
}

// Entries returns e's own children. It panics if called on a file
// entry.
func (e Entry) Entries() ([]Entry, error) {
	if !e.IsDir {
		panic("shinkit/rom: Entries called on a file entry")
	}
	blockStart := uint32(e.archive.version.HeaderSize) + e.dirIndexOff
	return e.archive.entriesAtBlock(blockStart)
}

// Root returns the archive's top-level directory entries. The root's
// directory block, like every other, opens with its own 4-byte entry
// count, so no special-casing is needed to find it.
func (a *Archive) Root() ([]Entry, error) {
	blockStart := uint32(a.version.HeaderSize)
	if blockStart > uint32(len(a.data)) {
		return nil, fmt.Errorf("shinkit/rom: archive shorter than its own header")
	}
	return a.entriesAtBlock(blockStart)
}

// entriesAtBlock reads one directory block starting at blockStart: a
// 4-byte entry count, that many 12-byte RawEntry records (the first
// two always "." and ".."), then the name region. A RawEntry's
// NameOffset is relative to blockStart itself, not to the name
// region, so it already accounts for the count prefix and the entry
// array ahead of it.
func (a *Archive) entriesAtBlock(blockStart uint32) ([]Entry, error) {
	v := a.version
	if blockStart+countPrefixSize > uint32(len(a.data)) {
		return nil, fmt.Errorf("shinkit/rom: directory block at %d overruns archive", blockStart)
	}
	count := u32le(a.data[blockStart : blockStart+countPrefixSize])
	entriesStart := blockStart + countPrefixSize

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		off := entriesStart + i*entrySize
		if off+entrySize > uint32(len(a.data)) {
			return nil, fmt.Errorf("shinkit/rom: directory entry %d overruns archive", i)
		}
		raw := decodeRawEntry(a.data[off : off+entrySize])

		nameStart := blockStart + raw.NameOffset
		if nameStart > uint32(len(a.data)) {
			return nil, fmt.Errorf("shinkit/rom: name offset %d overruns archive", nameStart)
		}
		nameEnd := bytes.IndexByte(a.data[nameStart:], 0)
		if nameEnd < 0 {
			return nil, fmt.Errorf("shinkit/rom: unterminated name at offset %d", nameStart)
		}
		rawName := a.data[nameStart : nameStart+uint32(nameEnd)]
		if string(rawName) == "." || string(rawName) == ".." {
			continue
		}
		name, err := decodeName(v, rawName)
		if err != nil {
			return nil, fmt.Errorf("shinkit/rom: decoding name at offset %d: %w", nameStart, err)
		}

		e := Entry{Name: name, IsDir: raw.IsDir, archive: a}
		if raw.IsDir {
			abs := raw.DataOffset * v.DirAlignment
			if v.DirOffsetsRelativeToIndex {
				e.dirIndexOff = abs
			} else {
				e.dirIndexOff = abs - uint32(v.HeaderSize)
			}
		} else {
			fileOff := raw.DataOffset * v.FileOffsetMultiplier
			if fileOff+raw.DataSize > uint32(len(a.data)) {
				return nil, fmt.Errorf("shinkit/rom: file %q overruns archive", name)
			}
			e.data = a.data[fileOff : fileOff+raw.DataSize]
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeName(v *Version, b []byte) (string, error) {
	if v.ShiftJISNames {
		return sjis.Decode(b, false)
	}
	return string(b), nil
}

// Walk visits every entry in the archive in pre-order, calling fn
// with the slash-joined path from the root and the Entry itself.
func Walk(a *Archive, fn func(path string, e Entry) error) error {
	root, err := a.Root()
	if err != nil {
		return err
	}
	return walkEntries(root, "", fn)
}

func walkEntries(entries []Entry, prefix string, fn func(path string, e Entry) error) error {
	for _, e := range entries {
		path := e.Name
		if prefix != "" {
			path = prefix + "/" + e.Name
		}
		if err := fn(path, e); err != nil {
			return err
		}
		if e.IsDir {
			children, err := e.Entries()
			if err != nil {
				return err
			}
			if err := walkEntries(children, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
