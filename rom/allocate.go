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
	"fmt"

	"shinkit.dev/shinkit/snr/sjis"
)

// dirBlock is one directory's fully-laid-out on-disk block: a 4-byte
// entry count, the RawEntry array for "." (itself), ".." (its
// parent) and its real children, then all of their names, back to
// back. A RawEntry's NameOffset is relative to the start of the
// block itself (the 4-byte count prefix), not to the name region.
//
// entries[0] and names[0] are always ".", entries[1]/names[1] are
// always "..". The real children start at index 2 and correspond
// 1:1, in order, with node.Children.
type dirBlock struct {
	node       *InputNode
	offset     uint32 // byte offset from the start of the index
	entryBytes uint32 // size of the RawEntry array (children+2), = entrySize * (len(children)+2)
	nameBytes  uint32 // size of the name region that follows it
	entries    []RawEntry
	names      [][]byte // one name per entry, in the same order as entries
}

// countPrefixSize is the 4-byte entry count that opens every directory
// block, ahead of its RawEntry array.
const countPrefixSize = 4

func (b *dirBlock) size() uint32 { return countPrefixSize + b.entryBytes + b.nameBytes }

// fileAlloc is one file's placement in the data region.
type fileAlloc struct {
	node   *InputNode
	offset uint32 // absolute byte offset from the start of the archive
	size   uint32
}

// Layout is the fully-resolved placement of every directory and file
// in an InputTree, ready for Pack to emit. Allocate builds it in two
// passes: first every directory's position and size within the index
// (pass 1), using a CountingWriter-style running offset exactly like
// the SNR rewrite backend's own two-pass approach, then every file's
// position within the data region that follows the index (pass 2).
type Layout struct {
	Version    *Version
	Root       *InputNode
	IndexSize  uint32
	dirByNode  map[*InputNode]*dirBlock
	fileByNode map[*InputNode]*fileAlloc
	parentOf   map[*InputNode]*InputNode // nil for root, whose "." and ".." both point at itself
	dirOrder   []*dirBlock
	fileOrder  []*fileAlloc
}

// Allocate computes the full Layout for root under v.
func Allocate(v *Version, root *InputNode) (*Layout, error) {
	if !root.IsDir() {
		return nil, fmt.Errorf("shinkit/rom: archive root must be a directory")
	}

	l := &Layout{
		Version:    v,
		Root:       root,
		dirByNode:  make(map[*InputNode]*dirBlock),
		fileByNode: make(map[*InputNode]*fileAlloc),
		parentOf:   make(map[*InputNode]*InputNode),
	}

	// Pass 1: directory blocks, in a pre-order walk so a parent is
	// always allocated (and so its byte offset is known) before its
	// own entry is written into its parent's RawEntry array. Every
	// block starts on a Version.DirAlignment boundary.
	var indexCursor uint32
	var walkDirs func(n, parent *InputNode) error
	walkDirs = func(n, parent *InputNode) error {
		indexCursor = alignUp(indexCursor, v.DirAlignment)
		block, err := l.layOutDir(n, indexCursor)
		if err != nil {
			return err
		}
		indexCursor += block.size()
		l.dirByNode[n] = block
		l.parentOf[n] = parent
		l.dirOrder = append(l.dirOrder, block)
		for _, child := range n.Children {
			if child.IsDir() {
				if err := walkDirs(child, n); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walkDirs(root, nil); err != nil {
		return nil, err
	}
	l.IndexSize = indexCursor

	// Pass 2: file data, placed after the index and aligned to
	// Version.FileOffsetMultiplier, in the same pre-order traversal so
	// output is deterministic and siblings stay adjacent.
	fileRegionStart := uint32(v.HeaderSize) + l.IndexSize
	cursor := alignUp(fileRegionStart, v.FileOffsetMultiplier)
	var walkFiles func(n *InputNode) error
	walkFiles = func(n *InputNode) error {
		for _, child := range n.Children {
			if child.IsDir() {
				if err := walkFiles(child); err != nil {
					return err
				}
				continue
			}
			fa := &fileAlloc{node: child, offset: cursor, size: uint32(len(child.Data))}
			l.fileByNode[child] = fa
			l.fileOrder = append(l.fileOrder, fa)
			cursor = alignUp(cursor+fa.size, v.FileOffsetMultiplier)
		}
		return nil
	}
	if err := walkFiles(root); err != nil {
		return nil, err
	}

	if err := l.resolveEntries(); err != nil {
		return nil, err
	}
	return l, nil
}

// layOutDir sizes n's own RawEntry array and name region - "." and
// ".." always occupy entries 0 and 1 - without yet knowing the
// DataOffset of any directory (those are filled in later by
// resolveEntries, once every directory in the tree has been visited,
// since "." needs n's own final offset and ".." needs its parent's).
func (l *Layout) layOutDir(n *InputNode, offset uint32) (*dirBlock, error) {
	block := &dirBlock{
		node:       n,
		offset:     offset,
		entryBytes: uint32(len(n.Children)+2) * entrySize,
	}
	for _, name := range []string{".", ".."} {
		encoded, err := encodeName(l.Version, name)
		if err != nil {
			return nil, fmt.Errorf("shinkit/rom: encoding name %q: %w", name, err)
		}
		block.names = append(block.names, encoded)
		block.nameBytes += uint32(len(encoded)) + 1
	}
	for _, child := range n.Children {
		name, err := encodeName(l.Version, child.Name)
		if err != nil {
			return nil, fmt.Errorf("shinkit/rom: encoding name %q: %w", child.Name, err)
		}
		block.names = append(block.names, name)
		block.nameBytes += uint32(len(name)) + 1 // +1 for the zero terminator
	}
	block.entries = make([]RawEntry, len(n.Children)+2)
	return block, nil
}

// resolveEntries fills in every RawEntry's NameOffset and DataOffset
// now that every directory and file has a final position.
func (l *Layout) resolveEntries() error {
	for _, block := range l.dirOrder {
		parentBlock := block
		if parent := l.parentOf[block.node]; parent != nil {
			parentBlock = l.dirByNode[parent]
		}

		nameCursor := countPrefixSize + block.entryBytes // relative to the start of this block
		block.entries[0] = RawEntry{
			NameOffset: nameCursor,
			IsDir:      true,
			DataOffset: l.directoryDataOffset(block) / l.Version.DirAlignment,
			DataSize:   block.size(),
		}
		nameCursor += uint32(len(block.names[0])) + 1

		block.entries[1] = RawEntry{
			NameOffset: nameCursor,
			IsDir:      true,
			DataOffset: l.directoryDataOffset(parentBlock) / l.Version.DirAlignment,
			DataSize:   parentBlock.size(),
		}
		nameCursor += uint32(len(block.names[1])) + 1

		for i, child := range block.node.Children {
			entry := RawEntry{NameOffset: nameCursor}
			nameCursor += uint32(len(block.names[i+2])) + 1

			if child.IsDir() {
				childBlock := l.dirByNode[child]
				entry.IsDir = true
				entry.DataOffset = l.directoryDataOffset(childBlock) / l.Version.DirAlignment
				entry.DataSize = childBlock.size()
			} else {
				fa := l.fileByNode[child]
				entry.DataOffset = fa.offset / l.Version.FileOffsetMultiplier
				entry.DataSize = fa.size
			}
			block.entries[i+2] = entry
		}
	}
	return nil
}

// directoryDataOffset applies Version.DirOffsetsRelativeToIndex to a
// directory block's stored index-relative offset.
func (l *Layout) directoryDataOffset(block *dirBlock) uint32 {
	if l.Version.DirOffsetsRelativeToIndex {
		return block.offset
	}
	return uint32(l.Version.HeaderSize) + block.offset
}

func encodeName(v *Version, name string) ([]byte, error) {
	if v.ShiftJISNames {
		return sjis.Encode(name)
	}
	return []byte(name), nil
}

func alignUp(v, multiple uint32) uint32 {
	if multiple == 0 {
		return v
	}
	if rem := v % multiple; rem != 0 {
		v += multiple - rem
	}
	return v
}
