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

package reactor

// OffsetMapBuilder accumulates old_offset -> new_offset correspondences
// during pass 1 of the rewrite backend, one entry per instruction
// boundary crossed (since an Offset element's referent is always the
// start of some instruction, never a byte in its middle).
type OffsetMapBuilder struct {
	m map[uint32]uint32
}

// NewOffsetMapBuilder returns an empty OffsetMapBuilder.
func NewOffsetMapBuilder() *OffsetMapBuilder {
	return &OffsetMapBuilder{m: make(map[uint32]uint32)}
}

// Record notes that the instruction starting at oldOffset in the
// input will start at newOffset in the rewritten output.
func (b *OffsetMapBuilder) Record(oldOffset, newOffset uint32) {
	b.m[oldOffset] = newOffset
}

// Build freezes the accumulated correspondences into an OffsetMap.
func (b *OffsetMapBuilder) Build() *OffsetMap {
	return &OffsetMap{m: b.m}
}

// OffsetMap resolves an old instruction-stream offset to its position
// in the rewritten output, built during pass 1 and consulted by every
// Offset/OffsetArray element written during pass 2.
type OffsetMap struct {
	m map[uint32]uint32
}

// Resolve looks up oldOffset. A miss means pass 1 never started an
// instruction at that offset: the jump target points into the middle
// of an instruction or outside the range of instructions HasInstr
// actually walked - a malformed or truncated input, not a programmer
// error, so this returns ok=false rather than panicking.
func (m *OffsetMap) Resolve(oldOffset uint32) (uint32, bool) {
	v, ok := m.m[oldOffset]
	return v, ok
}

// Starts returns every old_offset recorded as an instruction boundary,
// i.e. every key Resolve can successfully answer. (The Validate
// backend keeps its own set of instruction starts and does not use
// this.)
func (m *OffsetMap) Starts() map[uint32]bool {
	starts := make(map[uint32]bool, len(m.m))
	for k := range m.m {
		starts[k] = true
	}
	return starts
}
