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

// StringValue is one decoded string field: its raw on-disk bytes (so
// a rewrite backend can measure exactly what it is replacing), its
// StringKind, and the owning StringStyle's Fixup flag. No per-string
// fix-up detection is stored here.
type StringValue struct {
	Raw   []byte
	Kind  StringKind
	Fixup bool // whether this StringKind's style requests fix-up detection at all
}

// BitmaskEntry is one decoded slot of an ElemBitmaskNumberArray: which
// bit position it came from, and the NumberSpec read for it.
type BitmaskEntry struct {
	Bit    uint8
	Number uint32
}

// Arena holds the decoded field values of a single operation, one
// slice per element-type family. It is reset, not reallocated, at
// every operation boundary a walker crosses: every slice is truncated
// to length zero but keeps its backing array, so a long pass over a
// large file does not re-allocate on every instruction. This mirrors
// the original's columnar per-operation storage, adapted from Rust's
// arena-of-Vec pattern to Go slices reset with a `[:0]` truncation.
type Arena struct {
	U8        []uint8
	U16       []uint16
	U32       []uint32
	Register  []uint16
	Offset    []uint32
	Number    []uint32
	// OptionalNumberPresent records, per ElemOptionalNumber slot in
	// encounter order, whether a NumberSpec was actually present (the
	// preceding ElemOperation byte had its high bit set). When false,
	// no corresponding entry is appended to Number.
	OptionalNumberPresent []bool
	String                []StringValue
	Length                []uint16 // lengths read for *Array elements, one per array
	Bitmask               []BitmaskEntry
	BitmaskByte           []uint8 // raw bitmask byte, one per ElemBitmaskNumberArray
}

// NewArena returns an empty Arena ready for reuse across many
// operations.
func NewArena() *Arena {
	return &Arena{}
}

// Reset truncates every slice to length zero, retaining capacity, so
// the next operation's fields can be appended without reallocating.
func (a *Arena) Reset() {
	a.U8 = a.U8[:0]
	a.U16 = a.U16[:0]
	a.U32 = a.U32[:0]
	a.Register = a.Register[:0]
	a.Offset = a.Offset[:0]
	a.Number = a.Number[:0]
	a.OptionalNumberPresent = a.OptionalNumberPresent[:0]
	a.String = a.String[:0]
	a.Length = a.Length[:0]
	a.Bitmask = a.Bitmask[:0]
	a.BitmaskByte = a.BitmaskByte[:0]
}
