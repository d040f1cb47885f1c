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

// Reader is a position-tracking cursor over an in-memory bytecode
// buffer. Unlike font/parser.Parser in the font stack, Reader never
// has to stream from an underlying io.Reader: SNR files are always
// read into memory whole before a pass begins (see the reactor
// subpackage), so a plain slice-and-offset cursor suffices.
type Reader struct {
	data []byte
	pos  uint32
}

// NewReader returns a Reader over data, positioned at pos.
func NewReader(data []byte, pos uint32) *Reader {
	return &Reader{data: data, pos: pos}
}

// Position returns the current byte offset.
func (r *Reader) Position() uint32 { return r.pos }

// Size returns the total length of the underlying buffer.
func (r *Reader) Size() int { return len(r.data) }

// Rewind returns a new Reader over the same buffer, positioned at pos.
func (r *Reader) Rewind(pos uint32) *Reader {
	return &Reader{data: r.data, pos: pos}
}

func (r *Reader) take(n int) ([]byte, error) {
	if int(r.pos)+n > len(r.data) {
		return nil, fmt.Errorf("shinkit: unexpected end of input at offset %d, wanted %d bytes, have %d", r.pos, n, len(r.data)-int(r.pos))
	}
	res := r.data[r.pos : int(r.pos)+n]
	r.pos += uint32(n)
	return res, nil
}

// TakeU8 reads a single byte.
func (r *Reader) TakeU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// TakeU16LE reads a little-endian u16.
func (r *Reader) TakeU16LE() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// TakeU32LE reads a little-endian u32.
func (r *Reader) TakeU32LE() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// TakeLength reads a 1- or 2-byte length prefix per kind.
func (r *Reader) TakeLength(kind LengthKind) (uint16, error) {
	switch kind {
	case LengthU8:
		v, err := r.TakeU8()
		return uint16(v), err
	case LengthU16:
		return r.TakeU16LE()
	default:
		return 0, fmt.Errorf("shinkit: unknown length kind %d", kind)
	}
}

// TakeRegister reads a register reference (always a u16 index).
func (r *Reader) TakeRegister() (uint16, error) {
	return r.TakeU16LE()
}

// TakeOffset reads a jump/call target (always a u32 absolute byte
// offset from the start of the file).
func (r *Reader) TakeOffset() (uint32, error) {
	return r.TakeU32LE()
}

// TakeNumber reads a NumberSpec under style. The returned value is
// the *compressed representation*, not a decoded integer: for VarInt
// it is the little-endian byte sequence actually on the wire
// reinterpreted as a u32, first byte included. This mirrors the
// original decoder, which never needs to know whether the bits denote
// a register or a literal in order to round-trip them; only the
// backends that care about semantics (none in this module) would
// decode further.
func (r *Reader) TakeNumber(style NumberStyle) (uint32, error) {
	switch style {
	case NumberFixed16:
		v, err := r.TakeU16LE()
		return uint32(v), err
	case NumberVarInt:
		t, err := r.TakeU8()
		if err != nil {
			return 0, err
		}
		extra, err := varIntExtra(t)
		if err != nil {
			return 0, err
		}
		packed := [4]byte{t, 0, 0, 0}
		if extra > 0 {
			rest, err := r.take(extra)
			if err != nil {
				return 0, err
			}
			copy(packed[1:], rest)
		}
		return uint32(packed[0]) | uint32(packed[1])<<8 | uint32(packed[2])<<16 | uint32(packed[3])<<24, nil
	default:
		return 0, fmt.Errorf("shinkit: unknown number style %d", style)
	}
}

// TakeString reads a length-prefixed run of bytes, per kind. The
// trailing zero terminator, if any, is included in the returned
// slice: the caller (a backend) decides whether and how to decode it.
func (r *Reader) TakeString(kind LengthKind) ([]byte, error) {
	n, err := r.TakeLength(kind)
	if err != nil {
		return nil, err
	}
	return r.take(int(n))
}

// TakeStringArray reads a length-prefixed run of zero-terminated
// strings, back to back, terminated by one more zero byte (so an
// empty array is exactly one zero byte). The whole raw blob, final
// terminator included, is returned for the caller to split.
func (r *Reader) TakeStringArray(kind LengthKind) ([]byte, error) {
	return r.TakeString(kind)
}

// HasInstr reports whether there is another instruction to read.
//
// SNR files are padded with zero bytes to a 16-byte boundary. A file
// has no more instructions once the remaining bytes are all zero
// within that trailing window; HasInstr is the only way the reactor
// detects end-of-stream, since there is no explicit instruction
// count anywhere in the format.
func (r *Reader) HasInstr() bool {
	if int(r.pos)+16 < len(r.data) {
		return true
	}
	for _, b := range r.data[r.pos:] {
		if b != 0 {
			return true
		}
	}
	return false
}
