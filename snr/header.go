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

import (
	"bytes"
	"fmt"
)

// magic is the fixed 4-byte tag every SNR file opens with.
var magic = []byte("SNR ")

// headerSize is the length of the fixed-layout prefix preceding the
// instruction stream. Everything between byte 8 and instrOffsetPos is
// opaque to this package (per-title metadata this toolchain never
// needs to interpret) and is carried through rewrite unmodified.
const (
	instrOffsetPos = 0x20
	headerSize     = 0x24
)

// Header is the fixed-layout prefix of an SNR file: enough to locate
// the instruction stream and reproduce the file's total size, plus
// the raw opaque bytes between the fixed fields and InstrOffset.
type Header struct {
	TotalSize   uint32
	InstrOffset uint32
	Opaque      []byte // bytes [8:InstrOffset), reproduced verbatim on rewrite
}

// ParseHeader reads data's fixed header and returns it alongside a
// Reader positioned at the start of the instruction stream.
func ParseHeader(data []byte) (*Header, *Reader, error) {
	if len(data) < headerSize {
		return nil, nil, fmt.Errorf("shinkit: file too short to hold an SNR header (%d bytes)", len(data))
	}
	if !bytes.Equal(data[0:4], magic) {
		return nil, nil, fmt.Errorf("shinkit: bad SNR magic %q", data[0:4])
	}

	r := NewReader(data, 4)
	totalSize, err := r.TakeU32LE()
	if err != nil {
		return nil, nil, fmt.Errorf("shinkit: reading total size: %w", err)
	}
	if int(totalSize) != len(data) {
		return nil, nil, fmt.Errorf("shinkit: header claims %d bytes, file has %d", totalSize, len(data))
	}

	instrReader := NewReader(data, instrOffsetPos)
	instrOffset, err := instrReader.TakeU32LE()
	if err != nil {
		return nil, nil, fmt.Errorf("shinkit: reading instruction stream offset: %w", err)
	}
	if int(instrOffset) < headerSize || int(instrOffset) > len(data) {
		return nil, nil, fmt.Errorf("shinkit: instruction stream offset %d out of range", instrOffset)
	}

	h := &Header{
		TotalSize:   totalSize,
		InstrOffset: instrOffset,
		Opaque:      append([]byte(nil), data[8:instrOffsetPos]...),
	}
	return h, NewReader(data, instrOffset), nil
}

// Write emits h's fixed fields and opaque prefix, padded with zero
// bytes up to h.InstrOffset. It does not emit the instruction stream
// itself; callers append that separately (see reactor.Rewrite).
func (h *Header) Write(w Writer) error {
	w.Put(magic)
	PutU32LE(w, h.TotalSize)
	if len(h.Opaque) != instrOffsetPos-8 {
		return fmt.Errorf("shinkit: header opaque region is %d bytes, want %d", len(h.Opaque), instrOffsetPos-8)
	}
	w.Put(h.Opaque)
	PutU32LE(w, h.InstrOffset)
	for w.Position() < h.InstrOffset {
		PutU8(w, 0)
	}
	return nil
}
