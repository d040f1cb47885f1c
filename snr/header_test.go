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
	"testing"
)

func buildHeaderBytes(t *testing.T, instrStream []byte) []byte {
	t.Helper()
	h := &Header{
		TotalSize:   uint32(headerSize + len(instrStream)),
		InstrOffset: uint32(headerSize),
		Opaque:      make([]byte, instrOffsetPos-8),
	}
	w := NewBufWriter()
	if err := h.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Put(instrStream)
	return w.Bytes()
}

func TestParseHeaderRoundtrip(t *testing.T) {
	instr := []byte{0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	data := buildHeaderBytes(t, instr)

	h, r, err := ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	if h.TotalSize != uint32(len(data)) {
		t.Fatalf("TotalSize = %d, want %d", h.TotalSize, len(data))
	}
	if h.InstrOffset != uint32(headerSize) {
		t.Fatalf("InstrOffset = %d, want %d", h.InstrOffset, headerSize)
	}
	if r.Position() != h.InstrOffset {
		t.Fatalf("reader positioned at %d, want %d", r.Position(), h.InstrOffset)
	}
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	data := buildHeaderBytes(t, nil)
	data[0] = 'X'
	if _, _, err := ParseHeader(data); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestParseHeaderRejectsMismatchedTotalSize(t *testing.T) {
	data := buildHeaderBytes(t, nil)
	data = append(data, 0, 0, 0, 0) // grow the file without updating TotalSize
	if _, _, err := ParseHeader(data); err == nil {
		t.Fatal("expected error for mismatched total size")
	}
}

func TestHeaderWriteRejectsWrongOpaqueLength(t *testing.T) {
	h := &Header{TotalSize: headerSize, InstrOffset: headerSize, Opaque: []byte{1, 2, 3}}
	if err := h.Write(NewBufWriter()); err == nil {
		t.Fatal("expected error for wrong opaque length")
	}
}

func TestHeaderWritePreservesOpaqueBytes(t *testing.T) {
	opaque := bytes.Repeat([]byte{0xAB}, instrOffsetPos-8)
	h := &Header{TotalSize: headerSize, InstrOffset: headerSize, Opaque: opaque}
	w := NewBufWriter()
	if err := h.Write(w); err != nil {
		t.Fatal(err)
	}

	parsed, _, err := ParseHeader(w.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(parsed.Opaque, opaque) {
		t.Fatalf("got opaque % x, want % x", parsed.Opaque, opaque)
	}
}
