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

package shinkit

import (
	"bytes"
	"testing"

	"shinkit.dev/shinkit/snr"
	"shinkit.dev/shinkit/snr/reactor"
)

// buildSNRFile assembles a whole SNR file: a header with InstrOffset
// set right after the fixed prefix, followed by instrStream.
func buildSNRFile(t *testing.T, instrStream []byte) []byte {
	t.Helper()
	const instrOffset = 0x24
	h := &snr.Header{
		TotalSize:   instrOffset + uint32(len(instrStream)),
		InstrOffset: instrOffset,
		Opaque:      make([]byte, 0x20-8), // bytes [8:0x20); InstrOffset itself sits at 0x20
	}
	w := snr.NewBufWriter()
	if err := h.Write(w); err != nil {
		t.Fatal(err)
	}
	w.Put(instrStream)
	return w.Bytes()
}

// TestRewriteSNRNullRewriterIsIdentityAcrossWholeFile exercises
// RewriteSNR against a whole file, not a bare instruction stream: a
// JUMP whose target is an absolute file offset (pointing at its own
// instruction boundary, right after InstrOffset). Offset values are
// always absolute, so the rewrite must walk and record offsets in
// absolute, not instruction-stream-relative, terms or this jump
// target will never resolve.
func TestRewriteSNRNullRewriterIsIdentityAcrossWholeFile(t *testing.T) {
	const instrOffset = 0x24
	w := snr.NewBufWriter()
	snr.PutU8(w, 0x01) // JUMP
	snr.PutOffset(w, instrOffset)
	snr.Pad16(w)
	data := buildSNRFile(t, w.Bytes())

	out, err := RewriteSNR(snr.Higurashi, data, reactor.NullRewriter{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("NullRewriter changed bytes across a whole file:\n got  % x\n want % x", out, data)
	}
}

// TestRewriteSNRRemapsAbsoluteJumpAfterLengthChange changes a MSGSET
// string's length (replacing it with a longer string) ahead of a
// JUMP that targets the instruction right after it, and checks the
// JUMP target moves to stay absolute and correct.
func TestRewriteSNRRemapsAbsoluteJumpAfterLengthChange(t *testing.T) {
	const instrOffset = 0x24

	w := snr.NewBufWriter()
	snr.PutU8(w, 0x20) // MSGSET
	snr.PutU8(w, 0x01)
	snr.PutString(w, snr.LengthU16, []byte("AIUEO"))
	jumpAt := w.Position()
	snr.PutU8(w, 0x01) // JUMP
	snr.PutOffset(w, instrOffset+jumpAt) // targets itself
	snr.Pad16(w)
	data := buildSNRFile(t, w.Bytes())

	out, err := RewriteSNR(snr.Higurashi, data, reactor.ReplaceKind{
		Kind:        snr.StringMsgset,
		Replacement: "A much longer replacement string",
	})
	if err != nil {
		t.Fatal(err)
	}

	_, r, err := snr.ParseHeader(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.TakeU8(); err != nil { // MSGSET opcode
		t.Fatal(err)
	}
	if _, err := r.TakeU8(); err != nil { // speaker id
		t.Fatal(err)
	}
	s, err := r.TakeString(snr.LengthU16)
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "A much longer replacement string\x00" {
		t.Fatalf("got message %q", s)
	}
	newJumpAt := r.Position()
	if op, err := r.TakeU8(); err != nil || op != 0x01 {
		t.Fatalf("expected JUMP opcode right after the rewritten message, got 0x%02x, err=%v", op, err)
	}
	target, err := r.TakeU32LE()
	if err != nil {
		t.Fatal(err)
	}
	if target != newJumpAt { // the reader's positions are already absolute file offsets
		t.Fatalf("jump target 0x%x does not point at its own (new) absolute position 0x%x", target, newJumpAt)
	}
}
