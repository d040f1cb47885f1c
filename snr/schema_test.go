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
	"sort"
	"testing"
)

func TestSharedInstructionsStableAcrossVersions(t *testing.T) {
	higu := SchemaFor(Higurashi)
	ume := SchemaFor(Umineko)

	for _, opcode := range []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07} {
		hOp, ok := higu.Lookup(opcode)
		if !ok {
			t.Fatalf("higurashi: opcode 0x%02x not found", opcode)
		}
		uOp, ok := ume.Lookup(opcode)
		if !ok {
			t.Fatalf("umineko: opcode 0x%02x not found", opcode)
		}
		if hOp.ID != uOp.ID {
			t.Fatalf("opcode 0x%02x: higurashi=%s umineko=%s", opcode, hOp.ID, uOp.ID)
		}
	}
}

func TestWipeOnlyInHigurashi(t *testing.T) {
	higu := SchemaFor(Higurashi)
	ume := SchemaFor(Umineko)

	if _, ok := higu.Lookup(0x2B); !ok {
		t.Fatal("expected higurashi to define opcode 0x2b (WIPE)")
	}
	for opcode := byte(0x30); opcode < 0xD0; opcode++ {
		if op, ok := ume.Lookup(opcode); ok && op.ID == "WIPE" {
			t.Fatalf("umineko should not define WIPE, found at 0x%02x", opcode)
		}
	}
}

func TestLegacyOpaqueCommandsPresentInBothVersions(t *testing.T) {
	for _, v := range []*EngineVersion{Higurashi, Umineko} {
		d := SchemaFor(v)
		for _, opcode := range []byte{0xD1, 0xD4} {
			op, ok := d.Lookup(opcode)
			if !ok {
				t.Fatalf("%s: opcode 0x%02x not found", v.Name, opcode)
			}
			schema := d.Schema(op)
			if len(schema) != 2 {
				t.Fatalf("%s: opcode 0x%02x schema has %d elements, want 2", v.Name, opcode, len(schema))
			}
		}
	}
}

func TestSchemaForIsCached(t *testing.T) {
	a := SchemaFor(Higurashi)
	b := SchemaFor(Higurashi)
	if a != b {
		t.Fatal("expected SchemaFor to return the same cached Dispatch")
	}
}

func TestOperationIDsSortedAndComplete(t *testing.T) {
	d := SchemaFor(Higurashi)
	ids := d.OperationIDs()
	if !sort.StringsAreSorted(ids) {
		t.Fatalf("OperationIDs not sorted: %v", ids)
	}
	want := map[string]bool{"EXIT": true, "MSGSET": true, "WIPE": true, "LEGACY_D1": true}
	got := map[string]bool{}
	for _, id := range ids {
		got[id] = true
	}
	for id := range want {
		if !got[id] {
			t.Fatalf("OperationIDs missing %s: %v", id, ids)
		}
	}
}

func TestStringStylePanicsOnUndefinedKind(t *testing.T) {
	v := &EngineVersion{Name: "incomplete", strings: map[StringKind]StringStyle{}}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for undefined string kind")
		}
	}()
	v.StringStyle(StringMsgset)
}
