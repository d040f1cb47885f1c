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

import (
	"fmt"

	"golang.org/x/exp/slices"

	"shinkit.dev/shinkit/snr"
)

// Validate is a read-only backend that collects every instruction
// boundary Walk actually landed on (its "starts") and every offset an
// Offset or OffsetArray element pointed to (its "referred" set), so a
// caller can ask for the difference: jump targets that point outside
// the instruction stream Walk could reach.
type Validate struct {
	starts   map[uint32]bool
	referred map[uint32]bool
}

// NewValidate returns an empty Validate backend.
func NewValidate() *Validate {
	return &Validate{starts: make(map[uint32]bool), referred: make(map[uint32]bool)}
}

// ObserveOperation implements OperationObserver.
func (v *Validate) ObserveOperation(pos uint32, op snr.Opcode, arena *snr.Arena) error {
	v.starts[pos] = true
	for _, off := range arena.Offset {
		v.referred[off] = true
	}
	return nil
}

// Dangling returns every referred offset that never landed on an
// instruction boundary, sorted ascending.
func (v *Validate) Dangling() []uint32 {
	var out []uint32
	for off := range v.referred {
		if !v.starts[off] {
			out = append(out, off)
		}
	}
	slices.Sort(out)
	return out
}

// Check returns an error describing every dangling offset, or nil if
// there are none.
func (v *Validate) Check() error {
	dangling := v.Dangling()
	if len(dangling) == 0 {
		return nil
	}
	return fmt.Errorf("shinkit/reactor: %d offset(s) referred to but never reached: %v", len(dangling), dangling)
}
