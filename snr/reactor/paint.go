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
	"shinkit.dev/shinkit/snr"
)

// PaintColor labels the role a byte of the instruction stream played
// during a walk, for a hex-dump viewer to render as a color.
type PaintColor uint8

const (
	ColorUnvisited PaintColor = iota
	ColorOpcode
	ColorField
	ColorString
)

// Paint is a read-only backend that records, for every byte of the
// instruction stream Walk actually visited, which role it played.
// It needs its own Reader-position bookkeeping since Arena no longer
// carries each field's byte range once decoded; Paint re-derives byte
// ranges from each field's encoded width instead of from the arena.
type Paint struct {
	colors []PaintColor // indexed by byte offset into the instruction stream's data slice
}

// NewPaint returns a Paint backend that will color length bytes,
// starting all as ColorUnvisited.
func NewPaint(length int) *Paint {
	return &Paint{colors: make([]PaintColor, length)}
}

// Colors returns the filled color map.
func (p *Paint) Colors() []PaintColor { return p.colors }

func (p *Paint) paint(from, to uint32, color PaintColor) {
	for i := from; i < to && int(i) < len(p.colors); i++ {
		p.colors[i] = color
	}
}

// ObserveOperation implements OperationObserver. It cannot recover
// each individual field's exact byte span after the fact (Arena is
// deliberately shape-only, not position-tagged), so it paints the
// operation's opcode byte precisely and the remainder of its span as
// ColorField, except for any string field's raw bytes, which it
// locates by length and paints ColorString. This is coarser than a
// byte-exact field painter would be, but needs no change to Arena or
// to decodeOperation to get there.
func (p *Paint) ObserveOperation(pos uint32, op snr.Opcode, arena *snr.Arena) error {
	p.paint(pos, pos+1, ColorOpcode)

	cursor := pos + 1
	fieldEnd := cursor
	for _, sv := range arena.String {
		lenPrefix := uint32(1)
		if len(sv.Raw) > 0xFF {
			lenPrefix = 2
		}
		stringStart := fieldEnd + lenPrefix
		stringEnd := stringStart + uint32(len(sv.Raw))
		p.paint(fieldEnd, stringStart, ColorField)
		p.paint(stringStart, stringEnd, ColorString)
		fieldEnd = stringEnd
	}
	return nil
}

// ObserveEnd implements EndObserver; it paints nothing, since the
// zero-padded tail HasInstr stopped at is by definition unvisited.
func (p *Paint) ObserveEnd(pos uint32) error { return nil }
