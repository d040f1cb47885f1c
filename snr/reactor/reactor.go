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

// Package reactor walks an SNR instruction stream one operation at a
// time against a versioned schema and reports each decoded operation
// to a Backend. Trace, validate and paint are read-only backends
// driven by Walk; rewrite is not, since emitting a new instruction
// stream needs two full passes rather than one observational pass,
// and drives its own decode/encode loop directly (see rewrite.go).
package reactor

import (
	"fmt"

	"shinkit.dev/shinkit/snr"
)

// Context carries the parameters a walk needs beyond the raw bytes:
// which engine version to decode under, and its built Dispatch.
type Context struct {
	Version  *snr.EngineVersion
	Dispatch *snr.Dispatch
}

// NewContext builds a Context for version, building (or reusing the
// cached) Dispatch for it.
func NewContext(version *snr.EngineVersion) *Context {
	return &Context{Version: version, Dispatch: snr.SchemaFor(version)}
}

// Backend is the marker type every walk target implements; Go has no
// trait objects with optional default methods, so rather than one
// interface with every hook a backend might want, Walk accepts this
// empty marker and type-asserts each capability interface below in
// turn. A backend implements only the ones it needs.
type Backend interface{}

// OperationObserver is implemented by backends that inspect every
// decoded operation (its position, its Opcode, and the Arena of
// fields Walk just filled for it).
type OperationObserver interface {
	ObserveOperation(pos uint32, op snr.Opcode, arena *snr.Arena) error
}

// EndObserver is implemented by backends that want one final call
// once Walk reaches end of stream.
type EndObserver interface {
	ObserveEnd(pos uint32) error
}

// Walk decodes every operation in data's instruction stream, starting
// at startPos, against ctx's schema, reusing a single Arena across
// operations and reporting each to whichever capability interfaces
// backend implements.
func Walk(ctx *Context, data []byte, startPos uint32, backend Backend) error {
	r := snr.NewReader(data, startPos)
	arena := snr.NewArena()

	opObserver, wantsOps := backend.(OperationObserver)

	for r.HasInstr() {
		pos := r.Position()
		opByte, err := r.TakeU8()
		if err != nil {
			return fmt.Errorf("shinkit/reactor: reading opcode at offset %d: %w", pos, err)
		}
		op, ok := ctx.Dispatch.Lookup(opByte)
		if !ok {
			return fmt.Errorf("shinkit/reactor: unknown opcode 0x%02x at offset %d", opByte, pos)
		}
		schema := ctx.Dispatch.Schema(op)

		arena.Reset()
		if err := decodeOperation(r, ctx.Version, schema, arena); err != nil {
			return fmt.Errorf("shinkit/reactor: decoding %s at offset %d: %w", op, pos, err)
		}

		if wantsOps {
			if err := opObserver.ObserveOperation(pos, op, arena); err != nil {
				return err
			}
		}
	}

	if endObserver, ok := backend.(EndObserver); ok {
		if err := endObserver.ObserveEnd(r.Position()); err != nil {
			return err
		}
	}
	return nil
}
