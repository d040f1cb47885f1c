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
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Dispatch is the built schema for one EngineVersion: a 256-entry
// opcode table plus the element list for every operation it names.
// It is pure data once built, independent of any particular bytecode
// buffer, and is shared read-only across every pass over every file
// of that version.
type Dispatch struct {
	Version    *EngineVersion
	opcodeMap  [256]*Opcode
	operations map[string]OperationSchema
}

// Lookup resolves a single opcode byte to the Opcode it names, or
// (nil, false) if the byte names no operation under this version.
func (d *Dispatch) Lookup(b byte) (Opcode, bool) {
	op := d.opcodeMap[b]
	if op == nil {
		return Opcode{}, false
	}
	return *op, true
}

// Schema returns the element list for op. It panics if op is not one
// this Dispatch produced from Lookup, which would indicate the
// opcode table and the operation table have desynchronized - a
// schema construction bug, not a malformed-file condition.
func (d *Dispatch) Schema(op Opcode) OperationSchema {
	s, ok := d.operations[op.ID]
	if !ok {
		panic(fmt.Sprintf("shinkit: opcode %v has no schema", op))
	}
	return s
}

// OperationIDs returns every operation name this Dispatch knows,
// sorted, for tools that list or dump a version's opcode table.
func (d *Dispatch) OperationIDs() []string {
	ids := maps.Keys(d.operations)
	slices.Sort(ids)
	return ids
}

var schemaCache sync.Map // map[string]*Dispatch, keyed by EngineVersion.Name

// SchemaFor returns the (lazily built, then cached) Dispatch for v.
func SchemaFor(v *EngineVersion) *Dispatch {
	if cached, ok := schemaCache.Load(v.Name); ok {
		return cached.(*Dispatch)
	}
	built := buildDispatch(v)
	actual, _ := schemaCache.LoadOrStore(v.Name, built)
	return actual.(*Dispatch)
}

// instructionDef is a stable, VM-internal operation: its opcode byte and
// element list never vary across engine versions.
type instructionDef struct {
	opcode byte
	id     string
	build  func() OperationSchema
}

// sharedInstructions is the table of instructions common to every
// registered engine version (spec §3.1: "Instruction ... stable
// across versions").
var sharedInstructions = []instructionDef{
	{0x00, "EXIT", func() OperationSchema { return nil }},
	{0x01, "JUMP", func() OperationSchema { return OperationSchema{Offset()} }},
	{0x02, "JUMPCOND", func() OperationSchema { return OperationSchema{Condition(), Offset()} }},
	{0x03, "GOSUB", func() OperationSchema { return OperationSchema{Offset()} }},
	{0x04, "RETURN", func() OperationSchema { return nil }},
	{0x05, "CALL", func() OperationSchema {
		return OperationSchema{Operation(), OptionalNumber(), OffsetArray(LengthU8)}
	}},
	{0x06, "SETVAR", func() OperationSchema { return OperationSchema{Register(), Number()} }},
	{0x07, "SETVARARRAY", func() OperationSchema {
		return OperationSchema{RegisterArray(LengthU8), NumberArray(LengthU8)}
	}},
}

// commandDef is a game-visible operation; unlike instructionDef its
// element list may depend on the version (for its string-kind
// length/fix-up policy), so build takes the version being schematized.
type commandDef struct {
	opcode byte
	id     string
	build  func(v *EngineVersion) OperationSchema
}

// sharedCommands is the subset of commands whose opcode byte and
// shape happen to agree across every registered version. Each
// version's command table starts from this list and may add to or
// override it; see higurashiCommands/uminekoCommands.
func sharedCommands(firstOpcode byte) []commandDef {
	return []commandDef{
		{firstOpcode + 0x00, "MSGSET", func(v *EngineVersion) OperationSchema {
			return OperationSchema{U8(), String(v.StringStyle(StringMsgset).Length, StringMsgset)}
		}},
		{firstOpcode + 0x01, "SELECT", func(v *EngineVersion) OperationSchema {
			return OperationSchema{
				String(v.StringStyle(StringSelectTitle).Length, StringSelectTitle),
				StringArray(v.StringStyle(StringSelectChoice).Length, StringSelectChoice),
			}
		}},
		{firstOpcode + 0x02, "LOGSET", func(v *EngineVersion) OperationSchema {
			return OperationSchema{String(v.StringStyle(StringLogset).Length, StringLogset)}
		}},
		{firstOpcode + 0x03, "VOICEPLAY", func(v *EngineVersion) OperationSchema {
			return OperationSchema{String(v.StringStyle(StringVoiceplay).Length, StringVoiceplay)}
		}},
		{firstOpcode + 0x04, "CHATSET", func(v *EngineVersion) OperationSchema {
			return OperationSchema{U8(), String(v.StringStyle(StringChatset).Length, StringChatset)}
		}},
		{firstOpcode + 0x05, "NAMED", func(v *EngineVersion) OperationSchema {
			return OperationSchema{String(v.StringStyle(StringNamed).Length, StringNamed)}
		}},
		{firstOpcode + 0x06, "STAGEINFO", func(v *EngineVersion) OperationSchema {
			return OperationSchema{String(v.StringStyle(StringStageinfo).Length, StringStageinfo)}
		}},
		{firstOpcode + 0x07, "SAVEINFO", func(v *EngineVersion) OperationSchema {
			return OperationSchema{String(v.StringStyle(StringSaveInfo).Length, StringSaveInfo)}
		}},
		{firstOpcode + 0x08, "DEBUGOUT", func(v *EngineVersion) OperationSchema {
			return OperationSchema{String(v.StringStyle(StringDebugout).Length, StringDebugout)}
		}},
		{firstOpcode + 0x09, "FADE", func(v *EngineVersion) OperationSchema {
			return OperationSchema{PadNumberArray(LengthU8)}
		}},
		{firstOpcode + 0x0A, "BITFLAGS", func(v *EngineVersion) OperationSchema {
			return OperationSchema{BitmaskNumberArray()}
		}},
	}
}

// legacyOpaqueCommands implements spec §9's open question about
// 0xd1/0xd4: parsed as two fixed numeric parameters, never
// interpreted further, present identically in every version.
var legacyOpaqueCommands = []commandDef{
	{0xD1, "LEGACY_D1", func(v *EngineVersion) OperationSchema { return OperationSchema{U8(), U8()} }},
	{0xD4, "LEGACY_D4", func(v *EngineVersion) OperationSchema { return OperationSchema{U8(), U8()} }},
}

func buildDispatch(v *EngineVersion) *Dispatch {
	d := &Dispatch{
		Version:    v,
		operations: make(map[string]OperationSchema),
	}

	for _, ins := range sharedInstructions {
		op := Opcode{Kind: OpKindInstruction, ID: ins.id}
		d.opcodeMap[ins.opcode] = &op
		d.operations[ins.id] = ins.build()
	}

	var commands []commandDef
	switch v.Name {
	case Higurashi.Name:
		commands = append(sharedCommands(0x20), commandDef{
			0x2B, "WIPE", func(v *EngineVersion) OperationSchema {
				return OperationSchema{HiguSuiWipeArg()}
			},
		})
	default:
		// Later/umineko-family revisions shifted the command opcode
		// range up by 0x10 and dropped the Higurashi-only WIPE
		// command (spec §3.1's "Command ... varies per version").
		commands = sharedCommands(0x30)
	}
	commands = append(commands, legacyOpaqueCommands...)

	for _, cmd := range commands {
		op := Opcode{Kind: OpKindCommand, ID: cmd.id}
		d.opcodeMap[cmd.opcode] = &op
		d.operations[cmd.id] = cmd.build(v)
	}

	return d
}
