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

// Package snr implements the SNR bytecode format: the reader/writer
// cursor primitives, the versioned opcode/element schema, the
// operation arena, and the file header. The walker and its backends
// live in the reactor subpackage, which is built on top of this one.
package snr

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NumberStyle selects how NumberSpec values (register references or
// immediate literals) are encoded on the wire.
type NumberStyle int

const (
	// NumberFixed16 stores a NumberSpec as a single u16.
	NumberFixed16 NumberStyle = iota
	// NumberVarInt stores a NumberSpec as 1-4 bytes, see varint.go.
	NumberVarInt
)

// LengthKind selects the width of a length prefix.
type LengthKind int

const (
	LengthU8 LengthKind = iota
	LengthU16
)

// StringKind names the role a length-prefixed string plays; this
// determines its length-prefix width, fix-up policy, and whether it
// carries the messagebox mini-language.
type StringKind int

const (
	StringSaveInfo StringKind = iota
	StringSelectTitle
	StringMsgset
	StringLogset
	StringVoiceplay
	StringDebugout
	StringChatset
	StringNamed
	StringStageinfo
	// StringSelectChoice is the per-item style for the StringArray
	// carried by the SELECT command; it is distinct from
	// StringSelectTitle only in trace/CSV labeling (spec §6.6, S6),
	// since both happen to share one encoding policy in every
	// registered version so far.
	StringSelectChoice
)

func (k StringKind) String() string {
	switch k {
	case StringSaveInfo:
		return "save_info"
	case StringSelectTitle:
		return "select_title"
	case StringMsgset:
		return "msgset"
	case StringLogset:
		return "logset"
	case StringVoiceplay:
		return "voiceplay"
	case StringDebugout:
		return "debugout"
	case StringChatset:
		return "chatset"
	case StringNamed:
		return "named"
	case StringStageinfo:
		return "stageinfo"
	case StringSelectChoice:
		return "select_choice"
	default:
		return fmt.Sprintf("string_kind(%d)", int(k))
	}
}

// StringStyle is the per-(version, StringKind) encoding policy.
type StringStyle struct {
	Length      LengthKind
	Fixup       bool
	HasCommands bool // the decoded text is messagebox mini-language, not plain text
}

// RomVariant names the ROM format a given engine version's assets are
// shipped in. It is a plain string rather than a dependency on
// package rom, so that snr does not need to import the ROM packer to
// describe a version; package rom defines the matching Version
// constants under the same names.
type RomVariant string

const (
	RomVariantNone    RomVariant = ""
	RomVariantRom1V2_1 RomVariant = "rom1v2.1"
	RomVariantRom2V0_1 RomVariant = "rom2v0.1"
	RomVariantRom2V1_1 RomVariant = "rom2v1.1"
)

// EngineVersion carries every per-revision parameter needed to parse
// or emit SNR bytecode for one shin engine revision: the integer
// encoding style, the per-string-kind length/fix-up policy, and the
// associated ROM variant, if assets for this version ship in a ROM at
// all.
type EngineVersion struct {
	Name    string
	Number  NumberStyle
	Rom     RomVariant
	strings map[StringKind]StringStyle
}

// StringStyle returns the encoding policy for kind under v. It panics
// if kind is not defined for v, which indicates a schema bug rather
// than a malformed file (the schema table and the string-kind table
// are both static, version-scoped data).
func (v *EngineVersion) StringStyle(kind StringKind) StringStyle {
	s, ok := v.strings[kind]
	if !ok {
		panic(fmt.Sprintf("shinkit: engine version %q has no style for string kind %v", v.Name, kind))
	}
	return s
}

var registry = map[string]*EngineVersion{}

func register(v *EngineVersion) *EngineVersion {
	registry[v.Name] = v
	return v
}

// Lookup resolves a registered EngineVersion by name. The comparison
// is exact; names are the kebab-case identifiers used throughout this
// package ("higurashi-sui", "umineko").
func Lookup(name string) (*EngineVersion, bool) {
	v, ok := registry[name]
	return v, ok
}

// Versions returns the names of every registered EngineVersion,
// sorted, for an external collaborator (e.g. a CLI's --version flag)
// to present.
func Versions() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Higurashi is the "higurashi-sui" engine revision: NumberSpec values
// are fixed-width u16s, and assets ship in a Rom1V2.1 archive.
var Higurashi = register(&EngineVersion{
	Name:   "higurashi-sui",
	Number: NumberFixed16,
	Rom:    RomVariantRom1V2_1,
	strings: map[StringKind]StringStyle{
		StringSaveInfo:    {Length: LengthU8, Fixup: false},
		StringSelectTitle: {Length: LengthU8, Fixup: true, HasCommands: true},
		StringMsgset:      {Length: LengthU16, Fixup: true, HasCommands: true},
		StringLogset:      {Length: LengthU16, Fixup: true, HasCommands: true},
		StringVoiceplay:   {Length: LengthU8, Fixup: false},
		StringDebugout:    {Length: LengthU8, Fixup: false},
		StringChatset:     {Length: LengthU8, Fixup: true, HasCommands: true},
		StringNamed:       {Length: LengthU8, Fixup: true},
		StringStageinfo:   {Length: LengthU8, Fixup: false},
		StringSelectChoice: {Length: LengthU8, Fixup: true, HasCommands: true},
	},
})

// Umineko is the "umineko" engine revision: NumberSpec values use the
// variable-length integer encoding, and assets ship in a Rom2V0.1
// archive.
var Umineko = register(&EngineVersion{
	Name:   "umineko",
	Number: NumberVarInt,
	Rom:    RomVariantRom2V0_1,
	strings: map[StringKind]StringStyle{
		StringSaveInfo:    {Length: LengthU8, Fixup: false},
		StringSelectTitle: {Length: LengthU16, Fixup: true, HasCommands: true},
		StringMsgset:      {Length: LengthU16, Fixup: true, HasCommands: true},
		StringLogset:      {Length: LengthU16, Fixup: true, HasCommands: true},
		StringVoiceplay:   {Length: LengthU8, Fixup: false},
		StringDebugout:    {Length: LengthU8, Fixup: false},
		StringChatset:     {Length: LengthU16, Fixup: true, HasCommands: true},
		StringNamed:       {Length: LengthU8, Fixup: true},
		StringStageinfo:   {Length: LengthU8, Fixup: false},
		StringSelectChoice: {Length: LengthU16, Fixup: true, HasCommands: true},
	},
})
