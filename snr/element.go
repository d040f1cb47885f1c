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

// ElementKind names one shape an operation's element list can
// contain. A handful of kinds (RegisterArray, OffsetArray, NumberArray,
// PadNumberArray, String, StringArray) take a LengthKind and/or
// StringKind parameter, carried on Element itself
// rather than encoded into the ElementKind value, since Go enums
// cannot carry payloads the way the original's element enum can.
type ElementKind int

const (
	ElemU8 ElementKind = iota
	ElemU16
	ElemU32
	// ElemOperation is a one-byte discriminator. Its most significant
	// bit gates whether the following ElemOptionalNumber element
	// actually consumes a byte.
	ElemOperation
	// ElemCondition consumes a one-byte comparator followed by two
	// NumberSpec operands (lhs, rhs).
	ElemCondition
	// ElemExpression consumes a single NumberSpec used as a boolean
	// or arithmetic operand, kept as its own kind (rather than plain
	// ElemNumber) so backends can tell "a value used as a condition"
	// from "a value used as a command argument" in trace/paint output.
	ElemExpression
	ElemRegister
	ElemRegisterArray
	ElemOffset
	ElemOffsetArray
	ElemNumber
	// ElemOptionalNumber only consumes a NumberSpec when the most
	// recently read ElemOperation byte had its MSB set; see the
	// reactor package's decodeOperation for how that bit of state is
	// threaded through.
	ElemOptionalNumber
	ElemNumberArray
	// ElemPadNumberArray reads a length L followed by a *fixed*
	// capacity of NumberSpec slots (padNumberArrayCapacity); only the
	// first L are meaningful, the rest are on-disk padding that must
	// still be consumed (and reproduced) byte for byte.
	ElemPadNumberArray
	// ElemBitmaskNumberArray reads a one-byte bitmask, then one
	// NumberSpec for every set bit, low bit first.
	ElemBitmaskNumberArray
	ElemString
	ElemStringArray
	// ElemHiguSuiWipeArg is a version-specific one-off shape used only
	// by the Higurashi-family WIPE command: a one-byte wipe-style tag
	// followed by two NumberSpec parameters (duration, curve).
	ElemHiguSuiWipeArg
)

// padNumberArrayCapacity is the fixed on-disk slot count for
// PadNumberArray elements in every known version; only the prefix up
// to the element's length is semantically meaningful.
const padNumberArrayCapacity = 8

// Element is one entry in an OperationSchema: an ElementKind plus
// whatever extra parameter that kind needs to know how to consume
// itself (a length-prefix width, a string kind, or nothing).
type Element struct {
	Kind    ElementKind
	Len     LengthKind
	StrKind StringKind
}

// U8 and friends build Element values with no extra parameter.
func U8() Element                 { return Element{Kind: ElemU8} }
func U16() Element                { return Element{Kind: ElemU16} }
func U32() Element                { return Element{Kind: ElemU32} }
func Operation() Element          { return Element{Kind: ElemOperation} }
func Condition() Element          { return Element{Kind: ElemCondition} }
func Expression() Element         { return Element{Kind: ElemExpression} }
func Register() Element           { return Element{Kind: ElemRegister} }
func Offset() Element             { return Element{Kind: ElemOffset} }
func Number() Element             { return Element{Kind: ElemNumber} }
func OptionalNumber() Element     { return Element{Kind: ElemOptionalNumber} }
func BitmaskNumberArray() Element { return Element{Kind: ElemBitmaskNumberArray} }
func HiguSuiWipeArg() Element     { return Element{Kind: ElemHiguSuiWipeArg} }

// RegisterArray, OffsetArray, NumberArray, PadNumberArray, String and
// StringArray all need extra parameters.
func RegisterArray(len LengthKind) Element { return Element{Kind: ElemRegisterArray, Len: len} }
func OffsetArray(len LengthKind) Element   { return Element{Kind: ElemOffsetArray, Len: len} }
func NumberArray(len LengthKind) Element   { return Element{Kind: ElemNumberArray, Len: len} }
func PadNumberArray(len LengthKind) Element {
	return Element{Kind: ElemPadNumberArray, Len: len}
}
func String(len LengthKind, kind StringKind) Element {
	return Element{Kind: ElemString, Len: len, StrKind: kind}
}
func StringArray(len LengthKind, kind StringKind) Element {
	return Element{Kind: ElemStringArray, Len: len, StrKind: kind}
}

// OperationSchema is the ordered element list for one operation.
type OperationSchema []Element

// OpKind distinguishes VM-internal Instructions, which are stable
// across engine versions, from game-visible Commands, whose opcode
// numbers and element lists vary per version.
type OpKind int

const (
	OpKindInstruction OpKind = iota
	OpKindCommand
)

// Opcode names one operation: its stability class and a symbolic
// identifier unique within that class, used as the key into a
// Dispatch's operation map.
type Opcode struct {
	Kind OpKind
	ID   string
}

func (o Opcode) String() string { return o.ID }
