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

	"shinkit.dev/shinkit/snr"
)

// decodeOperation consumes one operation's elements from r in order,
// appending every field to arena. arena must already be Reset.
//
// ElemOptionalNumber's presence is gated by the most recently decoded
// ElemOperation byte's high bit; since an operation's elements are
// processed strictly in order, a single local flag carries that
// across iterations of the loop.
func decodeOperation(r *snr.Reader, version *snr.EngineVersion, schema snr.OperationSchema, arena *snr.Arena) error {
	optionalNumberGate := false

	for _, el := range schema {
		switch el.Kind {
		case snr.ElemU8:
			v, err := r.TakeU8()
			if err != nil {
				return err
			}
			arena.U8 = append(arena.U8, v)

		case snr.ElemU16:
			v, err := r.TakeU16LE()
			if err != nil {
				return err
			}
			arena.U16 = append(arena.U16, v)

		case snr.ElemU32:
			v, err := r.TakeU32LE()
			if err != nil {
				return err
			}
			arena.U32 = append(arena.U32, v)

		case snr.ElemOperation:
			v, err := r.TakeU8()
			if err != nil {
				return err
			}
			arena.U8 = append(arena.U8, v)
			optionalNumberGate = v&0x80 != 0

		case snr.ElemCondition:
			cmp, err := r.TakeU8()
			if err != nil {
				return err
			}
			arena.U8 = append(arena.U8, cmp)
			lhs, err := r.TakeNumber(version.Number)
			if err != nil {
				return err
			}
			rhs, err := r.TakeNumber(version.Number)
			if err != nil {
				return err
			}
			arena.Number = append(arena.Number, lhs, rhs)

		case snr.ElemExpression:
			v, err := r.TakeNumber(version.Number)
			if err != nil {
				return err
			}
			arena.Number = append(arena.Number, v)

		case snr.ElemRegister:
			v, err := r.TakeRegister()
			if err != nil {
				return err
			}
			arena.Register = append(arena.Register, v)

		case snr.ElemRegisterArray:
			n, err := r.TakeLength(el.Len)
			if err != nil {
				return err
			}
			arena.Length = append(arena.Length, n)
			for i := uint16(0); i < n; i++ {
				v, err := r.TakeRegister()
				if err != nil {
					return err
				}
				arena.Register = append(arena.Register, v)
			}

		case snr.ElemOffset:
			v, err := r.TakeOffset()
			if err != nil {
				return err
			}
			arena.Offset = append(arena.Offset, v)

		case snr.ElemOffsetArray:
			n, err := r.TakeLength(el.Len)
			if err != nil {
				return err
			}
			arena.Length = append(arena.Length, n)
			for i := uint16(0); i < n; i++ {
				v, err := r.TakeOffset()
				if err != nil {
					return err
				}
				arena.Offset = append(arena.Offset, v)
			}

		case snr.ElemNumber:
			v, err := r.TakeNumber(version.Number)
			if err != nil {
				return err
			}
			arena.Number = append(arena.Number, v)

		case snr.ElemOptionalNumber:
			if !optionalNumberGate {
				arena.OptionalNumberPresent = append(arena.OptionalNumberPresent, false)
				continue
			}
			v, err := r.TakeNumber(version.Number)
			if err != nil {
				return err
			}
			arena.Number = append(arena.Number, v)
			arena.OptionalNumberPresent = append(arena.OptionalNumberPresent, true)

		case snr.ElemNumberArray:
			n, err := r.TakeLength(el.Len)
			if err != nil {
				return err
			}
			arena.Length = append(arena.Length, n)
			for i := uint16(0); i < n; i++ {
				v, err := r.TakeNumber(version.Number)
				if err != nil {
					return err
				}
				arena.Number = append(arena.Number, v)
			}

		case snr.ElemPadNumberArray:
			n, err := r.TakeLength(el.Len)
			if err != nil {
				return err
			}
			arena.Length = append(arena.Length, n)
			for i := 0; i < padNumberArrayCapacity; i++ {
				v, err := r.TakeNumber(version.Number)
				if err != nil {
					return err
				}
				arena.Number = append(arena.Number, v)
			}

		case snr.ElemBitmaskNumberArray:
			mask, err := r.TakeU8()
			if err != nil {
				return err
			}
			arena.BitmaskByte = append(arena.BitmaskByte, mask)
			for bit := uint8(0); bit < 8; bit++ {
				if mask&(1<<bit) == 0 {
					continue
				}
				v, err := r.TakeNumber(version.Number)
				if err != nil {
					return err
				}
				arena.Bitmask = append(arena.Bitmask, snr.BitmaskEntry{Bit: bit, Number: v})
			}

		case snr.ElemString:
			raw, err := r.TakeString(el.Len)
			if err != nil {
				return err
			}
			arena.String = append(arena.String, snr.StringValue{
				Raw:   raw,
				Kind:  el.StrKind,
				Fixup: version.StringStyle(el.StrKind).Fixup,
			})

		case snr.ElemStringArray:
			raw, err := r.TakeStringArray(el.Len)
			if err != nil {
				return err
			}
			arena.String = append(arena.String, snr.StringValue{
				Raw:   raw,
				Kind:  el.StrKind,
				Fixup: version.StringStyle(el.StrKind).Fixup,
			})

		case snr.ElemHiguSuiWipeArg:
			style, err := r.TakeU8()
			if err != nil {
				return err
			}
			arena.U8 = append(arena.U8, style)
			duration, err := r.TakeNumber(version.Number)
			if err != nil {
				return err
			}
			curve, err := r.TakeNumber(version.Number)
			if err != nil {
				return err
			}
			arena.Number = append(arena.Number, duration, curve)

		default:
			return fmt.Errorf("shinkit/reactor: unhandled element kind %d", el.Kind)
		}
	}
	return nil
}

// arenaCursor tracks how far encodeOperation has consumed each of
// Arena's per-family slices, since encoding replays the same schema
// walk decodeOperation did but must read fields back in the same
// order they were appended rather than appending new ones.
type arenaCursor struct {
	u8, u16, u32                     int
	register, offset, number         int
	optionalNumberPresent            int
	str, length, bitmask, bitmaskByte int
}

// encodeOperation writes arena's fields back out through w, following
// schema in the same order decodeOperation consumed them in. Offset
// values are written verbatim; in its second pass rewrite.go remaps
// arena.Offset entries in place (via an OffsetMap) before calling this.
func encodeOperation(w snr.Writer, version *snr.EngineVersion, schema snr.OperationSchema, arena *snr.Arena) error {
	var c arenaCursor

	for _, el := range schema {
		switch el.Kind {
		case snr.ElemU8, snr.ElemOperation:
			snr.PutU8(w, arena.U8[c.u8])
			c.u8++

		case snr.ElemU16:
			snr.PutU16LE(w, arena.U16[c.u16])
			c.u16++

		case snr.ElemU32:
			snr.PutU32LE(w, arena.U32[c.u32])
			c.u32++

		case snr.ElemCondition:
			snr.PutU8(w, arena.U8[c.u8])
			c.u8++
			if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
				return err
			}
			c.number++
			if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
				return err
			}
			c.number++

		case snr.ElemExpression, snr.ElemNumber:
			if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
				return err
			}
			c.number++

		case snr.ElemRegister:
			snr.PutRegister(w, arena.Register[c.register])
			c.register++

		case snr.ElemRegisterArray:
			n := arena.Length[c.length]
			c.length++
			snr.PutLength(w, el.Len, int(n))
			for i := uint16(0); i < n; i++ {
				snr.PutRegister(w, arena.Register[c.register])
				c.register++
			}

		case snr.ElemOffset:
			snr.PutOffset(w, arena.Offset[c.offset])
			c.offset++

		case snr.ElemOffsetArray:
			n := arena.Length[c.length]
			c.length++
			snr.PutLength(w, el.Len, int(n))
			for i := uint16(0); i < n; i++ {
				snr.PutOffset(w, arena.Offset[c.offset])
				c.offset++
			}

		case snr.ElemOptionalNumber:
			present := arena.OptionalNumberPresent[c.optionalNumberPresent]
			c.optionalNumberPresent++
			if !present {
				continue
			}
			if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
				return err
			}
			c.number++

		case snr.ElemNumberArray:
			n := arena.Length[c.length]
			c.length++
			snr.PutLength(w, el.Len, int(n))
			for i := uint16(0); i < n; i++ {
				if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
					return err
				}
				c.number++
			}

		case snr.ElemPadNumberArray:
			n := arena.Length[c.length]
			c.length++
			snr.PutLength(w, el.Len, int(n))
			for i := 0; i < padNumberArrayCapacity; i++ {
				if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
					return err
				}
				c.number++
			}

		case snr.ElemBitmaskNumberArray:
			mask := arena.BitmaskByte[c.bitmaskByte]
			c.bitmaskByte++
			snr.PutU8(w, mask)
			for bit := uint8(0); bit < 8; bit++ {
				if mask&(1<<bit) == 0 {
					continue
				}
				if err := snr.PutNumber(w, version.Number, arena.Bitmask[c.bitmask].Number); err != nil {
					return err
				}
				c.bitmask++
			}

		case snr.ElemString:
			snr.PutString(w, el.Len, arena.String[c.str].Raw)
			c.str++

		case snr.ElemStringArray:
			snr.PutStringArray(w, el.Len, arena.String[c.str].Raw)
			c.str++

		case snr.ElemHiguSuiWipeArg:
			snr.PutU8(w, arena.U8[c.u8])
			c.u8++
			if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
				return err
			}
			c.number++
			if err := snr.PutNumber(w, version.Number, arena.Number[c.number]); err != nil {
				return err
			}
			c.number++

		default:
			return fmt.Errorf("shinkit/reactor: unhandled element kind %d", el.Kind)
		}
	}
	return nil
}

// padNumberArrayCapacity mirrors snr's unexported constant of the same
// name; kept in sync by hand since the two packages intentionally
// don't export it (callers outside the schema/decode pair never need
// to know the physical slot count, only the semantic length).
const padNumberArrayCapacity = 8
