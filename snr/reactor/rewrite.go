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
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"shinkit.dev/shinkit/snr"
	"shinkit.dev/shinkit/snr/sjis"
)

// StringRewriter decides the replacement bytes for one decoded
// string field. It is called identically in both passes of Rewrite,
// so implementations must be deterministic: the same (pos, sv)
// argument pair must produce the same result both times, or the two
// passes will disagree on every later byte offset.
type StringRewriter interface {
	Rewrite(pos uint32, sv snr.StringValue) ([]byte, error)
}

// NullRewriter returns every string unchanged; Rewrite under it still
// exercises the full two-pass offset remap machinery, which is useful
// as a round-trip identity check.
type NullRewriter struct{}

func (NullRewriter) Rewrite(pos uint32, sv snr.StringValue) ([]byte, error) {
	return sv.Raw, nil
}

// CSVRewriter replaces strings by (offset, source, source_subindex)
// lookup into a table loaded from a Trace-shaped CSV worksheet, the
// inverse of Trace's own WriteCSV. A lookup miss leaves the original
// bytes in place, so a partially-translated worksheet still produces
// a valid file.
type CSVRewriter struct {
	table map[csvKey]string
}

type csvKey struct {
	offset         uint32
	source         string
	sourceSubindex int
}

// LoadCSVRewriter parses a Trace-shaped CSV worksheet from r.
func LoadCSVRewriter(r io.Reader) (*CSVRewriter, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("shinkit/reactor: reading CSV worksheet: %w", err)
	}
	if len(records) == 0 {
		return &CSVRewriter{table: map[csvKey]string{}}, nil
	}

	table := make(map[csvKey]string, len(records)-1)
	for _, rec := range records[1:] { // skip header row
		if len(rec) < 5 {
			continue
		}
		var offset uint32
		if _, err := fmt.Sscanf(rec[1], "0x%x", &offset); err != nil {
			return nil, fmt.Errorf("shinkit/reactor: parsing offset %q: %w", rec[1], err)
		}
		subindex := -1
		if rec[3] != "" {
			if _, err := fmt.Sscanf(rec[3], "%d", &subindex); err != nil {
				return nil, fmt.Errorf("shinkit/reactor: parsing subindex %q: %w", rec[3], err)
			}
		}
		table[csvKey{offset: offset, source: rec[2], sourceSubindex: subindex}] = rec[4]
	}
	return &CSVRewriter{table: table}, nil
}

// Rewrite implements StringRewriter.
func (c *CSVRewriter) Rewrite(pos uint32, sv snr.StringValue) ([]byte, error) {
	if isArrayKind(sv.Kind) {
		items := bytes.Split(trimFinalZero(sv.Raw), []byte{0})
		// The blob's last item is itself zero-terminated, so the split
		// above always leaves one spurious empty element after it.
		if n := len(items); n > 0 && len(items[n-1]) == 0 {
			items = items[:n-1]
		}
		out := make([]byte, 0, len(sv.Raw))
		for i := range items {
			text, ok := c.table[csvKey{offset: pos, source: sv.Kind.String(), sourceSubindex: i}]
			if !ok {
				out = append(out, items[i]...)
			} else {
				enc, err := sjis.EncodeWithFixup(text, sv.Fixup)
				if err != nil {
					return nil, err
				}
				out = append(out, enc...)
			}
			out = append(out, 0) // item terminator
		}
		return append(out, 0), nil // array terminator
	}

	text, ok := c.table[csvKey{offset: pos, source: sv.Kind.String(), sourceSubindex: -1}]
	if !ok {
		return sv.Raw, nil
	}
	enc, err := sjis.EncodeWithFixup(text, sv.Fixup)
	if err != nil {
		return nil, err
	}
	return append(enc, 0), nil
}

// ReplaceKind replaces the text of every string field of one
// StringKind with a fixed replacement, leaving every other field
// untouched. This is mainly useful for scenario tests and smoke
// checks ("replace every msgset string with a placeholder") rather
// than real translation work, where CSVRewriter is the real backend.
type ReplaceKind struct {
	Kind        snr.StringKind
	Replacement string
}

func (r ReplaceKind) Rewrite(pos uint32, sv snr.StringValue) ([]byte, error) {
	if sv.Kind != r.Kind {
		return sv.Raw, nil
	}
	enc, err := sjis.EncodeWithFixup(r.Replacement, sv.Fixup)
	if err != nil {
		return nil, err
	}
	return append(enc, 0), nil
}

// Rewrite runs the two-pass offset-remapping rewrite backend over
// data (a whole SNR file) under version, starting at startPos - the
// file's instruction-stream offset - and substituting string fields
// through rewriter. It returns the freshly laid out instruction
// stream bytes, zero-padded to a multiple of 16 bytes (not including
// the file header; callers needing a full file prepend one via
// snr.Header.Write).
//
// Offset/OffsetArray fields are absolute file offsets, so both passes
// must walk the same absolute positions Walk itself uses for trace
// and validate, and the offset map built in pass 1 must record
// absolute output positions, seeded at startPos, for those positions
// to double as valid jump targets in the rewritten file.
//
// Pass 1 decodes the same way Walk does, substitutes strings, and
// re-encodes into a CountingWriter purely to measure how long each
// operation comes out, building an OffsetMap from old to new
// positions as it goes. Pass 2 repeats the identical decode and
// substitution - rewriter.Rewrite must be deterministic for this to
// agree with pass 1 - but remaps every Offset/OffsetArray field
// through the now-complete OffsetMap before encoding into the real
// output buffer.
func Rewrite(version *snr.EngineVersion, data []byte, startPos uint32, rewriter StringRewriter) ([]byte, error) {
	ctx := NewContext(version)

	mapBuilder := NewOffsetMapBuilder()
	if _, err := rewritePass(ctx, data, startPos, rewriter, nil, snr.NewCountingWriter(startPos), mapBuilder); err != nil {
		return nil, fmt.Errorf("shinkit/reactor: rewrite pass 1: %w", err)
	}
	offsetMap := mapBuilder.Build()

	out := snr.NewBufWriter()
	if _, err := rewritePass(ctx, data, startPos, rewriter, offsetMap, out, nil); err != nil {
		return nil, fmt.Errorf("shinkit/reactor: rewrite pass 2: %w", err)
	}
	snr.Pad16(out)
	return out.Bytes(), nil
}

// rewritePass runs one pass of the rewrite backend. offsetMap is nil
// during pass 1 (nothing to remap against yet); recordInto is nil
// during pass 2 (the map is already built). Exactly one of the two is
// non-nil on any call.
func rewritePass(
	ctx *Context,
	data []byte,
	startPos uint32,
	rewriter StringRewriter,
	offsetMap *OffsetMap,
	w snr.Writer,
	recordInto *OffsetMapBuilder,
) (uint32, error) {
	r := snr.NewReader(data, startPos)
	arena := snr.NewArena()

	for r.HasInstr() {
		oldPos := r.Position()
		newPos := w.Position()
		if recordInto != nil {
			recordInto.Record(oldPos, newPos)
		}

		opByte, err := r.TakeU8()
		if err != nil {
			return 0, fmt.Errorf("reading opcode at offset %d: %w", oldPos, err)
		}
		op, ok := ctx.Dispatch.Lookup(opByte)
		if !ok {
			return 0, fmt.Errorf("unknown opcode 0x%02x at offset %d", opByte, oldPos)
		}
		schema := ctx.Dispatch.Schema(op)

		arena.Reset()
		if err := decodeOperation(r, ctx.Version, schema, arena); err != nil {
			return 0, fmt.Errorf("decoding %s at offset %d: %w", op, oldPos, err)
		}

		for i, sv := range arena.String {
			replaced, err := rewriter.Rewrite(oldPos, sv)
			if err != nil {
				return 0, fmt.Errorf("rewriting %s field at offset %d: %w", sv.Kind, oldPos, err)
			}
			arena.String[i].Raw = replaced
		}

		if offsetMap != nil {
			for i, off := range arena.Offset {
				resolved, ok := offsetMap.Resolve(off)
				if !ok {
					return 0, fmt.Errorf("%s at offset %d refers to unreachable offset %d", op, oldPos, off)
				}
				arena.Offset[i] = resolved
			}
		}

		if err := encodeOperation(w, ctx.Version, schema, arena); err != nil {
			return 0, fmt.Errorf("encoding %s at offset %d: %w", op, oldPos, err)
		}
	}

	return w.Position(), nil
}
