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

	"shinkit.dev/shinkit/snr"
	"shinkit.dev/shinkit/snr/sjis"
)

// traceRow is one line of Trace output: one row per string-bearing
// field of one operation, or one row per item of a StringArray field.
type traceRow struct {
	index          int
	offset         uint32
	source         string
	sourceSubindex int // -1 when the field is not an array item
	text           string
}

// Trace is a read-only backend that records one row per decoded
// string field, in the column order WriteCSV emits, suitable for a
// CSV-based translation worksheet: index, offset, source kind,
// subindex (for array items), and the decoded text.
type Trace struct {
	rows []traceRow
}

// NewTrace returns an empty Trace backend.
func NewTrace() *Trace { return &Trace{} }

// ObserveOperation implements OperationObserver.
func (t *Trace) ObserveOperation(pos uint32, op snr.Opcode, arena *snr.Arena) error {
	for _, sv := range arena.String {
		if err := t.observeString(pos, sv); err != nil {
			return fmt.Errorf("shinkit/reactor: tracing %s at offset %d: %w", op, pos, err)
		}
	}
	return nil
}

func (t *Trace) observeString(pos uint32, sv snr.StringValue) error {
	// A StringArray's raw blob is several zero-terminated items back
	// to back, with one more zero byte ending the array; split it so
	// each item gets its own row and subindex (spec scenario S6 needs
	// to tell a select_title row from its select_choice rows).
	if isArrayKind(sv.Kind) {
		items := bytes.Split(trimFinalZero(sv.Raw), []byte{0})
		// The blob's last item is itself zero-terminated, so the split
		// above always leaves one spurious empty element after it.
		if n := len(items); n > 0 && len(items[n-1]) == 0 {
			items = items[:n-1]
		}
		for i, item := range items {
			text, err := sjis.Decode(item, sv.Fixup)
			if err != nil {
				return err
			}
			t.rows = append(t.rows, traceRow{
				index: len(t.rows), offset: pos, source: sv.Kind.String(),
				sourceSubindex: i, text: text,
			})
		}
		return nil
	}

	text, err := sjis.Decode(sv.Raw, sv.Fixup)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, traceRow{
		index: len(t.rows), offset: pos, source: sv.Kind.String(),
		sourceSubindex: -1, text: text,
	})
	return nil
}

func isArrayKind(kind snr.StringKind) bool {
	return kind == snr.StringSelectChoice
}

func trimFinalZero(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == 0 {
		return b[:len(b)-1]
	}
	return b
}

// WriteCSV emits the collected rows as CSV with header
// "index,offset,source,source_subindex,s".
func (t *Trace) WriteCSV(w *csv.Writer) error {
	if err := w.Write([]string{"index", "offset", "source", "source_subindex", "s"}); err != nil {
		return err
	}
	for _, r := range t.rows {
		subindex := ""
		if r.sourceSubindex >= 0 {
			subindex = fmt.Sprintf("%d", r.sourceSubindex)
		}
		record := []string{
			fmt.Sprintf("%d", r.index),
			fmt.Sprintf("0x%x", r.offset),
			r.source,
			subindex,
			r.text,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
