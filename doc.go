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

// Package shinkit ties together the SNR bytecode toolchain (package
// snr and snr/reactor) and the ROM archive toolchain (package rom)
// used by the shin visual-novel engine family.
//
// This package itself only re-exports the handful of entry points a
// caller needs to go from an SNR file on disk to a translated one;
// ROM packing and extraction are used directly from package rom. The
// interesting work lives in the subpackages.
package shinkit

import (
	"shinkit.dev/shinkit/snr"
	"shinkit.dev/shinkit/snr/reactor"
)

// LoadSNR parses the header of an SNR file and returns a Reader
// positioned at the start of its instruction stream, along with the
// header needed to reproduce the file's opaque prefix on rewrite.
func LoadSNR(data []byte) (*snr.Header, *snr.Reader, error) {
	return snr.ParseHeader(data)
}

// RewriteSNR parses data's header, runs the two-pass rewrite backend
// over its instruction stream using version and rewriter, and
// reassembles a complete file: the original header (with its total
// size updated to match the new layout; the instruction-stream offset
// is kept as it was) followed by the rewritten instruction stream.
func RewriteSNR(version *snr.EngineVersion, data []byte, rewriter reactor.StringRewriter) ([]byte, error) {
	header, _, err := snr.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	rewritten, err := reactor.Rewrite(version, data, header.InstrOffset, rewriter)
	if err != nil {
		return nil, err
	}

	out := snr.NewBufWriter()
	newHeader := &snr.Header{
		TotalSize:   header.InstrOffset + uint32(len(rewritten)),
		InstrOffset: header.InstrOffset,
		Opaque:      header.Opaque,
	}
	if err := newHeader.Write(out); err != nil {
		return nil, err
	}
	out.Put(rewritten)
	return out.Bytes(), nil
}
