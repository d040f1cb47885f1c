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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMessageRoundtrip(t *testing.T) {
	cases := []string{
		"hello world",
		"hello[r]world",
		"{ruby}plain",
		"[k5]wait then {base}ruby{/base} more",
		"[w]",
	}
	for _, s := range cases {
		tokens, err := ParseMessage(s)
		if err != nil {
			t.Fatalf("ParseMessage(%q): %v", s, err)
		}
		if got := FormatMessage(tokens); got != s {
			t.Fatalf("FormatMessage(ParseMessage(%q)) = %q", s, got)
		}
	}
}

func TestParseMessageSplitsLiteralsAndCommands(t *testing.T) {
	got, err := ParseMessage("hi[r3]there")
	if err != nil {
		t.Fatal(err)
	}
	want := []MessageToken{
		{Text: "hi"},
		{Command: 'r', Arg: "3"},
		{Text: "there"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", d)
	}
}

func TestParseMessageRubyDelimiters(t *testing.T) {
	got, err := ParseMessage("{漢字}かんじ}")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) < 2 || got[0].Command != '{' {
		t.Fatalf("expected a leading ruby-open token, got %+v", got)
	}
}

func TestParseMessageRejectsUnterminatedCommand(t *testing.T) {
	if _, err := ParseMessage("oops[r"); err == nil {
		t.Fatal("expected error for unterminated command")
	}
}

func TestParseMessageRejectsEmptyCommand(t *testing.T) {
	if _, err := ParseMessage("oops[]"); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestParseMessageRejectsUnknownCommandLetter(t *testing.T) {
	if _, err := ParseMessage("[q]"); err == nil {
		t.Fatal("expected error for unrecognized command letter")
	}
}
