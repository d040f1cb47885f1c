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
	"strings"
)

// MessageToken is one piece of a parsed messagebox string: either a
// run of plain text, or a command with its raw argument text (this
// package does not interpret command arguments further - number
// parsing, color codes and so on are a presentation-layer concern).
type MessageToken struct {
	// Text holds a literal run when Command is zero.
	Text string
	// Command is the mini-language command letter, or 0 for a literal
	// text token.
	Command byte
	// Arg holds everything between the command letter and its closing
	// delimiter, verbatim.
	Arg string
}

// messageCommands is the fixed set of command letters the messagebox
// mini-language recognizes, each bracketed by '[' ... ']' in the
// source text except where noted.
var messageCommands = map[byte]bool{
	'+': true, '-': true, '/': true,
	'<': true, '>': true,
	'a': true, 'b': true, 'c': true, 'e': true,
	'k': true, 'o': true, 'r': true, 's': true,
	't': true, 'u': true, 'v': true, 'w': true,
	'x': true, 'y': true, 'z': true,
	'|': true,
}

// ParseMessage parses s (already Shift-JIS-decoded plain text) into a
// sequence of literal-text and command tokens. Commands are written
// `[x...]` for a letter command with an argument, `[x]` for one with
// none, and `{` / `}` delimit a ruby-text span (kept as their own
// zero-argument commands rather than folded into '[' syntax, since
// the engine's own format never brackets them).
func ParseMessage(s string) ([]MessageToken, error) {
	var tokens []MessageToken
	var lit strings.Builder

	flushLit := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, MessageToken{Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{', '}':
			flushLit()
			tokens = append(tokens, MessageToken{Command: byte(runes[i])})

		case '[':
			flushLit()
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				return nil, fmt.Errorf("shinkit: unterminated command starting at rune %d", i)
			}
			body := runes[i+1 : end]
			if len(body) == 0 {
				return nil, fmt.Errorf("shinkit: empty command at rune %d", i)
			}
			cmd := byte(body[0])
			if !messageCommands[cmd] {
				return nil, fmt.Errorf("shinkit: unrecognized message command %q at rune %d", string(cmd), i)
			}
			tokens = append(tokens, MessageToken{Command: cmd, Arg: string(body[1:])})
			i = end

		default:
			lit.WriteRune(runes[i])
		}
	}
	flushLit()
	return tokens, nil
}

// FormatMessage is ParseMessage's inverse: it re-serializes tokens
// back into the mini-language source text, used after a translated
// literal-text token has been substituted back into the token stream.
func FormatMessage(tokens []MessageToken) string {
	var b strings.Builder
	for _, t := range tokens {
		switch {
		case t.Command == '{' || t.Command == '}':
			b.WriteByte(t.Command)
		case t.Command != 0:
			b.WriteByte('[')
			b.WriteByte(t.Command)
			b.WriteString(t.Arg)
			b.WriteByte(']')
		default:
			b.WriteString(t.Text)
		}
	}
	return b.String()
}
