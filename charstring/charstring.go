// seehuhn.de/go/hangul - compose Hangul syllable glyphs from jamo outlines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Package charstring decodes and encodes Type 2 charstrings in the text
// form used by TTX.
//
// A charstring in text form is a sequence of whitespace separated tokens.
// Tokens are either numbers, which are pushed onto the operand stack, or
// operator names like "rmoveto" or "hhcurveto".  The hintmask and cntrmask
// operators may be followed by a token consisting of the digits 0 and 1,
// which gives the mask bits.
//
// The Type 2 charstring format is described in Adobe Technical Note #5177.
package charstring

import "fmt"

// MalformedError indicates that a charstring could not be decoded.
type MalformedError struct {
	Op     string // the operator being executed, if any
	Token  int    // index of the offending token
	Reason string
}

func (err *MalformedError) Error() string {
	if err.Op == "" {
		return fmt.Sprintf("charstring: token %d: %s", err.Token, err.Reason)
	}
	return fmt.Sprintf("charstring: %s (token %d): %s", err.Op, err.Token, err.Reason)
}
