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

package hangul

import (
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// MissingGlyphError indicates that the font does not contain a glyph
// which is needed to process a jamo.
// This error is recoverable: the jamo is skipped and the error is
// collected in the report of the operation.
type MissingGlyphError struct {
	// Jamo is the conjoining jamo which was being processed.
	Jamo rune

	// Layout is the name of the layout, if any.
	Layout string

	// Glyph is the name of the missing glyph, if known.
	Glyph string
}

func (err *MissingGlyphError) Error() string {
	what := fmt.Sprintf("U+%04X %s", err.Jamo, runenames.Name(err.Jamo))
	if err.Layout != "" {
		what += " in layout " + err.Layout
	}
	if err.Glyph != "" {
		return "missing glyph " + err.Glyph + " for " + what
	}
	return "no glyph found for " + what
}
