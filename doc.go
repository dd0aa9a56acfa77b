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

// Package hangul builds Hangul syllable glyphs for OpenType/CFF fonts from
// the outlines of their jamo components.
//
// The work is split into sub-packages:
//
//	charstring   decode and encode Type 2 charstrings in TTX text form
//	outline      glyph outlines, bounding boxes and region intersection
//	outline/bold synthetic emboldening and stroke weight compensation
//	jamo         the Hangul jamo inventory and syllable composition
//	layout       layout trees which place jamo inside the em square
//	extract      find jamo outlines in existing syllable glyphs
//	synth        emit positional jamo variants and GSUB lookups
//	fonttable    the in-memory font tables and TTX input/output
//
// A typical workflow reads a font with [seehuhn.de/go/hangul/fonttable.ReadTTX],
// extracts jamo outlines using the layout templates from
// [seehuhn.de/go/hangul/layout.Templates], lets a user adjust the placement,
// and finally calls [seehuhn.de/go/hangul/synth.Synthesize] to obtain a new
// font which contains one glyph per jamo and layout.
//
// The library logs through [Logger].  By default nothing is logged.
package hangul
