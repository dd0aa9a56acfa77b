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

package coverage

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/opentype/parser"
)

// Set is a coverage table, where the coverage index is not used.
type Set map[glyph.ID]bool

// NewSet returns a set containing the given glyphs.
func NewSet(glyphs ...glyph.ID) Set {
	set := make(Set, len(glyphs))
	for _, gid := range glyphs {
		set[gid] = true
	}
	return set
}

// ReadSet reads a coverage table from the given parser.
func ReadSet(p *parser.Parser, pos int64) (Set, error) {
	table, err := Read(p, pos)
	if err != nil {
		return nil, err
	}
	set := make(Set, len(table))
	for gid := range table {
		set[gid] = true
	}
	return set, nil
}

// Glyphs returns the glyphs in the set in increasing order.
func (set Set) Glyphs() []glyph.ID {
	glyphs := maps.Keys(set)
	slices.Sort(glyphs)
	return glyphs
}

// ToTable converts the set to a coverage table.
func (set Set) ToTable() Table {
	return New(maps.Keys(set)...)
}
