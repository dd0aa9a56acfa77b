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

// Package layout describes how the drawing area of a Hangul syllable is
// divided among its jamo.
//
// A layout is a tree of [Divider] nodes.  The leaves are [Jamo] nodes,
// naming the kind of jamo drawn in the corresponding cell.  Inner nodes
// split the cell of their parent.  All coordinates are fractions of the
// enclosing cell, with the y-axis pointing up.
package layout

import (
	"fmt"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/hangul/jamo"
	"seehuhn.de/go/hangul/outline"
)

// Tag tells whether a layout is used for syllables with or without a
// trailing consonant.
type Tag uint8

// These are the possible values of Tag.
const (
	NoTrailing Tag = iota + 1
	WithTrailing
)

func (t Tag) String() string {
	switch t {
	case NoTrailing:
		return "no-trailing"
	case WithTrailing:
		return "with-trailing"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (t Tag) MarshalText() ([]byte, error) {
	if t != NoTrailing && t != WithTrailing {
		return nil, fmt.Errorf("layout: invalid tag %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (t *Tag) UnmarshalText(text []byte) error {
	switch string(text) {
	case "no-trailing":
		*t = NoTrailing
	case "with-trailing":
		*t = WithTrailing
	default:
		return fmt.Errorf("layout: unknown tag %q", text)
	}
	return nil
}

// ResizedGlyph is a jamo glyph together with its placement.
type ResizedGlyph struct {
	Glyph *outline.Glyph `json:"glyph"`

	// Bounds gives the position of the bounding box of Glyph, as fractions
	// of the hull of the focus cell.
	Bounds rect.Rect `json:"bounds"`
}

// Clone returns a deep copy of g.
func (g *ResizedGlyph) Clone() *ResizedGlyph {
	if g == nil {
		return nil
	}
	return &ResizedGlyph{Glyph: g.Glyph.Clone(), Bounds: g.Bounds}
}

// Layout describes the shape of one positional variant of a set of jamo.
type Layout struct {
	Name string
	Tag  Tag

	// Focus is the kind of jamo this layout provides variants for.
	Focus jamo.Kind

	// Subkind restricts the jamo of kind Focus which use this layout.
	Subkind jamo.Subkind

	// Elems lists the kinds of all leaves of Dividers.
	Elems []jamo.Kind

	Dividers Divider

	// Glyphs maps conjoining jamo to their glyphs in this layout.
	Glyphs map[rune]*ResizedGlyph
}

// Clone returns a deep copy of l.
func (l *Layout) Clone() *Layout {
	res := &Layout{
		Name:     l.Name,
		Tag:      l.Tag,
		Focus:    l.Focus,
		Subkind:  l.Subkind,
		Elems:    slices.Clone(l.Elems),
		Dividers: CloneDivider(l.Dividers),
	}
	if l.Glyphs != nil {
		res.Glyphs = make(map[rune]*ResizedGlyph, len(l.Glyphs))
		for r, g := range l.Glyphs {
			res.Glyphs[r] = g.Clone()
		}
	}
	return res
}

var unitSquare = []rect.Rect{{LLx: 0, LLy: 0, URx: 1, URy: 1}}

// FocusRegion returns the cell of the focus jamo within the unit square.
func (l *Layout) FocusRegion() ([]rect.Rect, error) {
	region, err := LocateFocusRegion(l.Dividers, l.Focus, unitSquare)
	if err != nil {
		return nil, withName(err, l.Name)
	}
	return region, nil
}

// FocusBounds returns the hull of the focus cell within the unit square.
func (l *Layout) FocusBounds() (rect.Rect, error) {
	region, err := l.FocusRegion()
	if err != nil {
		return rect.Rect{}, err
	}
	return Hull(region), nil
}

// Jamo returns the conjoining jamo which use this layout.
func (l *Layout) Jamo() []rune {
	return jamo.Jamo(l.Subkind)
}

// Partners returns the kinds of the jamo which accompany the focus jamo.
func (l *Layout) Partners() []jamo.Kind {
	var res []jamo.Kind
	for _, k := range l.Elems {
		if k != l.Focus {
			res = append(res, k)
		}
	}
	return res
}

// Validate checks that the layout is consistent.
func (l *Layout) Validate() error {
	fail := func(format string, args ...any) error {
		return &InvalidLayoutError{Layout: l.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if l.Name == "" {
		return fail("missing name")
	}
	if !l.Focus.IsValid() {
		return fail("invalid focus %s", l.Focus)
	}
	if l.Subkind.Kind() != l.Focus {
		return fail("subkind %s does not match focus %s", l.Subkind, l.Focus)
	}

	leaves := Leaves(l.Dividers)
	if !slices.Equal(leaves, l.Elems) {
		return fail("elems %v do not match the leaves %v", l.Elems, leaves)
	}
	roles := make(map[jamo.Role]int)
	for _, k := range leaves {
		if !k.IsValid() {
			return fail("invalid jamo kind %s", k)
		}
		roles[k.Role()]++
	}
	if roles[jamo.RoleLeading] != 1 || roles[jamo.RoleVowel] != 1 || roles[jamo.RoleTrailing] > 1 {
		return fail("a syllable needs one leading consonant, one vowel and at most one trailing consonant")
	}
	hasTrailing := roles[jamo.RoleTrailing] == 1
	if hasTrailing != (l.Tag == WithTrailing) {
		return fail("tag %s does not match elems %v", l.Tag, l.Elems)
	}

	if _, err := l.FocusRegion(); err != nil {
		return err
	}

	for r, g := range l.Glyphs {
		sk, ok := jamo.SubkindOf(r)
		if !ok || sk != l.Subkind {
			return fail("unexpected glyph for %U", r)
		}
		if g == nil || g.Glyph == nil {
			return fail("missing outline for %U", r)
		}
		if !validBounds(g.Bounds) {
			return fail("invalid bounds %v for %U", g.Bounds, r)
		}
	}
	return nil
}

// SetBounds changes the placement of the glyph for jamo r.
func (l *Layout) SetBounds(r rune, b rect.Rect) error {
	g, ok := l.Glyphs[r]
	if !ok {
		return fmt.Errorf("layout %q: no glyph for %U", l.Name, r)
	}
	if !validBounds(b) {
		return fmt.Errorf("layout %q: invalid bounds %v", l.Name, b)
	}
	g.Bounds = b
	return nil
}

func validBounds(b rect.Rect) bool {
	return 0 <= b.LLx && b.LLx <= b.URx && b.URx <= 1 &&
		0 <= b.LLy && b.LLy <= b.URy && b.URy <= 1
}

// Category groups the layouts for jamo of the same subkind.
type Category struct {
	Subkind jamo.Subkind `json:"subkind"`
	Layouts []*Layout    `json:"layouts"`
}

// Layouts is the complete set of layouts for a font.
type Layouts []*Category

// Clone returns a deep copy of ls.
func (ls Layouts) Clone() Layouts {
	res := make(Layouts, len(ls))
	for i, c := range ls {
		nc := &Category{
			Subkind: c.Subkind,
			Layouts: make([]*Layout, len(c.Layouts)),
		}
		for j, l := range c.Layouts {
			nc.Layouts[j] = l.Clone()
		}
		res[i] = nc
	}
	return res
}

// All returns all layouts, in order.
func (ls Layouts) All() []*Layout {
	var res []*Layout
	for _, c := range ls {
		res = append(res, c.Layouts...)
	}
	return res
}

// Find returns the layout with the given name, or nil if there is none.
func (ls Layouts) Find(name string) *Layout {
	for _, c := range ls {
		for _, l := range c.Layouts {
			if l.Name == name {
				return l
			}
		}
	}
	return nil
}

// Validate checks all layouts.  Layout names must be unique.
func (ls Layouts) Validate() error {
	seen := make(map[string]bool)
	for _, c := range ls {
		for _, l := range c.Layouts {
			if seen[l.Name] {
				return &InvalidLayoutError{Layout: l.Name, Reason: "duplicate name"}
			}
			seen[l.Name] = true
			if l.Subkind != c.Subkind {
				return &InvalidLayoutError{Layout: l.Name, Reason: "layout in the wrong category"}
			}
			if err := l.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
