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

package layout

import (
	"seehuhn.de/go/hangul/jamo"
)

// cellShape gives the split positions used for one family of syllables.
type cellShape struct {
	leadX float64 // right edge of the leading consonant next to a right vowel
	leadY float64 // bottom edge of the leading consonant above a bottom vowel
	trail float64 // top edge of the trailing consonant
}

var (
	singleShape = cellShape{leadX: 0.6, leadY: 0.45, trail: 0.32}
	doubleShape = cellShape{leadX: 0.65, leadY: 0.48, trail: 0.36}
)

var vowelShapes = []struct {
	kind   jamo.Kind
	suffix string
}{
	{jamo.RightVowel, "r"},
	{jamo.BottomVowel, "b"},
	{jamo.MixedVowel, "m"},
}

// syllableTree returns the layout tree of a syllable with a vowel of the
// given kind.
func syllableTree(vowel jamo.Kind, trailing bool, s cellShape) Divider {
	lead := &Jamo{Kind: jamo.Leading}
	v := &Jamo{Kind: vowel}

	leadY := s.leadY
	if trailing {
		leadY += 0.05
	}

	var upper Divider
	switch vowel {
	case jamo.RightVowel:
		upper = &Vertical{X: s.leadX, Left: lead, Right: v}
	case jamo.BottomVowel:
		upper = &Horizontal{Y: leadY, Top: lead, Bottom: v}
	default:
		upper = &Mixed{X: s.leadX + 0.1, Y: leadY, TopLeft: lead, Rest: v}
	}
	if !trailing {
		return upper
	}
	return &Horizontal{Y: s.trail, Top: upper, Bottom: &Jamo{Kind: jamo.Trailing}}
}

func newLayout(name string, focus jamo.Subkind, vowel jamo.Kind, trailing bool, s cellShape) *Layout {
	tag := NoTrailing
	if trailing {
		tag = WithTrailing
		name += "t"
	}
	d := syllableTree(vowel, trailing, s)
	return &Layout{
		Name:     name,
		Tag:      tag,
		Focus:    focus.Kind(),
		Subkind:  focus,
		Elems:    Leaves(d),
		Dividers: d,
	}
}

func buildTemplates() Layouts {
	var res Layouts

	// leading consonants: every vowel shape, with and without trailing
	// consonant
	for _, lead := range []struct {
		sk     jamo.Subkind
		prefix string
		shape  cellShape
	}{
		{jamo.LeadingSingle, "l1", singleShape},
		{jamo.LeadingDouble, "l2", doubleShape},
	} {
		c := &Category{Subkind: lead.sk}
		for _, v := range vowelShapes {
			for _, trailing := range []bool{false, true} {
				c.Layouts = append(c.Layouts,
					newLayout(lead.prefix+v.suffix, lead.sk, v.kind, trailing, lead.shape))
			}
		}
		res = append(res, c)
	}

	// vowels: with and without trailing consonant
	for _, v := range vowelShapes {
		var sk jamo.Subkind
		switch v.kind {
		case jamo.RightVowel:
			sk = jamo.VowelRight
		case jamo.BottomVowel:
			sk = jamo.VowelBottom
		default:
			sk = jamo.VowelMixed
		}
		c := &Category{Subkind: sk}
		for _, trailing := range []bool{false, true} {
			c.Layouts = append(c.Layouts,
				newLayout("v"+v.suffix, sk, v.kind, trailing, singleShape))
		}
		res = append(res, c)
	}

	// trailing consonants: every vowel shape
	for _, trail := range []struct {
		sk     jamo.Subkind
		prefix string
		shape  cellShape
	}{
		{jamo.TrailingSingle, "t1", singleShape},
		{jamo.TrailingDouble, "t2", doubleShape},
		{jamo.TrailingStacked, "t3", doubleShape},
	} {
		c := &Category{Subkind: trail.sk}
		for _, v := range vowelShapes {
			l := newLayout(trail.prefix+v.suffix, trail.sk, v.kind, true, trail.shape)
			l.Name = trail.prefix + v.suffix
			c.Layouts = append(c.Layouts, l)
		}
		res = append(res, c)
	}

	return res
}

var templates = buildTemplates()

// Templates returns a fresh copy of the built-in layouts.
//
// There are 27 layouts in 8 categories: six for each kind of leading
// consonant (three vowel shapes, with and without trailing consonant), two
// for each vowel shape, and three for each kind of trailing consonant.
func Templates() Layouts {
	return templates.Clone()
}
