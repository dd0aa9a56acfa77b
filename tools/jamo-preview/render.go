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

package main

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/f64"
	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/fonttable"
	"seehuhn.de/go/hangul/jamo"
	"seehuhn.de/go/hangul/outline"
)

var (
	undHang  = language.MustParse("und-Hang")
	features = map[string]bool{"ccmp": true, "ljmo": true, "vjmo": true, "tjmo": true}
)

// shades are used for increasing pixel coverage.
const shades = " .:-=+*#%@"

type renderer struct {
	font   *fonttable.Font
	direct bool
}

// line is a shaped piece of text.
type line struct {
	Names     []string
	Glyph     *outline.Glyph // all glyphs, positioned along the baseline
	Asc, Desc float64
}

// Shape converts a character into positioned glyphs.  Precomposed
// syllables are decomposed into jamo and shaped using the GSUB table,
// unless the renderer is in direct mode.
func (r *renderer) Shape(c rune) (*line, error) {
	seq := []rune{c}
	if l, v, t, ok := jamo.Decompose(c); ok && !r.direct {
		seq = []rune{l, v}
		if t != 0 {
			seq = append(seq, t)
		}
	}

	gids := r.font.GlyphIDs()
	var in []glyph.ID
	for _, x := range seq {
		name, ok := r.font.GlyphName(x)
		if !ok {
			return nil, fmt.Errorf("no glyph for %s", jamo.Name(x))
		}
		in = append(in, gids[name])
	}
	out := in
	if !r.direct && r.font.GSUB != nil {
		out = r.font.GSUB.Apply(in, undHang, features)
	}

	asc, desc := r.font.VerticalExtent()
	res := &line{
		Glyph: &outline.Glyph{},
		Asc:   asc,
		Desc:  desc,
	}
	for _, gid := range out {
		name := r.font.GlyphOrder[gid]
		code, fd, _ := r.font.CharString(name)
		g, err := r.font.Decoder(fd).Decode(code)
		if err != nil {
			return nil, fmt.Errorf("glyph %s: %w", name, err)
		}
		moved := g.Transform(f64.Aff3{1, 0, res.Glyph.Width, 0, 1, 0})
		res.Glyph.Paths = append(res.Glyph.Paths, moved.Paths...)
		res.Glyph.Width += float64(r.font.HMetrics[name].Advance)
		res.Names = append(res.Names, name)
	}
	return res, nil
}

// Render draws the line as text, using the given number of columns.
// Every character cell is assumed to be twice as high as it is wide.
func (l *line) Render(cols int) []string {
	box := rect.Rect{LLx: 0, LLy: l.Desc, URx: math.Max(l.Glyph.Width, 1000), URy: l.Asc}
	bbox := outline.BBox(l.Glyph)
	if !outline.IsEmpty(bbox) {
		box.URx = math.Max(box.URx, bbox.URx)
	}
	rows := int(math.Round(float64(cols) * (box.URy - box.LLy) / (box.URx - box.LLx) / 2))
	if cols <= 0 || rows <= 0 {
		return nil
	}

	img := outline.Rasterize(l.Glyph, box, cols, rows)
	res := make([]string, rows)
	for y := range rows {
		b := &strings.Builder{}
		for x := range cols {
			a := int(img.AlphaAt(x, y).A)
			b.WriteByte(shades[a*(len(shades)-1)/255])
		}
		res[y] = strings.TrimRight(b.String(), " ")
	}
	return res
}
