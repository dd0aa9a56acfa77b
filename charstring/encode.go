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

package charstring

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul/outline"
)

// Encode converts a glyph outline into a charstring in text form.
//
// The output has one line per operator.  Every contour starts with an
// rmoveto and all segments, including straight lines, are written using
// rrcurveto.  Coordinates are rounded to integers; the deltas are computed
// between the rounded absolute points, so that rounding errors do not
// accumulate along a contour.  If the glyph width differs from
// defaultWidth, the width is stored relative to nominalWidth as an extra
// operand on the first line.
func Encode(g *outline.Glyph, defaultWidth, nominalWidth float64) string {
	b := &strings.Builder{}

	first := true
	line := func(op string, args ...float64) {
		if first && g.Width != defaultWidth {
			b.WriteString(formatNumber(g.Width - nominalWidth))
			b.WriteByte(' ')
		}
		first = false
		for _, x := range args {
			b.WriteString(formatNumber(x))
			b.WriteByte(' ')
		}
		b.WriteString(op)
		b.WriteByte('\n')
	}

	var pos vec.Vec2
	for i := range g.Paths {
		p := &g.Paths[i]
		if len(p.Segments) == 0 {
			continue
		}
		start := round(p.Start)
		line("rmoveto", start.X-pos.X, start.Y-pos.Y)
		pos = start
		for _, seg := range p.Segments {
			c1 := round(seg.C1)
			c2 := round(seg.C2)
			end := round(seg.P)
			line("rrcurveto",
				c1.X-pos.X, c1.Y-pos.Y,
				c2.X-c1.X, c2.Y-c1.Y,
				end.X-c2.X, end.Y-c2.Y)
			pos = end
		}
	}
	line("endchar")

	return b.String()
}

func round(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: math.Round(p.X), Y: math.Round(p.Y)}
}

func formatNumber(x float64) string {
	if x == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
