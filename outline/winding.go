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

package outline

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// flattenSteps is the number of straight pieces used to approximate a
// curved segment for orientation and nesting tests.
const flattenSteps = 16

// IsClockwise reports whether the contour is traversed clockwise,
// in a coordinate system where the y-axis points up.
func (p *Path) IsClockwise() bool {
	return orientation(p.Flatten(flattenSteps)) > 0
}

// orientation returns the sum over all edges of (x2-x1)(y2+y1).
// The result is positive for clockwise polygons.
func orientation(poly []vec.Vec2) float64 {
	var s float64
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		s += (b.X - a.X) * (b.Y + a.Y)
	}
	return s
}

// crossings counts how often the horizontal ray from q towards -∞
// crosses the closed polygon.  Vertices exactly at the height of q are
// treated as lying above the ray.
func crossings(q vec.Vec2, poly []vec.Vec2) int {
	n := 0
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if (a.Y > q.Y) == (b.Y > q.Y) {
			continue
		}
		x := a.X + (q.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < q.X {
			n++
		}
	}
	return n
}

// NormalizeWinding returns a copy of g where contours at even nesting depth
// run clockwise and contours at odd nesting depth run counterclockwise.
//
// The nesting depth of a contour is determined by casting a horizontal
// ray from the contour's start point and counting the crossings with all
// other contours.
func NormalizeWinding(g *Glyph) *Glyph {
	polys := make([][]vec.Vec2, len(g.Paths))
	for i := range g.Paths {
		polys[i] = g.Paths[i].Flatten(flattenSteps)
	}

	res := &Glyph{
		Width: g.Width,
		Paths: make([]Path, len(g.Paths)),
	}
	for i := range g.Paths {
		p := &g.Paths[i]
		depth := 0
		for j, poly := range polys {
			if j != i {
				depth += crossings(p.Start, poly)
			}
		}
		wantClockwise := depth%2 == 0
		if (orientation(polys[i]) > 0) != wantClockwise {
			res.Paths[i] = p.Reverse()
		} else {
			res.Paths[i] = p.Clone()
		}
	}
	return res
}

func bboxCenter(r rect.Rect) vec.Vec2 {
	return vec.Vec2{X: (r.LLx + r.URx) / 2, Y: (r.LLy + r.URy) / 2}
}
