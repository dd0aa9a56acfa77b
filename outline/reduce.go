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

import "seehuhn.de/go/geom/vec"

// ReducePaths returns a copy of g where every curved segment is replaced by
// the cubic representation of its best quadratic approximation, and where
// every contour is explicitly closed.  The result is suitable as input for
// emboldening, where the thin and the bold outline must have the same
// segment structure.
//
// ReducePaths is idempotent.
func ReducePaths(g *Glyph) *Glyph {
	res := &Glyph{
		Width: g.Width,
		Paths: make([]Path, len(g.Paths)),
	}
	for i := range g.Paths {
		p := &g.Paths[i]
		q := Path{
			Start:    p.Start,
			Segments: make([]Segment, 0, len(p.Segments)+1),
		}
		prev := p.Start
		for _, seg := range p.Segments {
			if !seg.IsStraight(prev) {
				seg = reduceSegment(prev, seg)
			}
			q.Segments = append(q.Segments, seg)
			prev = seg.P
		}
		if prev != p.Start {
			q.Segments = append(q.Segments, Line(prev, p.Start))
		}
		res.Paths[i] = q
	}
	return res
}

// reduceSegment degree-reduces a cubic to the quadratic with control point
// (3(C1+C2) - (P0+P3)) / 4 and elevates it back to a cubic.
func reduceSegment(p0 vec.Vec2, seg Segment) Segment {
	p3 := seg.P
	q := seg.C1.Add(seg.C2).Mul(3).Sub(p0.Add(p3)).Mul(0.25)
	return Segment{
		C1: p0.Add(q.Sub(p0).Mul(2.0 / 3)),
		C2: p3.Add(q.Sub(p3).Mul(2.0 / 3)),
		P:  p3,
	}
}
