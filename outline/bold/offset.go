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

// Package bold synthesizes heavier versions of glyph outlines.
//
// [Synthesize] moves every contour outwards by a fixed distance and repairs
// the corners where the offset segments no longer meet.  [Compensation]
// uses an emboldened outline to keep the stroke weight of scaled-down jamo
// close to the weight of full-size glyphs.
package bold

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul/outline"
)

// Options control the corner repair in [Synthesize].
// The zero value selects the defaults.
type Options struct {
	// JoinTolerance is the largest gap, in design units, which is closed
	// by simply moving the start of the next segment.  Default: 2.
	JoinTolerance float64

	// MaxBacktrack is the number of already repaired segments which are
	// searched for an intersection at concave corners.  Default: 5.
	MaxBacktrack int

	// Jitter is the magnitude of the random perturbation applied to control
	// points before intersecting curves.  Default: 0.001.
	Jitter float64

	// Seed initializes the pseudo-random generator used for jitter.
	// Equal seeds give identical results.
	Seed uint64
}

func (o *Options) withDefaults() Options {
	var res Options
	if o != nil {
		res = *o
	}
	if res.JoinTolerance <= 0 {
		res.JoinTolerance = 2
	}
	if res.MaxBacktrack <= 0 {
		res.MaxBacktrack = 5
	}
	if res.Jitter <= 0 {
		res.Jitter = 0.001
	}
	return res
}

// Offset moves every segment of g by distance d to the left of its
// direction of travel.  For clockwise outer contours and counterclockwise
// holes this enlarges the filled area.
//
// The result contains one slice of curves for every contour.  The closing
// line of each contour is included explicitly.  Adjacent curves in the
// result do not in general meet.
func Offset(g *outline.Glyph, d float64) [][]outline.Cubic {
	res := make([][]outline.Cubic, len(g.Paths))
	for i := range g.Paths {
		for _, c := range g.Paths[i].Cubics(true) {
			if isPoint(c) {
				continue
			}
			res[i] = append(res[i], offsetCubic(c, d))
		}
	}
	return res
}

// offsetCubic offsets the control polygon of c, following Tiller and
// Hanson.  Inner control points are placed at the intersections of the
// offset control legs.
func offsetCubic(c outline.Cubic, d float64) outline.Cubic {
	p0, p1, p2, p3 := c.P0, c.P1, c.P2, c.P3
	if p1 == p0 {
		p1 = lerp(p0, p3, 0.001)
	}
	if p2 == p3 {
		p2 = lerp(p3, p0, 0.001)
	}

	n01 := leftNormal(p1.Sub(p0))
	n12 := leftNormal(p2.Sub(p1))
	n23 := leftNormal(p3.Sub(p2))
	if n12 == (vec.Vec2{}) {
		n12 = leftNormal(p3.Sub(p0))
	}

	q0 := p0.Add(n01.Mul(d))
	q3 := p3.Add(n23.Mul(d))

	q1, ok := lineIntersection(q0, p1.Sub(p0), p1.Add(n12.Mul(d)), p2.Sub(p1))
	if !ok {
		q1 = p1.Add(n01.Mul(d))
	}
	q2, ok := lineIntersection(q3, p3.Sub(p2), p2.Add(n12.Mul(d)), p2.Sub(p1))
	if !ok {
		q2 = p2.Add(n23.Mul(d))
	}
	return outline.Cubic{P0: q0, P1: q1, P2: q2, P3: q3}
}

// lineIntersection intersects the lines p + s·u and q + t·v.
// Nearly parallel lines are reported as not intersecting.
func lineIntersection(p, u, q, v vec.Vec2) (vec.Vec2, bool) {
	den := cross(u, v)
	lu := u.Length()
	lv := v.Length()
	if lu == 0 || lv == 0 || math.Abs(den) < 1e-6*lu*lv {
		return vec.Vec2{}, false
	}
	s := cross(q.Sub(p), v) / den
	return p.Add(u.Mul(s)), true
}

// rayParams solves p + s·u = q + t·v for s and t.
func rayParams(p, u, q, v vec.Vec2) (s, t float64, ok bool) {
	den := cross(u, v)
	lu := u.Length()
	lv := v.Length()
	if lu == 0 || lv == 0 || math.Abs(den) < 1e-9*lu*lv {
		return 0, 0, false
	}
	w := q.Sub(p)
	return cross(w, v) / den, cross(w, u) / den, true
}

// leftNormal returns the unit vector obtained by rotating v by 90 degrees
// counterclockwise.  The zero vector is returned unchanged.
func leftNormal(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return vec.Vec2{}
	}
	return vec.Vec2{X: -v.Y / l, Y: v.X / l}
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

func isPoint(c outline.Cubic) bool {
	return c.P0 == c.P1 && c.P0 == c.P2 && c.P0 == c.P3
}
