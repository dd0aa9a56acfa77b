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
	"sort"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Cubic is a stand-alone cubic Bézier curve.
type Cubic struct {
	P0, P1, P2, P3 vec.Vec2
}

// Cubic returns the segment as a stand-alone curve, starting at p0.
func (s Segment) Cubic(p0 vec.Vec2) Cubic {
	return Cubic{P0: p0, P1: s.C1, P2: s.C2, P3: s.P}
}

// Segment returns the curve as a contour segment.
func (c Cubic) Segment() Segment {
	return Segment{C1: c.P1, C2: c.P2, P: c.P3}
}

// Eval evaluates the curve at parameter t.
func (c Cubic) Eval(t float64) vec.Vec2 {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return vec.Vec2{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Deriv returns the derivative of the curve at parameter t.
func (c Cubic) Deriv(t float64) vec.Vec2 {
	mt := 1 - t
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	return vec.Vec2{
		X: 3 * (d0.X*mt*mt + 2*d1.X*mt*t + d2.X*t*t),
		Y: 3 * (d0.Y*mt*mt + 2*d1.Y*mt*t + d2.Y*t*t),
	}
}

// StartTangent returns the direction in which the curve leaves P0.
// Degenerate control points are skipped.  The zero vector is returned for
// curves which consist of a single point.
func (c Cubic) StartTangent() vec.Vec2 {
	for _, p := range []vec.Vec2{c.P1, c.P2, c.P3} {
		if d := p.Sub(c.P0); d != (vec.Vec2{}) {
			return d.Normalize()
		}
	}
	return vec.Vec2{}
}

// EndTangent returns the direction in which the curve arrives at P3.
func (c Cubic) EndTangent() vec.Vec2 {
	for _, p := range []vec.Vec2{c.P2, c.P1, c.P0} {
		if d := c.P3.Sub(p); d != (vec.Vec2{}) {
			return d.Normalize()
		}
	}
	return vec.Vec2{}
}

// Split divides the curve at parameter t using de Casteljau's algorithm.
func (c Cubic) Split(t float64) (Cubic, Cubic) {
	p01 := lerp(c.P0, c.P1, t)
	p12 := lerp(c.P1, c.P2, t)
	p23 := lerp(c.P2, c.P3, t)
	p012 := lerp(p01, p12, t)
	p123 := lerp(p12, p23, t)
	mid := lerp(p012, p123, t)
	return Cubic{c.P0, p01, p012, mid}, Cubic{mid, p123, p23, c.P3}
}

// Subsegment returns the part of the curve between parameters t0 and t1.
func (c Cubic) Subsegment(t0, t1 float64) Cubic {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) / 3
	return Cubic{
		P0: p0,
		P1: p0.Add(c.Deriv(t0).Mul(scale)),
		P2: p3.Sub(c.Deriv(t1).Mul(scale)),
		P3: p3,
	}
}

// Extrema returns the parameter values in [0, 1] where the x or y
// coordinate of the curve has a local extremum.
func (c Cubic) Extrema() []float64 {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	res := make([]float64, 0, 4)
	res = append(res, SolveQuadraticInUnitInterval(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	res = append(res, SolveQuadraticInUnitInterval(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	sort.Float64s(res)
	return res
}

// BBox returns the tight bounding box of the curve.
func (c Cubic) BBox() rect.Rect {
	bbox := extend(extend(EmptyBounds, c.P0), c.P3)
	if Contains(bbox, c.P1) && Contains(bbox, c.P2) {
		return bbox
	}
	for _, t := range c.Extrema() {
		bbox = extend(bbox, c.Eval(t))
	}
	return bbox
}

// Hull returns the bounding box of the control polygon.
func (c Cubic) Hull() rect.Rect {
	bbox := EmptyBounds
	for _, p := range []vec.Vec2{c.P0, c.P1, c.P2, c.P3} {
		bbox = extend(bbox, p)
	}
	return bbox
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}
