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

package bold

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul/outline"
)

// jitter is a linear congruential generator which produces small
// deterministic perturbations.  Perturbing the control points avoids
// degenerate configurations, for example collinear straight segments,
// in the curve intersection search.
type jitter struct {
	state     uint64
	magnitude float64
}

func newJitter(seed uint64, magnitude float64) *jitter {
	return &jitter{state: seed, magnitude: magnitude}
}

// next returns a pseudo-random value in [-magnitude, magnitude).
func (r *jitter) next() float64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	u := float64(r.state>>11) / (1 << 53)
	return (2*u - 1) * r.magnitude
}

func (r *jitter) perturb(c outline.Cubic) outline.Cubic {
	move := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: p.X + r.next(), Y: p.Y + r.next()}
	}
	return outline.Cubic{P0: move(c.P0), P1: move(c.P1), P2: move(c.P2), P3: move(c.P3)}
}

type hit struct {
	s, t float64 // curve parameters on the first and second curve
}

const (
	intersectTolerance = 1e-4
	intersectMaxDepth  = 32
	intersectMaxHits   = 16
)

// intersectCurves finds the intersections of p and q by recursive
// subdivision, discarding pairs of pieces whose control polygon bounding
// boxes do not overlap.
func intersectCurves(p, q outline.Cubic) []hit {
	var hits []hit
	var rec func(a outline.Cubic, a0, a1 float64, b outline.Cubic, b0, b1 float64, depth int)
	rec = func(a outline.Cubic, a0, a1 float64, b outline.Cubic, b0, b1 float64, depth int) {
		if len(hits) >= intersectMaxHits {
			return
		}
		ha := a.Hull()
		hb := b.Hull()
		if !overlaps(ha, hb) {
			return
		}
		if depth >= intersectMaxDepth || size(ha) < intersectTolerance && size(hb) < intersectTolerance {
			h := hit{s: (a0 + a1) / 2, t: (b0 + b1) / 2}
			for _, old := range hits {
				if math.Abs(old.s-h.s) < 1e-6 && math.Abs(old.t-h.t) < 1e-6 {
					return
				}
			}
			hits = append(hits, h)
			return
		}

		if size(ha) >= size(hb) {
			l, r := a.Split(0.5)
			am := (a0 + a1) / 2
			rec(l, a0, am, b, b0, b1, depth+1)
			rec(r, am, a1, b, b0, b1, depth+1)
		} else {
			l, r := b.Split(0.5)
			bm := (b0 + b1) / 2
			rec(a, a0, a1, l, b0, bm, depth+1)
			rec(a, a0, a1, r, bm, b1, depth+1)
		}
	}
	rec(p, 0, 1, q, 0, 1, 0)
	return hits
}

func overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}

func size(r rect.Rect) float64 {
	return max(r.URx-r.LLx, r.URy-r.LLy)
}
