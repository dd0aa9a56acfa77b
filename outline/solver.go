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

import "math"

// SolveQuadratic finds the real roots of a x^2 + b x + c = 0.
// The roots are returned in ascending order.
//
// If a is zero or nearly zero, the equation is solved as a linear equation.
// If all coefficients are zero, a single root 0 is returned.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if c == 0 && b == 0 {
			return []float64{0}
		}
		return nil
	}

	arg := sc1*sc1 - 4*sc0
	var root1 float64
	if !isFinite(arg) {
		root1 = -sc1
	} else if arg < 0 {
		return nil
	} else if arg == 0 {
		return []float64{-0.5 * sc1}
	} else {
		// avoid cancellation, see https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

// SolveCubic finds the real roots of a x^3 + b x^2 + c x + d = 0.
// The roots are not sorted.
//
// The method follows https://momentsingraphics.de/CubicRoots.html .
func SolveCubic(a, b, c, d float64) []float64 {
	const oneThird = 1.0 / 3.0
	aRecip := 1 / a
	c2 := b * (oneThird * aRecip)
	c1 := c * (oneThird * aRecip)
	c0 := d * aRecip
	if !isFinite(c0) || !isFinite(c1) || !isFinite(c2) {
		return SolveQuadratic(b, c, d)
	}

	d0 := -c2*c2 + c1
	d1 := -c1*c2 + c0
	d2 := c2*c0 - c1*c1
	disc := 4*d0*d2 - d1*d1
	de := -2*c2*d0 + d1

	if disc < 0 {
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	} else if disc == 0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2*t1 - c2}
	}

	th := math.Atan2(math.Sqrt(disc), -de) * oneThird
	thSin, thCos := math.Sincos(th)
	ss3 := thSin * math.Sqrt(3)
	t := 2 * math.Sqrt(-d0)
	return []float64{
		t*thCos - c2,
		t*0.5*(-thCos+ss3) - c2,
		t*0.5*(-thCos-ss3) - c2,
	}
}

// SolveQuadraticInUnitInterval returns the roots of a x^2 + b x + c = 0
// which lie in [0, 1].
func SolveQuadraticInUnitInterval(a, b, c float64) []float64 {
	return unitRoots(SolveQuadratic(a, b, c))
}

// SolveCubicInUnitInterval returns the roots of a x^3 + b x^2 + c x + d = 0
// which lie in [0, 1].
func SolveCubicInUnitInterval(a, b, c, d float64) []float64 {
	return unitRoots(SolveCubic(a, b, c, d))
}

func unitRoots(roots []float64) []float64 {
	const eps = 1e-12
	var res []float64
	for _, r := range roots {
		if r < -eps || r > 1+eps {
			continue
		}
		res = append(res, min(max(r, 0), 1))
	}
	return res
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
