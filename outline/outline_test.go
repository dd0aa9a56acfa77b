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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// box returns a rectangular contour.  Clockwise boxes go up the left edge
// first.
func box(x0, y0, x1, y1 float64, clockwise bool) Path {
	pts := []vec.Vec2{{X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
	if !clockwise {
		pts = []vec.Vec2{{X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	}
	p := Path{Start: vec.Vec2{X: x0, Y: y0}}
	prev := p.Start
	for _, q := range pts {
		p.Segments = append(p.Segments, Line(prev, q))
		prev = q
	}
	return p
}

// blob returns a closed contour made from four curves, approximating a
// circle.
func blob(cx, cy, r float64) Path {
	const k = 0.5523
	p := Path{Start: vec.Vec2{X: cx + r, Y: cy}}
	p.Segments = []Segment{
		{C1: vec.Vec2{X: cx + r, Y: cy + k*r}, C2: vec.Vec2{X: cx + k*r, Y: cy + r}, P: vec.Vec2{X: cx, Y: cy + r}},
		{C1: vec.Vec2{X: cx - k*r, Y: cy + r}, C2: vec.Vec2{X: cx - r, Y: cy + k*r}, P: vec.Vec2{X: cx - r, Y: cy}},
		{C1: vec.Vec2{X: cx - r, Y: cy - k*r}, C2: vec.Vec2{X: cx - k*r, Y: cy - r}, P: vec.Vec2{X: cx, Y: cy - r}},
		{C1: vec.Vec2{X: cx + k*r, Y: cy - r}, C2: vec.Vec2{X: cx + r, Y: cy - k*r}, P: vec.Vec2{X: cx + r, Y: cy}},
	}
	return p
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestReverse(t *testing.T) {
	p := box(0, 0, 10, 20, true)
	if !p.IsClockwise() {
		t.Fatal("test box is not clockwise")
	}
	r := p.Reverse()
	if r.IsClockwise() {
		t.Error("reversed box is still clockwise")
	}
	if r.Start != p.End() {
		t.Errorf("reversed path starts at %v, want %v", r.Start, p.End())
	}
	rr := r.Reverse()
	if d := cmp.Diff(p, rr); d != "" {
		t.Errorf("double reverse differs (-want +got):\n%s", d)
	}
}

func TestReverseCurve(t *testing.T) {
	p := blob(0, 0, 10)
	r := p.Reverse()
	pc := p.Cubics(false)
	rc := r.Cubics(false)
	n := len(pc)
	for i := range pc {
		a := pc[i]
		b := rc[n-1-i]
		for _, tt := range []float64{0, 0.25, 0.5, 1} {
			pa := a.Eval(tt)
			pb := b.Eval(1 - tt)
			if math.Abs(pa.X-pb.X) > 1e-9 || math.Abs(pa.Y-pb.Y) > 1e-9 {
				t.Errorf("segment %d at %g: %v != %v", i, tt, pa, pb)
			}
		}
	}
}

func TestBBox(t *testing.T) {
	g := &Glyph{Paths: []Path{blob(100, 200, 50), box(0, 0, 10, 10, true)}}
	got := BBox(g)
	want := rect.Rect{LLx: 0, LLy: 0, URx: 150, URy: 250}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 0.05)); d != "" {
		t.Errorf("BBox mismatch (-want +got):\n%s", d)
	}

	empty := BBox(&Glyph{})
	if !IsEmpty(empty) {
		t.Errorf("empty glyph has bbox %v", empty)
	}
}

func TestCubicBBox(t *testing.T) {
	c := Cubic{
		P0: vec.Vec2{X: 0, Y: 0},
		P1: vec.Vec2{X: 0, Y: 100},
		P2: vec.Vec2{X: 100, Y: 100},
		P3: vec.Vec2{X: 100, Y: 0},
	}
	got := c.BBox()
	want := rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 75}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("BBox mismatch (-want +got):\n%s", d)
	}

	a, b := c.Split(0.5)
	if d := cmp.Diff(a.P3, c.Eval(0.5), approx); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(b.Eval(0.5), c.Eval(0.75), approx); d != "" {
		t.Error(d)
	}
	s := c.Subsegment(0.25, 0.75)
	if d := cmp.Diff(s.Eval(0.5), c.Eval(0.5), approx); d != "" {
		t.Error(d)
	}
}

func TestSolvers(t *testing.T) {
	cases := []struct {
		roots   []float64
		a, b, c float64
	}{
		{[]float64{-2, 3}, 1, -1, -6},
		{[]float64{1}, 1, -2, 1},
		{nil, 1, 0, 1},
		{[]float64{-2}, 0, 1, 2},
	}
	for _, tc := range cases {
		got := SolveQuadratic(tc.a, tc.b, tc.c)
		if d := cmp.Diff(tc.roots, got, approx); d != "" {
			t.Errorf("SolveQuadratic(%g, %g, %g): %s", tc.a, tc.b, tc.c, d)
		}
	}

	// (x-1)(x-2)(x-3) = x^3 - 6x^2 + 11x - 6
	got := SolveCubic(1, -6, 11, -6)
	want := []float64{1, 2, 3}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6), cmpopts.SortSlices(func(a, b float64) bool { return a < b })); d != "" {
		t.Errorf("SolveCubic: %s", d)
	}

	unit := SolveCubicInUnitInterval(1, -6, 11, -6)
	if len(unit) != 1 || math.Abs(unit[0]-1) > 1e-9 {
		t.Errorf("SolveCubicInUnitInterval: %v", unit)
	}
}

func TestIntersect(t *testing.T) {
	left := box(100, 100, 400, 800, true)
	right := box(600, 100, 900, 800, true)
	straddle := box(450, 300, 560, 400, true) // 45% left of x=500
	dot := Path{Start: vec.Vec2{X: 200, Y: 200}}
	g := &Glyph{Width: 1000, Paths: []Path{left, right, straddle, dot}}

	regions := []rect.Rect{{LLx: 0, LLy: 0, URx: 500, URy: 1000}}
	got := Intersect(g, regions)
	if got.Width != 1000 {
		t.Errorf("width changed to %g", got.Width)
	}
	want := []Path{left, dot}
	if d := cmp.Diff(want, got.Paths); d != "" {
		t.Errorf("Intersect mismatch (-want +got):\n%s", d)
	}

	// split regions add up
	regions = []rect.Rect{
		{LLx: 440, LLy: 0, URx: 500, URy: 1000},
		{LLx: 500, LLy: 0, URx: 520, URy: 1000},
	}
	got = Intersect(g, regions)
	if len(got.Paths) != 1 || got.Paths[0].Start != straddle.Start {
		t.Errorf("Intersect with split regions: %v", got.Paths)
	}

	// the result does not share memory with the input
	got = Intersect(g, []rect.Rect{{LLx: 0, LLy: 0, URx: 1000, URy: 1000}})
	got.Paths[0].Segments[0].P.X = -1
	if g.Paths[0].Segments[0].P.X == -1 {
		t.Error("Intersect result aliases the input")
	}
}

func TestNormalizeWinding(t *testing.T) {
	outer := box(0, 0, 100, 100, false)
	inner := box(20, 20, 80, 80, true)
	island := box(40, 40, 60, 60, false)
	other := blob(300, 50, 30).Reverse()
	g := &Glyph{Paths: []Path{outer, inner, island, other}}

	res := NormalizeWinding(g)
	wantCW := []bool{true, false, true, true}
	for i := range res.Paths {
		if got := res.Paths[i].IsClockwise(); got != wantCW[i] {
			t.Errorf("contour %d: clockwise=%t, want %t", i, got, wantCW[i])
		}
	}

	again := NormalizeWinding(res)
	if d := cmp.Diff(res, again); d != "" {
		t.Errorf("NormalizeWinding is not idempotent:\n%s", d)
	}
	if g.Paths[0].IsClockwise() {
		t.Error("input was modified")
	}
}

func TestReducePaths(t *testing.T) {
	g := &Glyph{
		Width: 500,
		Paths: []Path{
			blob(0, 0, 100),
			box(0, 0, 50, 50, true),
		},
	}
	r1 := ReducePaths(g)
	r2 := ReducePaths(r1)
	if d := cmp.Diff(r1, r2, approx); d != "" {
		t.Errorf("ReducePaths is not idempotent (-first +second):\n%s", d)
	}

	// the box gains an explicit closing segment
	if n := len(r1.Paths[1].Segments); n != 4 {
		t.Errorf("box has %d segments, want 4", n)
	}
	if r1.Paths[1].End() != r1.Paths[1].Start {
		t.Error("box is not explicitly closed")
	}
	// the blob was already closed
	if n := len(r1.Paths[0].Segments); n != 4 {
		t.Errorf("blob has %d segments, want 4", n)
	}

	// reduced curves stay close to the original
	for i, c := range g.Paths[0].Cubics(false) {
		rc := r1.Paths[0].Segments[i].Cubic(c.P0)
		d := c.Eval(0.5).Sub(rc.Eval(0.5)).Length()
		if d > 2 {
			t.Errorf("segment %d moved by %g", i, d)
		}
	}
}

func TestMapRect(t *testing.T) {
	from := rect.Rect{LLx: 10, LLy: 20, URx: 110, URy: 70}
	to := rect.Rect{LLx: 0, LLy: 0, URx: 50, URy: 100}
	g := &Glyph{Paths: []Path{box(10, 20, 110, 70, true)}}
	got := BBox(g.Transform(MapRect(from, to)))
	if d := cmp.Diff(to, got, approx); d != "" {
		t.Errorf("MapRect mismatch (-want +got):\n%s", d)
	}
}

func TestRasterize(t *testing.T) {
	g := &Glyph{Paths: []Path{box(0, 0, 50, 100, true)}}
	img := Rasterize(g, rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 100}, 20, 20)
	if c := Coverage(img); math.Abs(c-0.5) > 0.05 {
		t.Errorf("coverage %g, want 0.5", c)
	}
	if img.AlphaAt(2, 10).A == 0 || img.AlphaAt(17, 10).A != 0 {
		t.Error("box rendered on the wrong side")
	}

	// a hole with opposite orientation is left empty
	g = NormalizeWinding(&Glyph{Paths: []Path{
		box(0, 0, 100, 100, true),
		box(25, 25, 75, 75, true),
	}})
	img = Rasterize(g, rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 100}, 20, 20)
	if img.AlphaAt(10, 10).A != 0 {
		t.Error("hole was filled")
	}
	if c := Coverage(img); math.Abs(c-0.75) > 0.05 {
		t.Errorf("coverage %g, want 0.75", c)
	}
}

func TestPathData(t *testing.T) {
	g := &Glyph{Paths: []Path{box(0, 0, 1, 1, true), blob(0, 0, 1)}}
	d := g.PathData()
	// box: move, 3 lines, close; blob: move, 4 curves, close
	if len(d.Cmds) != 5+6 {
		t.Errorf("got %d commands, want 11", len(d.Cmds))
	}
	if len(d.Coords) != 4+1+12 {
		t.Errorf("got %d coordinates, want 17", len(d.Coords))
	}
}
