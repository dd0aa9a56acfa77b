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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul/outline"
)

func polygon(pts ...vec.Vec2) outline.Path {
	p := outline.Path{Start: pts[0]}
	prev := pts[0]
	for _, q := range pts[1:] {
		p.Segments = append(p.Segments, outline.Line(prev, q))
		prev = q
	}
	return p
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

var approx = cmpopts.EquateApprox(0, 1e-6)

func TestSquare(t *testing.T) {
	square := polygon(pt(0, 0), pt(0, 100), pt(100, 100), pt(100, 0))
	g := &outline.Glyph{Width: 500, Paths: []outline.Path{square}}

	for _, d := range []float64{5, 10, 30} {
		res, unresolved := Synthesize(g, d, nil)
		if len(unresolved) != 0 {
			t.Errorf("d=%g: unresolved joints: %v", d, unresolved)
		}
		got := outline.BBox(res)
		want := rect.Rect{LLx: -d, LLy: -d, URx: 100 + d, URy: 100 + d}
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("d=%g: bbox mismatch (-want +got):\n%s", d, diff)
		}
		if res.Width != 500 {
			t.Errorf("d=%g: width changed to %g", d, res.Width)
		}
		p := res.Paths[0]
		if len(p.Segments) != 4 {
			t.Errorf("d=%g: %d segments, want 4", d, len(p.Segments))
		}
		if p.End() != p.Start {
			t.Errorf("d=%g: contour not closed", d)
		}
	}
}

func TestHole(t *testing.T) {
	outer := polygon(pt(0, 0), pt(0, 100), pt(100, 100), pt(100, 0))
	inner := polygon(pt(30, 30), pt(70, 30), pt(70, 70), pt(30, 70))
	g := outline.NormalizeWinding(&outline.Glyph{Paths: []outline.Path{outer, inner}})

	res, unresolved := Synthesize(g, 5, nil)
	if len(unresolved) != 0 {
		t.Fatalf("unresolved joints: %v", unresolved)
	}
	got := res.Paths[1].BBox()
	want := rect.Rect{LLx: 35, LLy: 35, URx: 65, URy: 65}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("hole bbox mismatch (-want +got):\n%s", diff)
	}
}

func TestConcaveCorner(t *testing.T) {
	ell := polygon(pt(0, 0), pt(0, 100), pt(50, 100), pt(50, 50), pt(100, 50), pt(100, 0))
	g := &outline.Glyph{Paths: []outline.Path{ell}}

	res, unresolved := Synthesize(g, 10, nil)
	if len(unresolved) != 0 {
		t.Fatalf("unresolved joints: %v", unresolved)
	}
	got := outline.BBox(res)
	want := rect.Rect{LLx: -10, LLy: -10, URx: 110, URy: 110}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("bbox mismatch (-want +got):\n%s", diff)
	}

	// the concave corner moves from (50, 50) to (60, 60)
	found := false
	for _, seg := range res.Paths[0].Segments {
		if seg.P.Sub(pt(60, 60)).Length() < 0.01 {
			found = true
		}
	}
	if !found {
		t.Errorf("no corner near (60, 60) in %v", res.Paths[0].Segments)
	}

	box := rect.Rect{LLx: -20, LLy: -20, URx: 120, URy: 120}
	img := outline.Rasterize(res, box, 140, 140)
	area := outline.Coverage(img) * 140 * 140
	wantArea := 120.0*120 - 50*50
	if math.Abs(area-wantArea) > 0.02*wantArea {
		t.Errorf("filled area %g, want %g", area, wantArea)
	}
}

func TestParallelJoint(t *testing.T) {
	spike := polygon(pt(0, 0), pt(100, 0))
	g := &outline.Glyph{Paths: []outline.Path{spike}}

	res, unresolved := Synthesize(g, 10, nil)
	if len(unresolved) != 2 {
		t.Fatalf("got %d unresolved joints, want 2", len(unresolved))
	}
	var err error = unresolved[0]
	var u UnresolvedJoint
	if !errors.As(err, &u) || u.Contour != 0 {
		t.Errorf("unexpected joint %v", err)
	}
	p := res.Paths[0]
	if p.End() != p.Start {
		t.Error("contour not closed")
	}
}

func TestOffsetCurve(t *testing.T) {
	// a quarter circle of radius 100, traversed counterclockwise
	const k = 55.23
	c := outline.Cubic{P0: pt(100, 0), P1: pt(100, k), P2: pt(k, 100), P3: pt(0, 100)}
	off := offsetCubic(c, 10) // towards the center
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		r := off.Eval(tt).Length()
		if math.Abs(r-90) > 1.5 {
			t.Errorf("t=%g: radius %g, want 90", tt, r)
		}
	}

	// straight lines stay straight
	line := outline.Line(pt(0, 0), pt(0, 100)).Cubic(pt(0, 0))
	off = offsetCubic(line, 10)
	if !off.Segment().IsStraight(off.P0) {
		t.Errorf("offset line is not straight: %v", off)
	}
	if diff := cmp.Diff(pt(-10, 0), off.P0, approx); diff != "" {
		t.Error(diff)
	}
}

func TestIntersectCurves(t *testing.T) {
	a := outline.Line(pt(0, 0), pt(100, 100)).Cubic(pt(0, 0))
	b := outline.Line(pt(0, 100), pt(100, 0)).Cubic(pt(0, 100))
	r := newJitter(1, 0.001)
	hits := intersectCurves(r.perturb(a), r.perturb(b))
	if len(hits) == 0 {
		t.Fatal("no intersection found")
	}
	p := a.Eval(hits[0].s)
	if p.Sub(pt(50, 50)).Length() > 0.1 {
		t.Errorf("intersection at %v, want (50, 50)", p)
	}

	c := outline.Line(pt(200, 0), pt(300, 100)).Cubic(pt(200, 0))
	if hits := intersectCurves(a, c); len(hits) != 0 {
		t.Errorf("disjoint curves intersect: %v", hits)
	}
}

func TestJitterDeterministic(t *testing.T) {
	r1 := newJitter(42, 0.001)
	r2 := newJitter(42, 0.001)
	for range 100 {
		x, y := r1.next(), r2.next()
		if x != y {
			t.Fatal("same seed gives different values")
		}
		if math.Abs(x) > 0.001 {
			t.Fatalf("jitter %g too large", x)
		}
	}
}

func TestWeights(t *testing.T) {
	c := &Compensation{Stroke: 80}
	qx, qy := c.Weights(40, 1, 1)
	if qx != 0 || qy != 0 {
		t.Errorf("unscaled glyph: got %g, %g", qx, qy)
	}

	qx, qy = c.Weights(40, 0.5, 0.5)
	want := math.Pow(0.5, 0.6)/0.5 - 1
	if math.Abs(qx-want) > 1e-9 || math.Abs(qy-want) > 1e-9 {
		t.Errorf("got %g, %g, want %g", qx, qy, want)
	}

	// the less scaled direction needs less compensation
	qx, qy = c.Weights(40, 1, 0.4)
	if qx != 0 || !(qy > 0) {
		t.Errorf("got %g, %g", qx, qy)
	}

	// weights are clamped
	qx, _ = c.Weights(1, 0.1, 0.1)
	if qx != 1 {
		t.Errorf("got %g, want 1", qx)
	}
}

func TestAdjust(t *testing.T) {
	square := polygon(pt(0, 0), pt(0, 100), pt(100, 100), pt(100, 0), pt(0, 0))
	thin := &outline.Glyph{Paths: []outline.Path{square}}
	heavy, _ := Synthesize(thin, 20, nil)

	c := &Compensation{Stroke: 40}
	res, err := c.Adjust(thin, heavy, 20, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	q, _ := c.Weights(20, 0.5, 0.5)
	got := outline.BBox(res)
	want := rect.Rect{LLx: -20 * q, LLy: -20 * q, URx: 100 + 20*q, URy: 100 + 20*q}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("bbox mismatch (-want +got):\n%s", diff)
	}

	_, err = c.Adjust(thin, &outline.Glyph{}, 20, 0.5, 0.5)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) || mismatch.Contour != -1 {
		t.Errorf("expected contour count mismatch, got %v", err)
	}
}

func TestApply(t *testing.T) {
	square := polygon(pt(0, 0), pt(0, 100), pt(100, 100), pt(100, 0))
	g := &outline.Glyph{Paths: []outline.Path{square}}
	c := &Compensation{Stroke: 20}
	res, unresolved, err := c.Apply(g, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(unresolved) != 0 {
		t.Errorf("unresolved joints: %v", unresolved)
	}
	bbox := outline.BBox(res)
	if !(bbox.LLx < 0 && bbox.LLx > -10) {
		t.Errorf("unexpected bbox %v", bbox)
	}
	if g.Paths[0].Segments[0].P != pt(0, 100) {
		t.Error("input was modified")
	}
}
