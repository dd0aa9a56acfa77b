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
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul/outline"
)

func TestDecodeSquare(t *testing.T) {
	code := "0 0 rmoveto 0 500 rlineto 500 0 rlineto 0 -500 rlineto endchar"
	g, err := Decode(code, 500, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := &outline.Glyph{
		Width: 500,
		Paths: []outline.Path{
			{
				Start: vec.Vec2{X: 0, Y: 0},
				Segments: []outline.Segment{
					outline.Line(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 0, Y: 500}),
					outline.Line(vec.Vec2{X: 0, Y: 500}, vec.Vec2{X: 500, Y: 500}),
					outline.Line(vec.Vec2{X: 500, Y: 500}, vec.Vec2{X: 500, Y: 0}),
				},
			},
		},
	}
	if d := cmp.Diff(want, g); d != "" {
		t.Error(d)
	}
}

func TestDecodeWidth(t *testing.T) {
	const (
		defaultWidth = 1000
		nominalWidth = 600
	)
	cases := []struct {
		code  string
		width float64
	}{
		{"endchar", defaultWidth},
		{"50 endchar", nominalWidth + 50},
		{"0 0 rmoveto 0 10 rlineto 10 0 rlineto endchar", defaultWidth},
		{"-20 0 0 rmoveto 0 10 rlineto 10 0 rlineto endchar", nominalWidth - 20},
		{"5 hmoveto 0 10 rlineto 10 0 rlineto endchar", defaultWidth},
		{"7 5 hmoveto 0 10 rlineto 10 0 rlineto endchar", nominalWidth + 7},
		{"10 20 30 hstem 0 0 rmoveto 0 10 rlineto endchar", nominalWidth + 10},
		{"1 2 3 4 5 hintmask 11110000 0 0 rmoveto 0 1 rlineto endchar", nominalWidth + 1},
	}
	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			g, err := Decode(c.code, defaultWidth, nominalWidth)
			if err != nil {
				t.Fatal(err)
			}
			if g.Width != c.width {
				t.Errorf("width = %g, want %g", g.Width, c.width)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"0 0 rmoveto 0 10 rlineto",
		"0 0 rmoveto 1 2 3 rrcurveto endchar",
		"0 0 rmoveto 10 rlineto endchar",
		"0 0 rmoveto 1 2 3 4 5 6 7 hhcurveto endchar",
		"0 0 rmoveto 1 2 3 4 5 6 7 8 9 10 11 12 rcurveline endchar",
		"0 0 rmoveto 1 2 3 4 5 6 7 rlinecurve endchar",
		"0 0 rmoveto 1 2 3 4 5 6 7 8 9 10 11 12 flex endchar",
		"1 2 3 4 5 6 7 8 9 rmoveto endchar",
		"1 2 3 hmoveto endchar",
		"1 2 endchar",
		"foo endchar",
		"10 0 rlineto endchar",
		"return endchar",
		"1 2 3 hstem 4 vstem endchar",
		"20 30 hstem 40 0 0 rmoveto 0 10 rlineto endchar",
		"0 callsubr endchar",
		"1 0 div endchar",
		"add endchar",
	}
	for _, code := range cases {
		_, err := Decode(code, 0, 0)
		var mErr *MalformedError
		if !errors.As(err, &mErr) {
			t.Errorf("%q: got error %v, want MalformedError", code, err)
		}
	}
}

func TestDecodeStackLimit(t *testing.T) {
	code := ""
	for range maxStack + 1 {
		code += "1 "
	}
	code += "endchar"
	_, err := Decode(code, 0, 0)
	var mErr *MalformedError
	if !errors.As(err, &mErr) {
		t.Errorf("got error %v, want MalformedError", err)
	}
}

func TestHintmask(t *testing.T) {
	code := "10 20 hstemhm 30 40 hintmask 10100000 0 0 rmoveto 0 10 rlineto 10 0 rlineto cntrmask 11000000 endchar"
	g, err := Decode(code, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Paths) != 1 || len(g.Paths[0].Segments) != 2 {
		t.Errorf("unexpected outline %v", g)
	}
}

func TestSubroutines(t *testing.T) {
	d := &Decoder{
		Subrs:  []string{"0 10 rlineto return", "0 -10 rlineto"},
		GSubrs: []string{"-107 callsubr 10 0 rlineto return"},
	}

	g, err := d.Decode("0 0 rmoveto -107 callgsubr -106 callsubr endchar")
	if err != nil {
		t.Fatal(err)
	}
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	if d := cmp.Diff(want, points(g)); d != "" {
		t.Error(d)
	}

	rec := &Decoder{Subrs: []string{"-107 callsubr"}}
	_, err = rec.Decode("0 0 rmoveto -107 callsubr endchar")
	var mErr *MalformedError
	if !errors.As(err, &mErr) {
		t.Errorf("recursive subroutine: got %v, want MalformedError", err)
	}
}

func TestBias(t *testing.T) {
	cases := []struct{ n, bias int }{
		{0, 107},
		{1239, 107},
		{1240, 1131},
		{33899, 1131},
		{33900, 32768},
	}
	for _, c := range cases {
		if got := bias(c.n); got != c.bias {
			t.Errorf("bias(%d) = %d, want %d", c.n, got, c.bias)
		}
	}
}

func TestFlex(t *testing.T) {
	cases := []struct {
		code string
		want []vec.Vec2
	}{
		{
			code: "0 0 rmoveto 10 20 30 40 50 60 70 hflex endchar",
			want: []vec.Vec2{{X: 0, Y: 0}, {X: 60, Y: 30}, {X: 230, Y: 0}},
		},
		{
			code: "0 0 rmoveto 10 10 10 10 10 0 10 0 10 -10 10 -10 50 flex endchar",
			want: []vec.Vec2{{X: 0, Y: 0}, {X: 30, Y: 20}, {X: 60, Y: 0}},
		},
		{
			code: "0 0 rmoveto 10 10 10 10 10 0 10 0 10 -10 10 flex1 endchar",
			want: []vec.Vec2{{X: 0, Y: 0}, {X: 30, Y: 20}, {X: 60, Y: 0}},
		},
	}
	for _, c := range cases {
		g, err := Decode(c.code, 0, 0)
		if err != nil {
			t.Errorf("%q: %v", c.code, err)
			continue
		}
		if d := cmp.Diff(c.want, points(g)); d != "" {
			t.Errorf("%q: %s", c.code, d)
		}
	}
}

func TestArithmetic(t *testing.T) {
	code := "0 0 rmoveto 3 4 add 2 mul 0 rlineto 1 2 exch sub 5 dup mul rlineto endchar"
	g, err := Decode(code, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	// 14 0 rlineto, then 1 25 rlineto
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 14, Y: 0}, {X: 15, Y: 25}}
	if d := cmp.Diff(want, points(g)); d != "" {
		t.Error(d)
	}
}

func TestEncode(t *testing.T) {
	g := &outline.Glyph{
		Width: 600,
		Paths: []outline.Path{
			{
				Start: vec.Vec2{X: 10, Y: 0},
				Segments: []outline.Segment{
					outline.Line(vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 500}),
					{C1: vec.Vec2{X: 100, Y: 600}, C2: vec.Vec2{X: 400.2, Y: 600}, P: vec.Vec2{X: 510, Y: 500}},
				},
			},
		},
	}
	got := Encode(g, 500, 0)
	want := "600 10 0 rmoveto\n" +
		"0 0 0 500 0 0 rrcurveto\n" +
		"90 100 300 0 110 -100 rrcurveto\n" +
		"endchar\n"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	g.Width = 500
	got = Encode(g, 500, 0)
	if got[:8] != "10 0 rmo" {
		t.Errorf("unexpected width operand in %q", got)
	}

	empty := Encode(&outline.Glyph{Width: 250}, 500, 200)
	if empty != "50 endchar\n" {
		t.Errorf("empty glyph: got %q", empty)
	}
}

func TestRoundTrip(t *testing.T) {
	g := &outline.Glyph{
		Width: 1000,
		Paths: []outline.Path{
			{
				Start: vec.Vec2{X: 100.4, Y: 100.6},
				Segments: []outline.Segment{
					{C1: vec.Vec2{X: 100.4, Y: 300.2}, C2: vec.Vec2{X: 250.7, Y: 450.1}, P: vec.Vec2{X: 450.3, Y: 450.5}},
					outline.Line(vec.Vec2{X: 450.3, Y: 450.5}, vec.Vec2{X: 450.3, Y: 100.6}),
				},
			},
			{
				Start: vec.Vec2{X: 200, Y: 200},
				Segments: []outline.Segment{
					outline.Line(vec.Vec2{X: 200, Y: 200}, vec.Vec2{X: 300, Y: 200}),
					outline.Line(vec.Vec2{X: 300, Y: 200}, vec.Vec2{X: 300, Y: 300}),
				},
			},
		},
	}
	g = outline.NormalizeWinding(g)

	code := Encode(g, 0, 0)
	g2, err := Decode(code, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if g2.Width != g.Width {
		t.Errorf("width = %g, want %g", g2.Width, g.Width)
	}
	if len(g2.Paths) != len(g.Paths) {
		t.Fatalf("got %d paths, want %d", len(g2.Paths), len(g.Paths))
	}
	for i := range g.Paths {
		p, q := &g.Paths[i], &g2.Paths[i]
		if !near(p.Start, q.Start) || len(p.Segments) != len(q.Segments) {
			t.Fatalf("path %d differs: %v vs %v", i, p, q)
		}
		for j := range p.Segments {
			a, b := p.Segments[j], q.Segments[j]
			if !near(a.C1, b.C1) || !near(a.C2, b.C2) || !near(a.P, b.P) {
				t.Errorf("path %d, segment %d: %v vs %v", i, j, a, b)
			}
		}
	}

	if code2 := Encode(g2, 0, 0); code2 != code {
		t.Errorf("encoding is not stable:\n%s\n%s", code, code2)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add("0 0 rmoveto 0 500 rlineto 500 0 rlineto 0 -500 rlineto endchar")
	f.Add("100 10 20 rmoveto 10 20 30 40 50 60 70 80 90 100 110 120 rrcurveto endchar")
	f.Add("0 0 rmoveto 10 20 30 40 50 hvcurveto 10 20 30 40 vhcurveto 5 hmoveto 10 20 30 40 50 hhcurveto endchar")
	f.Add("1 2 hstem 0 0 rmoveto 10 10 10 10 10 0 10 0 10 -10 10 -10 50 flex endchar")
	f.Fuzz(func(t *testing.T, code string) {
		g1, err := Decode(code, 0, 100)
		if err != nil || !isReasonable(g1) {
			return
		}

		enc := Encode(g1, 0, 100)
		g2, err := Decode(enc, 0, 100)
		if err != nil {
			t.Fatalf("%q: %v", enc, err)
		}
		if math.Abs(g2.Width-g1.Width) > 1e-6 {
			t.Errorf("width = %g, want %g", g2.Width, g1.Width)
		}
		if len(g2.Paths) != len(g1.Paths) || g2.NumSegments() != g1.NumSegments() {
			t.Errorf("structure changed: %d/%d paths, %d/%d segments",
				len(g2.Paths), len(g1.Paths), g2.NumSegments(), g1.NumSegments())
		}
	})
}

func isReasonable(g *outline.Glyph) bool {
	ok := func(x float64) bool {
		return !math.IsNaN(x) && math.Abs(x) < 1e6
	}
	if !ok(g.Width) {
		return false
	}
	for _, p := range g.Paths {
		if !ok(p.Start.X) || !ok(p.Start.Y) {
			return false
		}
		for _, s := range p.Segments {
			for _, v := range []vec.Vec2{s.C1, s.C2, s.P} {
				if !ok(v.X) || !ok(v.Y) {
					return false
				}
			}
		}
	}
	return true
}

func near(a, b vec.Vec2) bool {
	return math.Abs(a.X-b.X) <= 1 && math.Abs(a.Y-b.Y) <= 1
}

// points returns the on-curve points of all contours, sorted.
func points(g *outline.Glyph) []vec.Vec2 {
	var res []vec.Vec2
	for _, p := range g.Paths {
		res = append(res, p.Start)
		for _, s := range p.Segments {
			res = append(res, s.P)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].X != res[j].X {
			return res[i].X < res[j].X
		}
		return res[i].Y < res[j].Y
	})
	return res
}
