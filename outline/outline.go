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

// Package outline represents glyph outlines as sequences of cubic Bézier
// segments and implements the geometric operations needed to cut jamo out of
// syllable glyphs.
//
// All coordinates are in font design units, with the y-axis pointing up.
// Straight lines are stored as cubic segments where the first control point
// coincides with the start point and the second control point coincides with
// the end point.
//
// Operations never modify their arguments.  Every function which returns a
// [Glyph] returns a freshly allocated value which shares no memory with the
// input.
package outline

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Segment is one cubic Bézier segment of a contour.
// The start point of the segment is the end point of the previous
// segment, or the start of the contour for the first segment.
type Segment struct {
	C1, C2 vec.Vec2 // control points
	P      vec.Vec2 // end point
}

// Line returns a straight segment from p0 to p1.
func Line(p0, p1 vec.Vec2) Segment {
	return Segment{C1: p0, C2: p1, P: p1}
}

// IsStraight reports whether the segment, starting at p0, is a straight
// line.  Segments whose control points are collinear with the end points and
// lie between them are considered straight.
func (s Segment) IsStraight(p0 vec.Vec2) bool {
	return onChord(p0, s.P, s.C1) && onChord(p0, s.P, s.C2)
}

func onChord(a, b, c vec.Vec2) bool {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return c == a
	}
	e := c.Sub(a)
	cross := d.X*e.Y - d.Y*e.X
	if math.Abs(cross) > 1e-9*l2 {
		return false
	}
	t := (d.X*e.X + d.Y*e.Y) / l2
	return t >= -1e-9 && t <= 1+1e-9
}

// Path is a closed contour.
// The contour is implicitly closed by a straight line from the end point of
// the last segment back to Start.
type Path struct {
	Start    vec.Vec2
	Segments []Segment
}

// End returns the end point of the last segment.
func (p *Path) End() vec.Vec2 {
	if len(p.Segments) == 0 {
		return p.Start
	}
	return p.Segments[len(p.Segments)-1].P
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() Path {
	segs := make([]Segment, len(p.Segments))
	copy(segs, p.Segments)
	return Path{Start: p.Start, Segments: segs}
}

// Reverse returns the path traversed in the opposite direction.
// The new path starts at the end point of the last segment.
func (p *Path) Reverse() Path {
	n := len(p.Segments)
	res := Path{
		Start:    p.End(),
		Segments: make([]Segment, n),
	}
	for i := range n {
		seg := p.Segments[n-1-i]
		prev := p.Start
		if n-2-i >= 0 {
			prev = p.Segments[n-2-i].P
		}
		res.Segments[i] = Segment{C1: seg.C2, C2: seg.C1, P: prev}
	}
	return res
}

// Cubics returns the segments of the path as stand-alone curves.
// If close is true and the path is not explicitly closed, the closing line
// is included as a final curve.
func (p *Path) Cubics(close bool) []Cubic {
	res := make([]Cubic, 0, len(p.Segments)+1)
	prev := p.Start
	for _, seg := range p.Segments {
		res = append(res, seg.Cubic(prev))
		prev = seg.P
	}
	if close && prev != p.Start {
		res = append(res, Line(prev, p.Start).Cubic(prev))
	}
	return res
}

// Flatten approximates the closed contour by a polygon.
// Curved segments are replaced by steps straight pieces.
// The returned slice starts with p.Start and does not repeat it at the end.
func (p *Path) Flatten(steps int) []vec.Vec2 {
	if steps < 1 {
		steps = 1
	}
	res := []vec.Vec2{p.Start}
	prev := p.Start
	for _, seg := range p.Segments {
		if seg.IsStraight(prev) {
			res = append(res, seg.P)
		} else {
			c := seg.Cubic(prev)
			for i := 1; i <= steps; i++ {
				res = append(res, c.Eval(float64(i)/float64(steps)))
			}
		}
		prev = seg.P
	}
	if len(res) > 1 && res[len(res)-1] == p.Start {
		res = res[:len(res)-1]
	}
	return res
}

// Glyph is the outline of a glyph, together with its advance width.
type Glyph struct {
	Width float64
	Paths []Path
}

// Clone returns a deep copy of the glyph.
func (g *Glyph) Clone() *Glyph {
	if g == nil {
		return nil
	}
	res := &Glyph{
		Width: g.Width,
		Paths: make([]Path, len(g.Paths)),
	}
	for i := range g.Paths {
		res.Paths[i] = g.Paths[i].Clone()
	}
	return res
}

// NumSegments returns the total number of segments in all contours.
func (g *Glyph) NumSegments() int {
	n := 0
	for _, p := range g.Paths {
		n += len(p.Segments)
	}
	return n
}

// EmptyBounds is the bounding box of an empty outline.
// It is the neutral element for [Union].
var EmptyBounds = rect.Rect{
	LLx: math.Inf(+1),
	LLy: math.Inf(+1),
	URx: math.Inf(-1),
	URy: math.Inf(-1),
}

// IsEmpty reports whether r contains no points.
func IsEmpty(r rect.Rect) bool {
	return r.LLx > r.URx || r.LLy > r.URy
}

// Union returns the smallest rectangle which contains both a and b.
func Union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: math.Min(a.LLx, b.LLx),
		LLy: math.Min(a.LLy, b.LLy),
		URx: math.Max(a.URx, b.URx),
		URy: math.Max(a.URy, b.URy),
	}
}

// Overlap returns the area of the intersection of a and b.
func Overlap(a, b rect.Rect) float64 {
	w := math.Min(a.URx, b.URx) - math.Max(a.LLx, b.LLx)
	h := math.Min(a.URy, b.URy) - math.Max(a.LLy, b.LLy)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Contains reports whether the point p lies inside r or on its boundary.
func Contains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

func extend(r rect.Rect, p vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: math.Min(r.LLx, p.X),
		LLy: math.Min(r.LLy, p.Y),
		URx: math.Max(r.URx, p.X),
		URy: math.Max(r.URy, p.Y),
	}
}
