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
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul"
	"seehuhn.de/go/hangul/outline"
)

// UnresolvedJoint describes a corner where the offset segments could not be
// reconnected.  The contour is still closed, using a straight line across
// the gap.
type UnresolvedJoint struct {
	Contour int      // index of the contour in the glyph
	Segment int      // index of the segment after the corner
	From    vec.Vec2 // end of the offset segment before the corner
	To      vec.Vec2 // start of the offset segment after the corner
}

func (j UnresolvedJoint) Error() string {
	return fmt.Sprintf("bold: unresolved joint before segment %d of contour %d (gap %.2f)",
		j.Segment, j.Contour, j.To.Sub(j.From).Length())
}

// Synthesize returns an emboldened copy of g, where every contour is moved
// outwards by d design units.  The contours of g must be oriented as
// produced by [outline.NormalizeWinding].
//
// After offsetting, the corners between consecutive segments are repaired
// one by one, in contour order and including the closing corner:
//   - Small gaps are closed by moving the start of the next segment.
//   - At convex corners both segments are extended along their tangents
//     until they meet.
//   - At concave corners the segments overlap.  The new segment is
//     intersected with the previous segments, the overlapping parts are cut
//     off and segments which lie completely between the two cuts are
//     dropped.
//
// Corners which cannot be repaired are bridged by a straight line and are
// reported in the returned slice.
func Synthesize(g *outline.Glyph, d float64, opts *Options) (*outline.Glyph, []UnresolvedJoint) {
	o := opts.withDefaults()
	r := newJitter(o.Seed, o.Jitter)

	offs := Offset(g, d)
	res := &outline.Glyph{Width: g.Width}
	var unresolved []UnresolvedJoint
	for i, curves := range offs {
		if len(curves) == 0 {
			continue
		}
		j := &joiner{
			opts:    &o,
			rand:    r,
			contour: i,
		}
		path := j.join(curves)
		unresolved = append(unresolved, j.unresolved...)
		res.Paths = append(res.Paths, path)
	}
	return res, unresolved
}

type joiner struct {
	opts    *Options
	rand    *jitter
	contour int

	done       []outline.Cubic
	unresolved []UnresolvedJoint
}

func (j *joiner) join(curves []outline.Cubic) outline.Path {
	j.done = append(j.done[:0], curves[0])
	for k := 1; k < len(curves); k++ {
		next := j.joint(curves[k], k, false)
		j.done = append(j.done, next)
	}
	if len(j.done) > 1 {
		j.done[0] = j.joint(j.done[0], 0, true)
	}

	path := outline.Path{
		Start:    j.done[0].P0,
		Segments: make([]outline.Segment, len(j.done)),
	}
	for k, c := range j.done {
		path.Segments[k] = c.Segment()
	}
	return path
}

// joint connects the last curve in j.done to next and returns the
// (possibly trimmed) next curve.  If closing is true, next is j.done[0]
// and j.done[0] must not be used as an intersection partner.
func (j *joiner) joint(next outline.Cubic, seg int, closing bool) outline.Cubic {
	log := hangul.Logger()
	last := len(j.done) - 1
	prev := j.done[last]

	gap := next.P0.Sub(prev.P3).Length()
	if gap <= j.opts.JoinTolerance {
		next.P0 = prev.P3
		return next
	}

	a := prev.EndTangent()
	b := next.StartTangent()
	s, t, ok := rayParams(prev.P3, a, next.P0, b.Mul(-1))
	if !ok {
		log.Debug("parallel joint", "contour", j.contour, "segment", seg, "gap", gap)
		return j.bridge(next, seg)
	}

	if s > 0 && t > 0 {
		x := prev.P3.Add(a.Mul(s))
		delta := x.Sub(prev.P3)
		prev.P2 = prev.P2.Add(delta)
		prev.P3 = x
		j.done[last] = prev

		delta = x.Sub(next.P0)
		next.P1 = next.P1.Add(delta)
		next.P0 = x
		return next
	}

	lowest := 0
	if closing {
		lowest = 1
	}
	for k := last; k >= lowest && k > last-j.opts.MaxBacktrack; k-- {
		tPrev, tNext, found := j.intersect(j.done[k], next)
		if !found {
			continue
		}
		head := j.done[k].Subsegment(0, tPrev)
		tail := next.Subsegment(tNext, 1)
		tail.P0 = head.P3
		j.done[k] = head
		if k < last {
			log.Debug("dropped segments at concave joint",
				"contour", j.contour, "segment", seg, "count", last-k)
		}
		j.done = j.done[:k+1]
		return tail
	}

	return j.bridge(next, seg)
}

func (j *joiner) bridge(next outline.Cubic, seg int) outline.Cubic {
	prev := j.done[len(j.done)-1]
	u := UnresolvedJoint{
		Contour: j.contour,
		Segment: seg,
		From:    prev.P3,
		To:      next.P0,
	}
	j.unresolved = append(j.unresolved, u)
	hangul.Logger().Debug("unresolved joint", "contour", j.contour, "segment", seg)

	j.done = append(j.done, outline.Line(prev.P3, next.P0).Cubic(prev.P3))
	return next
}

// intersect finds an intersection between the curves p and q.  If there
// are several intersections, the one closest to the end of p is returned.
func (j *joiner) intersect(p, q outline.Cubic) (float64, float64, bool) {
	pj := j.rand.perturb(p)
	qj := j.rand.perturb(q)
	hits := intersectCurves(pj, qj)
	if len(hits) == 0 {
		return 0, 0, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.s > best.s || h.s == best.s && h.t < best.t {
			best = h
		}
	}
	if best.s <= 0 || best.t >= 1 {
		return 0, 0, false
	}
	return best.s, best.t, true
}
