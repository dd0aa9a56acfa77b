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
	"seehuhn.de/go/geom/rect"
)

// BBox returns the tight bounding box of the glyph outline.
// For glyphs without contours, [EmptyBounds] is returned.
func BBox(g *Glyph) rect.Rect {
	bbox := EmptyBounds
	for i := range g.Paths {
		bbox = Union(bbox, g.Paths[i].BBox())
	}
	return bbox
}

// BBox returns the tight bounding box of the contour.
func (p *Path) BBox() rect.Rect {
	bbox := extend(EmptyBounds, p.Start)
	prev := p.Start
	for _, seg := range p.Segments {
		bbox = Union(bbox, seg.Cubic(prev).BBox())
		prev = seg.P
	}
	return bbox
}

// Intersect returns the contours of g which lie mostly inside the given
// regions.  The regions are assumed to be pairwise disjoint.
//
// A contour is kept if at least half of the area of its bounding box is
// covered by the regions.  Contours with a degenerate bounding box are kept
// if the center of the box lies inside one of the regions.
func Intersect(g *Glyph, regions []rect.Rect) *Glyph {
	res := &Glyph{Width: g.Width}
	for i := range g.Paths {
		p := &g.Paths[i]
		if keepContour(p.BBox(), regions) {
			res.Paths = append(res.Paths, p.Clone())
		}
	}
	return res
}

func keepContour(bbox rect.Rect, regions []rect.Rect) bool {
	area := (bbox.URx - bbox.LLx) * (bbox.URy - bbox.LLy)
	if !(area > 0) {
		center := bboxCenter(bbox)
		for _, r := range regions {
			if Contains(r, center) {
				return true
			}
		}
		return false
	}

	covered := 0.0
	for _, r := range regions {
		covered += Overlap(bbox, r)
	}
	return covered/area >= 0.5
}
