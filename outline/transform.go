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
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Transform returns a copy of g with the affine map m applied to every
// point.  A point (x, y) is mapped to (m[0]x + m[1]y + m[2], m[3]x + m[4]y + m[5]).
// The advance width is not changed.
func (g *Glyph) Transform(m f64.Aff3) *Glyph {
	apply := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{
			X: m[0]*p.X + m[1]*p.Y + m[2],
			Y: m[3]*p.X + m[4]*p.Y + m[5],
		}
	}

	res := &Glyph{
		Width: g.Width,
		Paths: make([]Path, len(g.Paths)),
	}
	for i, p := range g.Paths {
		q := Path{
			Start:    apply(p.Start),
			Segments: make([]Segment, len(p.Segments)),
		}
		for j, seg := range p.Segments {
			q.Segments[j] = Segment{
				C1: apply(seg.C1),
				C2: apply(seg.C2),
				P:  apply(seg.P),
			}
		}
		res.Paths[i] = q
	}
	return res
}

// MapRect returns the affine map which takes the rectangle from onto the
// rectangle to.  Degenerate directions of from are translated but not
// scaled.
func MapRect(from, to rect.Rect) f64.Aff3 {
	sx := 1.0
	if w := from.URx - from.LLx; w > 0 {
		sx = (to.URx - to.LLx) / w
	}
	sy := 1.0
	if h := from.URy - from.LLy; h > 0 {
		sy = (to.URy - to.LLy) / h
	}
	return f64.Aff3{
		sx, 0, to.LLx - sx*from.LLx,
		0, sy, to.LLy - sy*from.LLy,
	}
}

// PathData converts the outline into a [path.Data] value.
// Every contour is terminated by a close command.
func (g *Glyph) PathData() *path.Data {
	res := &path.Data{}
	for _, p := range g.Paths {
		res.Cmds = append(res.Cmds, path.CmdMoveTo)
		res.Coords = append(res.Coords, p.Start)
		prev := p.Start
		for _, seg := range p.Segments {
			if seg.IsStraight(prev) {
				res.Cmds = append(res.Cmds, path.CmdLineTo)
				res.Coords = append(res.Coords, seg.P)
			} else {
				res.Cmds = append(res.Cmds, path.CmdCubeTo)
				res.Coords = append(res.Coords, seg.C1, seg.C2, seg.P)
			}
			prev = seg.P
		}
		res.Cmds = append(res.Cmds, path.CmdClose)
	}
	return res
}
