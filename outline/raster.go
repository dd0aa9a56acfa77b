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
	"image"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Rasterize renders the outline into a new w×h alpha mask.
// The rectangle box (in design units) is mapped onto the image, with the
// y-axis flipped so that the image shows the glyph upright.
// Contours are filled using the nonzero winding rule.
func Rasterize(g *Glyph, box rect.Rect, w, h int) *image.Alpha {
	sx := float64(w) / (box.URx - box.LLx)
	sy := float64(h) / (box.URy - box.LLy)
	tr := func(p vec.Vec2) (float32, float32) {
		return float32((p.X - box.LLx) * sx), float32((box.URy - p.Y) * sy)
	}

	z := vector.NewRasterizer(w, h)
	for _, p := range g.Paths {
		z.MoveTo(tr(p.Start))
		for _, seg := range p.Segments {
			x1, y1 := tr(seg.C1)
			x2, y2 := tr(seg.C2)
			x3, y3 := tr(seg.P)
			z.CubeTo(x1, y1, x2, y2, x3, y3)
		}
		z.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// Coverage returns the fraction of pixels in img which are at least half
// covered.
func Coverage(img *image.Alpha) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.AlphaAt(x, y).A >= 128 {
				n++
			}
		}
	}
	return float64(n) / float64(b.Dx()*b.Dy())
}

