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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul"
	"seehuhn.de/go/hangul/outline"
)

// Compensation describes how the stroke weight of scaled glyphs is
// corrected.
//
// Scaling a glyph by a factor s < 1 also scales its stroke width by s,
// so that small jamo look lighter than the surrounding text.  With
// compensation the effective stroke width is scaled by m^Alpha instead,
// where m is the larger of the two scale factors.
type Compensation struct {
	// Alpha controls how much of the weight loss is compensated.
	// 0 keeps the stroke width unchanged, 1 disables compensation.
	// Default: 0.6.
	Alpha float64

	// Stroke is the typical stem width of the font, in design units.
	Stroke float64

	// Bold contains options for the emboldening step.
	Bold *Options
}

// MismatchError is returned by [Compensation.Adjust] if the thin and the
// bold outline do not have the same structure.
type MismatchError struct {
	Contour      int // -1 if the number of contours differs
	Thin, Bolder int // number of contours or segments
}

func (err *MismatchError) Error() string {
	if err.Contour < 0 {
		return fmt.Sprintf("bold: %d contours in thin glyph, %d in bold glyph",
			err.Thin, err.Bolder)
	}
	return fmt.Sprintf("bold: contour %d has %d segments in thin glyph, %d in bold glyph",
		err.Contour, err.Thin, err.Bolder)
}

func (c *Compensation) alpha() float64 {
	if c.Alpha <= 0 {
		return 0.6
	}
	return c.Alpha
}

// Weights returns the interpolation weights between the thin and the
// emboldened outline, for a glyph which will be scaled by xScale and
// yScale.  boldOffset is the offset distance which was used to create
// the emboldened outline.
func (c *Compensation) Weights(boldOffset, xScale, yScale float64) (qx, qy float64) {
	m := math.Max(xScale, yScale)
	target := math.Pow(m, c.alpha())
	q := func(scale float64) float64 {
		if boldOffset <= 0 || scale <= 0 {
			return 0
		}
		v := c.Stroke * (target/scale - 1) / (2 * boldOffset)
		return math.Min(math.Max(v, 0), 1)
	}
	return q(xScale), q(yScale)
}

// Adjust interpolates between the thin outline and the bold outline.
// Both outlines must have the same number of contours, and corresponding
// contours must have the same number of segments.
//
// The returned outline is in the coordinate system of the thin outline,
// before scaling.
func (c *Compensation) Adjust(thin, bold *outline.Glyph, boldOffset, xScale, yScale float64) (*outline.Glyph, error) {
	if len(thin.Paths) != len(bold.Paths) {
		return nil, &MismatchError{Contour: -1, Thin: len(thin.Paths), Bolder: len(bold.Paths)}
	}
	for i := range thin.Paths {
		a, b := len(thin.Paths[i].Segments), len(bold.Paths[i].Segments)
		if a != b {
			return nil, &MismatchError{Contour: i, Thin: a, Bolder: b}
		}
	}

	qx, qy := c.Weights(boldOffset, xScale, yScale)
	mix := func(p, q vec.Vec2) vec.Vec2 {
		return vec.Vec2{
			X: p.X + qx*(q.X-p.X),
			Y: p.Y + qy*(q.Y-p.Y),
		}
	}

	res := &outline.Glyph{
		Width: thin.Width,
		Paths: make([]outline.Path, len(thin.Paths)),
	}
	for i := range thin.Paths {
		tp := &thin.Paths[i]
		bp := &bold.Paths[i]
		p := outline.Path{
			Start:    mix(tp.Start, bp.Start),
			Segments: make([]outline.Segment, len(tp.Segments)),
		}
		for k, ts := range tp.Segments {
			bs := bp.Segments[k]
			p.Segments[k] = outline.Segment{
				C1: mix(ts.C1, bs.C1),
				C2: mix(ts.C2, bs.C2),
				P:  mix(ts.P, bs.P),
			}
		}
		res.Paths[i] = p
	}
	return res, nil
}

// Apply runs the complete compensation pipeline on g: the outline is
// reduced with [outline.ReducePaths], emboldened by half the stroke width
// and then interpolated using [Compensation.Adjust].
//
// If the emboldened outline does not match the thin one, the reduced thin
// outline is returned together with the error.  Unresolved corners of
// the emboldened outline are returned for reporting.
func (c *Compensation) Apply(g *outline.Glyph, xScale, yScale float64) (*outline.Glyph, []UnresolvedJoint, error) {
	thin := outline.ReducePaths(g)
	d := c.Stroke / 2
	if d <= 0 {
		return thin, nil, nil
	}
	heavy, unresolved := Synthesize(thin, d, c.Bold)
	res, err := c.Adjust(thin, heavy, d, xScale, yScale)
	if err != nil {
		hangul.Logger().Warn("stroke compensation skipped", "error", err)
		return thin, unresolved, err
	}
	return res, unresolved, nil
}
