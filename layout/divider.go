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

package layout

import (
	"fmt"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/hangul/jamo"
)

// Divider is a node in a layout tree.
// The implementations are [*Jamo], [*Vertical], [*Horizontal] and [*Mixed].
type Divider interface {
	isDivider()
}

// Jamo is a leaf of the layout tree.  The whole cell is used for a jamo of
// the given kind.
type Jamo struct {
	Kind jamo.Kind
}

// Vertical splits a cell by a vertical line.
// The left part is [0, X] and the right part is [X, 1].
type Vertical struct {
	X           float64
	Left, Right Divider
}

// Horizontal splits a cell by a horizontal line.
// The top part is [Y, 1] and the bottom part is [0, Y].
type Horizontal struct {
	Y           float64
	Top, Bottom Divider
}

// Mixed cuts the top-left quadrant [0, X]×[Y, 1] out of a cell.
// The remaining L-shaped region, to the right of X and below Y, is given to
// Rest.
type Mixed struct {
	X, Y    float64
	TopLeft Divider
	Rest    Divider
}

func (*Jamo) isDivider()       {}
func (*Vertical) isDivider()   {}
func (*Horizontal) isDivider() {}
func (*Mixed) isDivider()      {}

// CloneDivider returns a deep copy of the tree rooted at d.
func CloneDivider(d Divider) Divider {
	switch d := d.(type) {
	case *Jamo:
		return &Jamo{Kind: d.Kind}
	case *Vertical:
		return &Vertical{X: d.X, Left: CloneDivider(d.Left), Right: CloneDivider(d.Right)}
	case *Horizontal:
		return &Horizontal{Y: d.Y, Top: CloneDivider(d.Top), Bottom: CloneDivider(d.Bottom)}
	case *Mixed:
		return &Mixed{X: d.X, Y: d.Y, TopLeft: CloneDivider(d.TopLeft), Rest: CloneDivider(d.Rest)}
	default:
		return nil
	}
}

// Leaves returns the jamo kinds of all leaves, from left to right and
// from top to bottom.
func Leaves(d Divider) []jamo.Kind {
	var res []jamo.Kind
	var walk func(Divider)
	walk = func(d Divider) {
		switch d := d.(type) {
		case *Jamo:
			res = append(res, d.Kind)
		case *Vertical:
			walk(d.Left)
			walk(d.Right)
		case *Horizontal:
			walk(d.Top)
			walk(d.Bottom)
		case *Mixed:
			walk(d.TopLeft)
			walk(d.Rest)
		}
	}
	walk(d)
	return res
}

// LocateFocusRegion finds the cell of the leaf with the given kind.
//
// The region is the area covered by d, given as a union of rectangles.
// The result is the part of the region assigned to the focus leaf.  Exactly
// one leaf of the tree must match focus, otherwise an [*InvalidLayoutError]
// is returned.
func LocateFocusRegion(d Divider, focus jamo.Kind, region []rect.Rect) ([]rect.Rect, error) {
	if d == nil {
		return nil, &InvalidLayoutError{Reason: "empty layout tree"}
	}
	matches, err := locate(d, focus, region)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, &InvalidLayoutError{Reason: fmt.Sprintf("no %s cell", focus)}
	case 1:
		if len(matches[0]) == 0 {
			return nil, &InvalidLayoutError{Reason: fmt.Sprintf("%s cell is empty", focus)}
		}
		return matches[0], nil
	default:
		return nil, &InvalidLayoutError{Reason: fmt.Sprintf("%d %s cells", len(matches), focus)}
	}
}

func locate(d Divider, focus jamo.Kind, region []rect.Rect) ([][]rect.Rect, error) {
	h := Hull(region)
	switch d := d.(type) {
	case *Jamo:
		if d.Kind != focus {
			return nil, nil
		}
		res := make([]rect.Rect, len(region))
		copy(res, region)
		return [][]rect.Rect{res}, nil

	case *Vertical:
		if err := checkFraction("x", d.X); err != nil {
			return nil, err
		}
		x := h.LLx + d.X*h.Dx()
		left := clip(region, rect.Rect{LLx: h.LLx, LLy: h.LLy, URx: x, URy: h.URy})
		right := clip(region, rect.Rect{LLx: x, LLy: h.LLy, URx: h.URx, URy: h.URy})
		return locate2(focus, d.Left, left, d.Right, right)

	case *Horizontal:
		if err := checkFraction("y", d.Y); err != nil {
			return nil, err
		}
		y := h.LLy + d.Y*h.Dy()
		top := clip(region, rect.Rect{LLx: h.LLx, LLy: y, URx: h.URx, URy: h.URy})
		bottom := clip(region, rect.Rect{LLx: h.LLx, LLy: h.LLy, URx: h.URx, URy: y})
		return locate2(focus, d.Top, top, d.Bottom, bottom)

	case *Mixed:
		if err := checkFraction("x", d.X); err != nil {
			return nil, err
		}
		if err := checkFraction("y", d.Y); err != nil {
			return nil, err
		}
		x := h.LLx + d.X*h.Dx()
		y := h.LLy + d.Y*h.Dy()
		topLeft := clip(region, rect.Rect{LLx: h.LLx, LLy: y, URx: x, URy: h.URy})
		rest := clip(region, rect.Rect{LLx: x, LLy: h.LLy, URx: h.URx, URy: h.URy})
		rest = append(rest, clip(region, rect.Rect{LLx: h.LLx, LLy: h.LLy, URx: x, URy: y})...)
		return locate2(focus, d.TopLeft, topLeft, d.Rest, rest)

	case nil:
		return nil, &InvalidLayoutError{Reason: "missing child node"}

	default:
		return nil, &InvalidLayoutError{Reason: fmt.Sprintf("unknown node type %T", d)}
	}
}

func locate2(focus jamo.Kind, a Divider, regA []rect.Rect, b Divider, regB []rect.Rect) ([][]rect.Rect, error) {
	resA, err := locate(a, focus, regA)
	if err != nil {
		return nil, err
	}
	resB, err := locate(b, focus, regB)
	if err != nil {
		return nil, err
	}
	return append(resA, resB...), nil
}

func checkFraction(name string, v float64) error {
	if !(v > 0 && v < 1) {
		return &InvalidLayoutError{Reason: fmt.Sprintf("split %s=%g outside (0, 1)", name, v)}
	}
	return nil
}

// clip intersects every rectangle in region with c.
// Rectangles with zero area are dropped.
func clip(region []rect.Rect, c rect.Rect) []rect.Rect {
	var res []rect.Rect
	for _, r := range region {
		r.LLx = max(r.LLx, c.LLx)
		r.LLy = max(r.LLy, c.LLy)
		r.URx = min(r.URx, c.URx)
		r.URy = min(r.URy, c.URy)
		if r.URx > r.LLx && r.URy > r.LLy {
			res = append(res, r)
		}
	}
	return res
}

// Hull returns the smallest rectangle containing all rectangles in region.
// The hull of an empty region is the zero rectangle.
func Hull(region []rect.Rect) rect.Rect {
	if len(region) == 0 {
		return rect.Rect{}
	}
	h := region[0]
	for _, r := range region[1:] {
		h.LLx = min(h.LLx, r.LLx)
		h.LLy = min(h.LLy, r.LLy)
		h.URx = max(h.URx, r.URx)
		h.URy = max(h.URy, r.URy)
	}
	return h
}
