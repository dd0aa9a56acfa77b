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
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hangul/outline"
)

// Decoder holds the font-level information needed to decode charstrings.
type Decoder struct {
	// DefaultWidth is used if a charstring does not specify a width.
	DefaultWidth float64

	// NominalWidth is added to the width given in a charstring.
	NominalWidth float64

	// Subrs and GSubrs are the local and global subroutines, in text form.
	Subrs  []string
	GSubrs []string
}

// Decode decodes a charstring in text form which does not call
// subroutines.
func Decode(code string, defaultWidth, nominalWidth float64) (*outline.Glyph, error) {
	d := &Decoder{
		DefaultWidth: defaultWidth,
		NominalWidth: nominalWidth,
	}
	return d.Decode(code)
}

const (
	maxStack     = 96 // Type 2 charstrings allow 48, some fonts use more
	maxCallDepth = 10
)

// Decode interprets the charstring and returns the glyph outline.
//
// The glyph width is taken from the first stack-clearing operator, if an
// extra leading operand is present there.  Hints are ignored.
// The contours of the result are oriented as by [outline.NormalizeWinding].
func (d *Decoder) Decode(code string) (*outline.Glyph, error) {
	res := &outline.Glyph{
		Width: d.DefaultWidth,
	}

	type frame struct {
		tokens []string
		next   int
	}
	frames := []*frame{{tokens: strings.Fields(code)}}
	tokIdx := -1

	var current op
	malformed := func(reason string) error {
		err := &MalformedError{Token: tokIdx, Reason: reason}
		if current != 0 {
			err.Op = current.String()
		}
		return err
	}
	errStackUnderflow := func() error { return malformed("operand stack underflow") }

	var stack []float64
	clearStack := func() {
		stack = stack[:0]
	}

	widthIsSet := false
	setGlyphWidth := func(isPresent bool) {
		if widthIsSet {
			return
		}
		if isPresent {
			res.Width = stack[0] + d.NominalWidth
			stack = stack[1:]
		}
		widthIsSet = true
	}

	var storage []float64

	var cur *outline.Path
	var pos vec.Vec2
	closePath := func() {
		if cur != nil && len(cur.Segments) > 0 {
			res.Paths = append(res.Paths, *cur)
		}
		cur = nil
	}
	rMoveTo := func(dx, dy float64) {
		closePath()
		pos = pos.Add(vec.Vec2{X: dx, Y: dy})
		cur = &outline.Path{Start: pos}
	}
	rLineTo := func(dx, dy float64) {
		next := pos.Add(vec.Vec2{X: dx, Y: dy})
		cur.Segments = append(cur.Segments, outline.Line(pos, next))
		pos = next
	}
	rCurveTo := func(dxa, dya, dxb, dyb, dxc, dyc float64) {
		a := pos.Add(vec.Vec2{X: dxa, Y: dya})
		b := a.Add(vec.Vec2{X: dxb, Y: dyb})
		pos = b.Add(vec.Vec2{X: dxc, Y: dyc})
		cur.Segments = append(cur.Segments, outline.Segment{C1: a, C2: b, P: pos})
	}

	for {
		f := frames[len(frames)-1]
		if f.next >= len(f.tokens) {
			if len(frames) == 1 {
				current = 0
				return nil, malformed("missing endchar")
			}
			frames = frames[:len(frames)-1]
			continue
		}
		tok := f.tokens[f.next]
		f.next++
		tokIdx++

		o, isOp := opNames[tok]
		if !isOp {
			current = 0
			val, err := strconv.ParseFloat(tok, 64)
			if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, malformed(fmt.Sprintf("invalid token %q", tok))
			}
			if len(stack) >= maxStack {
				return nil, malformed("operand stack overflow")
			}
			stack = append(stack, val)
			continue
		}
		current = o

		switch o {
		case opRmoveto, opHmoveto, opVmoveto, opRlineto, opHlineto, opVlineto,
			opRrcurveto, opHhcurveto, opVvcurveto, opHvcurveto, opVhcurveto,
			opRcurveline, opRlinecurve, opFlex, opHflex, opHflex1, opFlex1:
			if o != opRmoveto && o != opHmoveto && o != opVmoveto {
				setGlyphWidth(false)
				if cur == nil {
					return nil, malformed("no current point")
				}
			}
		}

		switch o {
		case opRmoveto:
			setGlyphWidth(len(stack) == 3)
			if len(stack) != 2 {
				return nil, malformed(fmt.Sprintf("%d operands, want 2", len(stack)))
			}
			rMoveTo(stack[0], stack[1])
			clearStack()

		case opHmoveto, opVmoveto:
			setGlyphWidth(len(stack) == 2)
			if len(stack) != 1 {
				return nil, malformed(fmt.Sprintf("%d operands, want 1", len(stack)))
			}
			if o == opHmoveto {
				rMoveTo(stack[0], 0)
			} else {
				rMoveTo(0, stack[0])
			}
			clearStack()

		case opRlineto:
			if len(stack) < 2 || len(stack)%2 != 0 {
				return nil, malformed(fmt.Sprintf("%d operands, want an even number", len(stack)))
			}
			for len(stack) >= 2 {
				rLineTo(stack[0], stack[1])
				stack = stack[2:]
			}
			clearStack()

		case opHlineto, opVlineto:
			if len(stack) < 1 {
				return nil, errStackUnderflow()
			}
			horizontal := o == opHlineto
			for _, z := range stack {
				if horizontal {
					rLineTo(z, 0)
				} else {
					rLineTo(0, z)
				}
				horizontal = !horizontal
			}
			clearStack()

		case opRrcurveto:
			if len(stack) < 6 || len(stack)%6 != 0 {
				return nil, malformed(fmt.Sprintf("%d operands, want a multiple of 6", len(stack)))
			}
			for len(stack) >= 6 {
				rCurveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
				stack = stack[6:]
			}
			clearStack()

		case opRcurveline:
			if len(stack) < 8 || (len(stack)-2)%6 != 0 {
				return nil, malformed(fmt.Sprintf("%d operands, want 6k+2", len(stack)))
			}
			for len(stack) >= 6 {
				rCurveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
				stack = stack[6:]
			}
			rLineTo(stack[0], stack[1])
			clearStack()

		case opRlinecurve:
			if len(stack) < 8 || (len(stack)-6)%2 != 0 {
				return nil, malformed(fmt.Sprintf("%d operands, want 2k+6", len(stack)))
			}
			for len(stack) > 6 {
				rLineTo(stack[0], stack[1])
				stack = stack[2:]
			}
			rCurveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
			clearStack()

		case opHhcurveto:
			if len(stack) < 4 || len(stack)%4 > 1 {
				return nil, malformed(fmt.Sprintf("%d operands, want 4k or 4k+1", len(stack)))
			}
			var dy1 float64
			if len(stack)%4 != 0 {
				dy1, stack = stack[0], stack[1:]
			}
			for len(stack) >= 4 {
				rCurveTo(stack[0], dy1, stack[1], stack[2], stack[3], 0)
				stack = stack[4:]
				dy1 = 0
			}
			clearStack()

		case opVvcurveto:
			if len(stack) < 4 || len(stack)%4 > 1 {
				return nil, malformed(fmt.Sprintf("%d operands, want 4k or 4k+1", len(stack)))
			}
			var dx1 float64
			if len(stack)%4 != 0 {
				dx1, stack = stack[0], stack[1:]
			}
			for len(stack) >= 4 {
				rCurveTo(dx1, stack[0], stack[1], stack[2], 0, stack[3])
				stack = stack[4:]
				dx1 = 0
			}
			clearStack()

		case opHvcurveto, opVhcurveto:
			if len(stack) < 4 || len(stack)%4 > 1 {
				return nil, malformed(fmt.Sprintf("%d operands, want 4k or 4k+1", len(stack)))
			}
			horizontal := o == opHvcurveto
			for len(stack) >= 4 {
				var extra float64
				if len(stack) == 5 {
					extra = stack[4]
				}
				if horizontal {
					rCurveTo(stack[0], 0, stack[1], stack[2], extra, stack[3])
				} else {
					rCurveTo(0, stack[0], stack[1], stack[2], stack[3], extra)
				}
				stack = stack[4:]
				horizontal = !horizontal
			}
			clearStack()

		case opFlex:
			if len(stack) != 13 {
				return nil, malformed(fmt.Sprintf("%d operands, want 13", len(stack)))
			}
			rCurveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
			rCurveTo(stack[6], stack[7], stack[8], stack[9], stack[10], stack[11])
			clearStack()

		case opFlex1:
			if len(stack) != 11 {
				return nil, malformed(fmt.Sprintf("%d operands, want 11", len(stack)))
			}
			rCurveTo(stack[0], stack[1], stack[2], stack[3], stack[4], stack[5])
			dx := stack[0] + stack[2] + stack[4] + stack[6] + stack[8]
			dy := stack[1] + stack[3] + stack[5] + stack[7] + stack[9]
			if math.Abs(dx) > math.Abs(dy) {
				rCurveTo(stack[6], stack[7], stack[8], stack[9], stack[10], -dy)
			} else {
				rCurveTo(stack[6], stack[7], stack[8], stack[9], -dx, stack[10])
			}
			clearStack()

		case opHflex:
			if len(stack) != 7 {
				return nil, malformed(fmt.Sprintf("%d operands, want 7", len(stack)))
			}
			rCurveTo(stack[0], 0, stack[1], stack[2], stack[3], 0)
			rCurveTo(stack[4], 0, stack[5], -stack[2], stack[6], 0)
			clearStack()

		case opHflex1:
			if len(stack) != 9 {
				return nil, malformed(fmt.Sprintf("%d operands, want 9", len(stack)))
			}
			rCurveTo(stack[0], stack[1], stack[2], stack[3], stack[4], 0)
			dy := stack[1] + stack[3] + stack[7]
			rCurveTo(stack[5], 0, stack[6], stack[7], stack[8], -dy)
			clearStack()

		case opHstem, opVstem, opHstemhm, opVstemhm:
			setGlyphWidth(len(stack)%2 == 1)
			if len(stack)%2 != 0 {
				return nil, malformed(fmt.Sprintf("%d operands, want an even number", len(stack)))
			}
			clearStack()

		case opHintmask, opCntrmask:
			setGlyphWidth(len(stack)%2 == 1)
			if len(stack)%2 != 0 {
				return nil, malformed(fmt.Sprintf("%d operands, want an even number", len(stack)))
			}
			if f.next < len(f.tokens) && isMask(f.tokens[f.next]) {
				f.next++
				tokIdx++
			}
			clearStack()

		case opDotsection:
			clearStack()

		case opEndchar:
			setGlyphWidth(len(stack) == 1)
			if len(stack) != 0 {
				return nil, malformed(fmt.Sprintf("%d operands, want 0", len(stack)))
			}
			closePath()
			return outline.NormalizeWinding(res), nil

		case opCallsubr, opCallgsubr:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			biased := int(stack[k])
			stack = stack[:k]

			if len(frames) > maxCallDepth {
				return nil, malformed("maximum call stack size exceeded")
			}
			subrs := d.Subrs
			if o == opCallgsubr {
				subrs = d.GSubrs
			}
			idx := biased + bias(len(subrs))
			if idx < 0 || idx >= len(subrs) {
				return nil, malformed(fmt.Sprintf("invalid subroutine index %d", biased))
			}
			frames = append(frames, &frame{tokens: strings.Fields(subrs[idx])})

		case opReturn:
			if len(frames) == 1 {
				return nil, malformed("return outside of subroutine")
			}
			frames = frames[:len(frames)-1]

		case opAbs:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k] = math.Abs(stack[k])
		case opAdd:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k] += stack[k+1]
			stack = stack[:k+1]
		case opSub:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k] -= stack[k+1]
			stack = stack[:k+1]
		case opDiv:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			if stack[k+1] == 0 {
				return nil, malformed("division by zero")
			}
			stack[k] /= stack[k+1]
			stack = stack[:k+1]
		case opNeg:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k] = -stack[k]
		case opMul:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k] *= stack[k+1]
			stack = stack[:k+1]
		case opSqrt:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k] = math.Sqrt(math.Abs(stack[k]))
		case opRandom:
			stack = append(stack, 0.618) // a "random" number in (0, 1]
		case opDrop:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack = stack[:k]
		case opExch:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k], stack[k+1] = stack[k+1], stack[k]
		case opIndex:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			idx := int(stack[k])
			if idx < 0 {
				idx = 0
			}
			if k-idx-1 < 0 {
				return nil, malformed("invalid index")
			}
			stack[k] = stack[k-idx-1]
		case opRoll:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			n := int(stack[k])
			j := int(stack[k+1])
			if n <= 0 || n > k {
				return nil, malformed("invalid roll count")
			}
			roll(stack[k-n:k], j)
			stack = stack[:k]
		case opDup:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack = append(stack, stack[k])
		case opPut:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			m := int(stack[k+1])
			if float64(m) != stack[k+1] || m < 0 || m >= 32 {
				return nil, malformed("invalid store index")
			}
			if storage == nil {
				storage = make([]float64, 32)
			}
			storage[m] = stack[k]
			stack = stack[:k]
		case opGet:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			m := int(stack[k])
			if float64(m) != stack[k] || m < 0 || m >= len(storage) {
				return nil, malformed("invalid store index")
			}
			stack[k] = storage[m]
		case opAnd, opOr, opEq:
			k := len(stack) - 2
			if k < 0 {
				return nil, errStackUnderflow()
			}
			var cond bool
			switch o {
			case opAnd:
				cond = stack[k] != 0 && stack[k+1] != 0
			case opOr:
				cond = stack[k] != 0 || stack[k+1] != 0
			default:
				cond = stack[k] == stack[k+1]
			}
			stack = append(stack[:k], boolValue(cond))
		case opNot:
			k := len(stack) - 1
			if k < 0 {
				return nil, errStackUnderflow()
			}
			stack[k] = boolValue(stack[k] == 0)
		case opIfelse:
			k := len(stack) - 4
			if k < 0 {
				return nil, errStackUnderflow()
			}
			val := stack[k+1]
			if stack[k+2] <= stack[k+3] {
				val = stack[k]
			}
			stack = append(stack[:k], val)
		}
	}
}

// bias returns the subroutine number bias for a subroutine index with n
// entries.
func bias(n int) int {
	switch {
	case n < 1240:
		return 107
	case n < 33900:
		return 1131
	default:
		return 32768
	}
}

func roll(data []float64, j int) {
	n := len(data)

	j = j % n
	if j < 0 {
		j += n
	}

	tmp := make([]float64, j)
	copy(tmp, data[n-j:])
	copy(data[j:], data[:n-j])
	copy(data[:j], tmp)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// isMask reports whether tok is the bit string following a hintmask or
// cntrmask operator.
func isMask(tok string) bool {
	if len(tok) == 0 || len(tok)%8 != 0 {
		return false
	}
	for _, c := range tok {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}
