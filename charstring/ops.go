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

type op uint16

const (
	opHstem op = iota + 1
	opVstem
	opHstemhm
	opVstemhm
	opHintmask
	opCntrmask
	opRmoveto
	opHmoveto
	opVmoveto
	opRlineto
	opHlineto
	opVlineto
	opRrcurveto
	opHhcurveto
	opVvcurveto
	opHvcurveto
	opVhcurveto
	opRcurveline
	opRlinecurve
	opFlex
	opHflex
	opHflex1
	opFlex1
	opEndchar
	opCallsubr
	opCallgsubr
	opReturn
	opDotsection

	opAbs
	opAdd
	opSub
	opDiv
	opNeg
	opMul
	opSqrt
	opRandom
	opDrop
	opExch
	opIndex
	opRoll
	opDup
	opPut
	opGet
	opAnd
	opOr
	opNot
	opEq
	opIfelse
)

var opNames = map[string]op{
	"hstem":      opHstem,
	"vstem":      opVstem,
	"hstemhm":    opHstemhm,
	"vstemhm":    opVstemhm,
	"hintmask":   opHintmask,
	"cntrmask":   opCntrmask,
	"rmoveto":    opRmoveto,
	"hmoveto":    opHmoveto,
	"vmoveto":    opVmoveto,
	"rlineto":    opRlineto,
	"hlineto":    opHlineto,
	"vlineto":    opVlineto,
	"rrcurveto":  opRrcurveto,
	"hhcurveto":  opHhcurveto,
	"vvcurveto":  opVvcurveto,
	"hvcurveto":  opHvcurveto,
	"vhcurveto":  opVhcurveto,
	"rcurveline": opRcurveline,
	"rlinecurve": opRlinecurve,
	"flex":       opFlex,
	"hflex":      opHflex,
	"hflex1":     opHflex1,
	"flex1":      opFlex1,
	"endchar":    opEndchar,
	"callsubr":   opCallsubr,
	"callgsubr":  opCallgsubr,
	"return":     opReturn,
	"dotsection": opDotsection,

	"abs":    opAbs,
	"add":    opAdd,
	"sub":    opSub,
	"div":    opDiv,
	"neg":    opNeg,
	"mul":    opMul,
	"sqrt":   opSqrt,
	"random": opRandom,
	"drop":   opDrop,
	"exch":   opExch,
	"index":  opIndex,
	"roll":   opRoll,
	"dup":    opDup,
	"put":    opPut,
	"get":    opGet,
	"and":    opAnd,
	"or":     opOr,
	"not":    opNot,
	"eq":     opEq,
	"ifelse": opIfelse,
}

func (o op) String() string {
	for name, val := range opNames {
		if val == o {
			return name
		}
	}
	return "unknown"
}
