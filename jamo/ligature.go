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

package jamo

import "golang.org/x/exp/slices"

// Ligature describes a compound jamo which can be written as a sequence
// of simpler jamo.
type Ligature struct {
	Result     rune   // the compound conjoining jamo
	Components []rune // the conjoining jamo it consists of
}

// The compound jamo, given as compatibility jamo.  Tense consonants like ㄲ
// are letters of their own and are not listed.
var (
	vowelCompose = map[rune][]rune{
		'ㅘ': {'ㅗ', 'ㅏ'},
		'ㅙ': {'ㅗ', 'ㅏ', 'ㅣ'},
		'ㅚ': {'ㅗ', 'ㅣ'},
		'ㅝ': {'ㅜ', 'ㅓ'},
		'ㅞ': {'ㅜ', 'ㅓ', 'ㅣ'},
		'ㅟ': {'ㅜ', 'ㅣ'},
		'ㅢ': {'ㅡ', 'ㅣ'},
	}
	trailingCompose = map[rune][]rune{
		'ㄳ': {'ㄱ', 'ㅅ'},
		'ㄵ': {'ㄴ', 'ㅈ'},
		'ㄶ': {'ㄴ', 'ㅎ'},
		'ㄺ': {'ㄹ', 'ㄱ'},
		'ㄻ': {'ㄹ', 'ㅁ'},
		'ㄼ': {'ㄹ', 'ㅂ'},
		'ㄽ': {'ㄹ', 'ㅅ'},
		'ㄾ': {'ㄹ', 'ㅌ'},
		'ㄿ': {'ㄹ', 'ㅍ'},
		'ㅀ': {'ㄹ', 'ㅎ'},
		'ㅄ': {'ㅂ', 'ㅅ'},
	}
)

var ligatures []Ligature

func init() {
	conv := func(table map[rune][]rune, compat []rune, first rune) {
		conjoining := func(c rune) rune {
			return first + rune(slices.Index(compat, c))
		}
		for res, comps := range table {
			lig := Ligature{Result: conjoining(res)}
			for _, c := range comps {
				lig.Components = append(lig.Components, conjoining(c))
			}
			ligatures = append(ligatures, lig)
		}
	}
	conv(vowelCompose, vowelCompat, firstVowel)
	conv(trailingCompose, trailingCompat, firstTrailing)

	slices.SortFunc(ligatures, func(a, b Ligature) int {
		return int(a.Result - b.Result)
	})
}

// Ligatures returns all compound jamo, ordered by code point.
// The returned slice is a fresh copy.
func Ligatures() []Ligature {
	res := make([]Ligature, len(ligatures))
	for i, lig := range ligatures {
		res[i] = Ligature{
			Result:     lig.Result,
			Components: slices.Clone(lig.Components),
		}
	}
	return res
}
