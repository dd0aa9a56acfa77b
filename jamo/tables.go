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

import (
	"strings"

	"golang.org/x/exp/slices"
)

// The modern jamo, in the order of the Unicode Hangul Jamo block,
// given as compatibility jamo.
var (
	leadingCompat  = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	vowelCompat    = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	trailingCompat = []rune{'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
)

const (
	firstLeading  = 0x1100
	firstVowel    = 0x1161
	firstTrailing = 0x11A8

	leadingDoubles   = "ㄲㄸㅃㅆㅉ"
	rightVowels      = "ㅏㅐㅑㅒㅓㅔㅕㅖㅣ"
	bottomVowels     = "ㅗㅛㅜㅠㅡ"
	trailingDoubles  = "ㄲㅆ"
	trailingClusters = "ㄳㄵㄶㄺㄻㄼㄽㄾㄿㅀㅄ"
)

type info struct {
	subkind Subkind
	compat  rune
}

var (
	jamoInfo  = make(map[rune]info)
	bySubkind = make(map[Subkind][]rune)
)

func init() {
	add := func(r rune, sk Subkind, compat rune) {
		jamoInfo[r] = info{subkind: sk, compat: compat}
		bySubkind[sk] = append(bySubkind[sk], r)
	}

	for i, c := range leadingCompat {
		sk := LeadingSingle
		if strings.ContainsRune(leadingDoubles, c) {
			sk = LeadingDouble
		}
		add(firstLeading+rune(i), sk, c)
	}
	for i, c := range vowelCompat {
		var sk Subkind
		switch {
		case strings.ContainsRune(rightVowels, c):
			sk = VowelRight
		case strings.ContainsRune(bottomVowels, c):
			sk = VowelBottom
		default:
			sk = VowelMixed
		}
		add(firstVowel+rune(i), sk, c)
	}
	for i, c := range trailingCompat {
		sk := TrailingSingle
		switch {
		case strings.ContainsRune(trailingDoubles, c):
			sk = TrailingDouble
		case strings.ContainsRune(trailingClusters, c):
			sk = TrailingStacked
		}
		add(firstTrailing+rune(i), sk, c)
	}
}

// SubkindOf returns the subkind of the conjoining jamo r.
// The second return value is false if r is not a modern conjoining jamo.
func SubkindOf(r rune) (Subkind, bool) {
	inf, ok := jamoInfo[r]
	return inf.subkind, ok
}

// KindOf returns the kind of the conjoining jamo r.
// The second return value is false if r is not a modern conjoining jamo.
func KindOf(r rune) (Kind, bool) {
	inf, ok := jamoInfo[r]
	if !ok {
		return 0, false
	}
	return inf.subkind.Kind(), true
}

// Jamo returns the conjoining jamo of the given subkind, in code point
// order.  The returned slice is a fresh copy.
func Jamo(sk Subkind) []rune {
	return slices.Clone(bySubkind[sk])
}

// OfKind returns all conjoining jamo of the given kind, in code point order.
func OfKind(k Kind) []rune {
	var res []rune
	for _, sk := range AllSubkinds {
		if sk.Kind() == k {
			res = append(res, bySubkind[sk]...)
		}
	}
	slices.Sort(res)
	return res
}

// OfRole returns all conjoining jamo which can take the given position in a
// syllable, in code point order.
func OfRole(role Role) []rune {
	var res []rune
	for _, k := range AllKinds {
		if k.Role() == role {
			res = append(res, OfKind(k)...)
		}
	}
	slices.Sort(res)
	return res
}

// Compat returns the compatibility jamo (U+3131 to U+3163) corresponding to
// the conjoining jamo r.
func Compat(r rune) (rune, bool) {
	inf, ok := jamoInfo[r]
	return inf.compat, ok
}

var representatives = map[Kind]rune{
	Leading:     'ᄋ',
	RightVowel:  'ᅡ',
	BottomVowel: 'ᅮ',
	MixedVowel:  'ᅪ',
	Trailing:    'ᆫ',
}

// Representative returns the jamo of kind k which has the most neutral
// shape.  These are tried first when searching for example syllables.
func Representative(k Kind) rune {
	return representatives[k]
}

// ByPreference returns the jamo of kind k with the representative first,
// followed by the remaining jamo in code point order.
func ByPreference(k Kind) []rune {
	all := OfKind(k)
	rep, ok := representatives[k]
	if !ok {
		return all
	}
	res := make([]rune, 0, len(all))
	res = append(res, rep)
	for _, r := range all {
		if r != rep {
			res = append(res, r)
		}
	}
	return res
}
